/*
Copyright © 2026 the InaSAFE authors.
This file is part of InaSAFE.

InaSAFE is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

InaSAFE is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with InaSAFE.  If not, see <http://www.gnu.org/licenses/>.
*/

package inasafeutil

import (
	"os"
	"reflect"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/spatialmodel/inasafe"
)

func TestParseExtent(t *testing.T) {
	for _, test := range []struct {
		in   []string
		want *inasafe.Extent
		err  bool
	}{
		{in: nil, want: nil},
		{in: []string{""}, want: nil},
		{in: []string{"1", "2", "3", "4"}, want: &inasafe.Extent{1, 2, 3, 4}},
		{in: []string{"106.7,-6.3,106.9,-6.1"}, want: &inasafe.Extent{106.7, -6.3, 106.9, -6.1}},
		{in: []string{"1", "2", "3"}, err: true},
		{in: []string{"1", "2", "x", "4"}, err: true},
		{in: []string{"3", "2", "1", "4"}, err: true},
	} {
		have, err := parseExtent(test.in)
		if test.err {
			if err == nil {
				t.Errorf("%v: there should be an error", test.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("%v: %v", test.in, err)
			continue
		}
		if !reflect.DeepEqual(have, test.want) {
			t.Errorf("%v: %v != %v", test.in, have, test.want)
		}
	}
}

func TestCheckLogFile(t *testing.T) {
	if f := checkLogFile("", "out/impact.shp"); f != "out/impact.log" {
		t.Errorf("default log file: %s", f)
	}
	if f := checkLogFile("run.log", "out/impact.shp"); f != "run.log" {
		t.Errorf("log file: %s", f)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Errorf("empty output file should be an error")
	}
	if _, err := checkOutputFile("impact.csv"); err == nil {
		t.Errorf("unsupported output format should be an error")
	}
	if _, err := checkOutputFile("nothere/impact.shp"); err == nil {
		t.Errorf("missing directory should be an error")
	}
	os.Setenv("INASAFE_OUTDIR", ".")
	if f, err := checkOutputFile("${INASAFE_OUTDIR}/impact.geojson"); err != nil || f != "./impact.geojson" {
		t.Errorf("%s, %v", f, err)
	}
}

// TestConfigExample checks that the example configuration matches the
// default parameters.
func TestConfigExample(t *testing.T) {
	var cfg struct {
		Hazard, Exposure         string
		Extent                   []float64
		FunctionID, InvalidUnion string
		OutputFile               string
		FloodBuilding            inasafe.FloodBuildingParameters
	}
	if _, err := toml.DecodeFile("../testdata/configExample.toml", &cfg); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(cfg.FloodBuilding, inasafe.DefaultFloodBuildingParameters()) {
		t.Errorf("%+v != %+v", cfg.FloodBuilding, inasafe.DefaultFloodBuildingParameters())
	}
	if cfg.FunctionID != inasafe.FloodBuildingID {
		t.Errorf("FunctionID: %s", cfg.FunctionID)
	}
	if _, err := inasafe.ParseUnionPolicy(cfg.InvalidUnion); err != nil {
		t.Error(err)
	}
	if len(cfg.Extent) != 4 {
		t.Errorf("Extent: %v", cfg.Extent)
	}
}
