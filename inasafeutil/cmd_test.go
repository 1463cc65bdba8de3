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
	"bytes"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spatialmodel/inasafe"
)

func TestVersion(t *testing.T) {
	out := new(bytes.Buffer)
	Root.SetOutput(out)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), inasafe.Version) {
		t.Errorf("version output: %s", out.String())
	}
}

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "inasafeutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	os.Setenv("INASAFE_TESTDATA", "../testdata")
	Cfg.Set("config", "../testdata/configExample.toml")
	Cfg.Set("OutputFile", filepath.Join(dir, "impact.shp"))
	out := new(bytes.Buffer)
	Root.SetOutput(out)
	Root.SetArgs([]string{"run"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{"Building Type", "Breakdown by building type", "Unknown type", "Inundated=2", "extent="} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output is missing %q:\n%s", want, out.String())
		}
	}
	for _, f := range []string{"impact.shp", "impact.dbf", "impact.keywords", "impact.log"} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Error(err)
		}
	}

	impact, err := inasafe.ReadLayer(filepath.Join(dir, "impact.shp"))
	if err != nil {
		t.Fatal(err)
	}
	if impact.Keywords.Get(inasafe.KeywordCategory) != "impact" {
		t.Errorf("keywords: %v", impact.Keywords)
	}
	c, err := inasafe.Aggregate(impact, "TYPE", "flooded")
	if err != nil {
		t.Fatal(err)
	}
	if c.Total != 4 || c.Flooded != 2 {
		t.Errorf("total=%d, flooded=%d", c.Total, c.Flooded)
	}
}

func TestRunErrors(t *testing.T) {
	dir, err := ioutil.TempDir("", "inasafeutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	os.Setenv("INASAFE_TESTDATA", "../testdata")
	Cfg.Set("config", "../testdata/configExample.toml")
	Cfg.Set("OutputFile", filepath.Join(dir, "impact.shp"))

	for _, test := range []struct {
		name, key string
		value     interface{}
		reset     interface{}
		errText   string
	}{
		{
			name: "missing field", key: "FloodBuilding.AffectedField",
			value: "FLOODED", reset: "FLOODPRONE", errText: "not present in the attribute table",
		},
		{
			name: "no match", key: "FloodBuilding.AffectedValue",
			value: "MAYBE", reset: "YES", errText: "Please check the value",
		},
		{
			name: "missing hazard", key: "Hazard",
			value: "../testdata/nothere.geojson", reset: "../testdata/hazard.geojson", errText: "Hazard layer file",
		},
		{
			name: "bad extent", key: "Extent",
			value: []string{"1", "2", "3"}, reset: []string{"-1", "-1", "21", "21"}, errText: "Extent",
		},
		{
			name: "bad policy", key: "InvalidUnion",
			value: "ignore", reset: "skip", errText: "union policy",
		},
		{
			name: "unknown function", key: "FunctionID",
			value: "FloodPopulation", reset: inasafe.FloodBuildingID, errText: "unknown impact function",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			Cfg.Set(test.key, test.value)
			defer Cfg.Set(test.key, test.reset)
			Root.SetOutput(new(bytes.Buffer))
			Root.SetArgs([]string{"run"})
			err := Root.Execute()
			if err == nil {
				t.Fatal("there should be an error")
			}
			if !strings.Contains(err.Error(), test.errText) {
				t.Errorf("error %q should contain %q", err, test.errText)
			}
		})
	}
}

func TestFunctions(t *testing.T) {
	out := new(bytes.Buffer)
	Root.SetOutput(out)
	Root.SetArgs([]string{"functions",
		"--Hazard=../testdata/hazard.geojson",
		"--Exposure=../testdata/exposure.geojson"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), inasafe.FloodBuildingID) {
		t.Errorf("output: %s", out.String())
	}
}
