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
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lnashier/viper"
	"github.com/spatialmodel/inasafe"
	"github.com/spf13/cast"
)

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expand any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`you need to specify an output file configuration variable (for example: OutputFile="impact.shp")`)
	}
	f = os.ExpandEnv(f)
	switch strings.ToLower(filepath.Ext(f)) {
	case ".shp", ".geojson", ".json":
	default:
		return f, fmt.Errorf("inasafe: the OutputFile %s should end in .shp or .geojson", f)
	}
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("inasafe: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}

// checkInputFile expands any environment variables in the path to an
// input layer and makes sure the file exists.
func checkInputFile(name, f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf("you need to specify the %s layer file configuration variable", name)
	}
	f = os.ExpandEnv(f)
	if _, err := os.Stat(f); err != nil {
		return f, fmt.Errorf("inasafe: problem with %s layer file: %v", name, err)
	}
	return f, nil
}

// checkLogFile fills in a default value for the log file path if one isn't
// specified.
func checkLogFile(logFile, outputFile string) string {
	if logFile == "" {
		logFile = strings.TrimSuffix(outputFile, filepath.Ext(outputFile)) + ".log"
	}
	return os.ExpandEnv(logFile)
}

// parseExtent converts the Extent configuration variable to an extent.
// It returns nil if no extent is specified.
func parseExtent(s []string) (*inasafe.Extent, error) {
	// A single value may hold all four comma-separated coordinates.
	if len(s) == 1 {
		s = strings.Split(s[0], ",")
	}
	if len(s) == 0 || (len(s) == 1 && strings.TrimSpace(s[0]) == "") {
		return nil, nil
	}
	if len(s) != 4 {
		return nil, fmt.Errorf("inasafe: Extent must have 4 values (xmin, ymin, xmax, ymax) but has %d", len(s))
	}
	var e inasafe.Extent
	for i, v := range s {
		f, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("inasafe: parsing Extent: %v", err)
		}
		e[i] = f
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return &e, nil
}

// floodBuildingParameters reads the flood building impact function
// parameters from cfg.
func floodBuildingParameters(cfg *viper.Viper) inasafe.FloodBuildingParameters {
	return inasafe.FloodBuildingParameters{
		TargetField:       cfg.GetString("FloodBuilding.TargetField"),
		BuildingTypeField: cfg.GetString("FloodBuilding.BuildingTypeField"),
		AffectedField:     cfg.GetString("FloodBuilding.AffectedField"),
		AffectedValue:     cfg.GetString("FloodBuilding.AffectedValue"),
	}
}
