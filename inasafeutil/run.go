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
	"io"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/inasafe"
	"github.com/spf13/cobra"
)

// loadLayer reads the layer at path, setting its category keyword to
// category if the keywords file does not set one.
func loadLayer(path, category string) (*inasafe.Layer, error) {
	l, err := inasafe.ReadLayer(path)
	if err != nil {
		return nil, err
	}
	if c := l.Keywords.Get(inasafe.KeywordCategory); c == "" {
		l.Keywords[inasafe.KeywordCategory] = category
	} else if c != category {
		return nil, fmt.Errorf("inasafe: the %s layer %s has category %q in its keywords", category, path, c)
	}
	return l, nil
}

// Run runs the impact function with ID functionID on the layers in the
// hazard and exposure files, writes the impact layer to outputFile and
// prints the impact summary.
//
// CobraCommand is the cobra command that receives the log and summary output.
//
// LogFile is the path to the desired logfile location. It can include
// environment variables.
//
// extent is the analysis extent. If it is nil, the intersection of the
// hazard and exposure layer extents is used.
//
// params are the flood building function parameters and policy says what
// happens when the hazard union becomes invalid.
func Run(CobraCommand *cobra.Command, LogFile, OutputFile, hazardFile, exposureFile string,
	extent *inasafe.Extent, functionID string, params inasafe.FloodBuildingParameters,
	policy inasafe.UnionPolicy) error {

	startTime := time.Now()

	logfile, err := os.Create(LogFile)
	if err != nil {
		return fmt.Errorf("inasafe: problem creating log file: %v", err)
	}
	defer logfile.Close()
	log := logrus.New()
	log.Out = io.MultiWriter(CobraCommand.OutOrStdout(), logfile)

	hazard, err := loadLayer(hazardFile, "hazard")
	if err != nil {
		return err
	}
	exposure, err := loadLayer(exposureFile, "exposure")
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"hazard":   hazardFile,
		"features": len(hazard.Features),
		"extent":   inasafe.ExtentFromBounds(hazard.Bounds()),
	}).Info("loaded hazard layer")
	log.WithFields(logrus.Fields{
		"exposure": exposureFile,
		"features": len(exposure.Features),
		"extent":   inasafe.ExtentFromBounds(exposure.Bounds()),
	}).Info("loaded exposure layer")

	hazard, err = inasafe.Reproject(hazard, exposure.SRS)
	if err != nil {
		return err
	}

	var e inasafe.Extent
	if extent != nil {
		e = *extent
	} else {
		if e, err = inasafe.IntersectExtents(hazard.Bounds(), exposure.Bounds()); err != nil {
			return err
		}
		log.WithField("extent", e).Info("using the intersection of the layer extents")
	}

	fb := inasafe.NewFloodBuilding(params)
	fb.InvalidUnion = policy
	fb.Log = log
	fn, err := inasafe.NewRegistry(fb).Get(functionID)
	if err != nil {
		return err
	}

	impact, err := fn.Run([]*inasafe.Layer{hazard, exposure}, e)
	if err != nil {
		return err
	}
	if err := inasafe.WriteLayer(impact.Layer, OutputFile, &impact.Style); err != nil {
		return err
	}
	fields := logrus.Fields{
		"output":  OutputFile,
		"runtime": time.Since(startTime),
	}
	if c, ok := impact.Style.Class(1); ok {
		fields[c.Label] = impact.Counts.Flooded
	}
	if c, ok := impact.Style.Class(0); ok {
		fields[c.Label] = impact.Counts.Total - impact.Counts.Flooded
	}
	log.WithFields(fields).Info("wrote impact layer")

	CobraCommand.Println(impact.Summary.String())
	return nil
}

// Functions prints the impact functions that can be run on the layers in
// the hazard and exposure files, or all functions if either file is
// not specified.
func Functions(CobraCommand *cobra.Command, hazardFile, exposureFile string) error {
	reg := inasafe.DefaultRegistry()
	var funcs []inasafe.ImpactFunction
	if hazardFile == "" || exposureFile == "" {
		for _, id := range reg.IDs() {
			f, _ := reg.Get(id)
			funcs = append(funcs, f)
		}
	} else {
		hazard, err := loadLayer(os.ExpandEnv(hazardFile), "hazard")
		if err != nil {
			return err
		}
		exposure, err := loadLayer(os.ExpandEnv(exposureFile), "exposure")
		if err != nil {
			return err
		}
		funcs = reg.Available(hazard.Keywords, exposure.Keywords)
	}
	if len(funcs) == 0 {
		CobraCommand.Println("No impact functions are available for these layers.")
		return nil
	}
	for _, f := range funcs {
		m := f.Metadata()
		reqs := make([]string, len(m.Requirements))
		for i, r := range m.Requirements {
			reqs[i] = r.String()
		}
		CobraCommand.Printf("%s\t%s\t%s\n", m.ID, m.Title, strings.Join(reqs, "; "))
	}
	return nil
}
