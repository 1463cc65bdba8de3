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

	"github.com/lnashier/viper"
	"github.com/spatialmodel/inasafe"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	defaults := inasafe.DefaultFloodBuildingParameters()

	// Options are the configuration options available to InaSAFE.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "Hazard",
			usage: `
              Hazard is the path to the hazard layer, a shapefile (.shp) or
              GeoJSON (.geojson) file. Its keywords are read from the file
              with the same name and the extension '.keywords'.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), functionsCmd.Flags()},
		},
		{
			name: "Exposure",
			usage: `
              Exposure is the path to the exposure layer, a shapefile (.shp) or
              GeoJSON (.geojson) file.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), functionsCmd.Flags()},
		},
		{
			name: "Extent",
			usage: `
              Extent is the analysis extent as xmin,ymin,xmax,ymax in the
              coordinates of the exposure layer. If it is not set, the
              intersection of the hazard and exposure layer extents is used.`,
			defaultVal: []string{},
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FunctionID",
			usage: `
              FunctionID is the ID of the impact function to run.`,
			shorthand:  "f",
			defaultVal: inasafe.FloodBuildingID,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FloodBuilding.TargetField",
			usage: `
              TargetField is the impact layer field that is set to 1 for
              inundated buildings and 0 otherwise.`,
			defaultVal: defaults.TargetField,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FloodBuilding.BuildingTypeField",
			usage: `
              BuildingTypeField is the exposure layer field holding the
              building type.`,
			defaultVal: defaults.BuildingTypeField,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FloodBuilding.AffectedField",
			usage: `
              AffectedField is the hazard layer field that marks flood-prone
              areas.`,
			defaultVal: defaults.AffectedField,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "FloodBuilding.AffectedValue",
			usage: `
              AffectedValue is the value of AffectedField for flood-prone
              areas. It is compared as a number if AffectedField is numeric.`,
			defaultVal: defaults.AffectedValue,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InvalidUnion",
			usage: `
              InvalidUnion specifies what to do when merging a hazard polygon
              gives an invalid geometry: 'skip' keeps the previous union and
              logs a warning, 'abort' stops with an error.`,
			defaultVal: "skip",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path to the desired output file
              (.shp or .geojson). A keywords file is written next to it.`,
			shorthand:  "o",
			defaultVal: "impact.shp",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LogFile",
			usage: `
              LogFile specifies the path to the log file. If it is empty,
              the log is written next to OutputFile with the extension '.log'.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("INASAFE")
	Cfg.AutomaticEnv()

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case []string:
				if option.shorthand == "" {
					set.StringSlice(option.name, option.defaultVal.([]string), option.usage)
				} else {
					set.StringSliceP(option.name, option.shorthand, option.defaultVal.([]string), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(functionsCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("inasafe: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "inasafe",
	Short: "A disaster impact assessment tool.",
	Long: `InaSAFE estimates the impact of a natural hazard, such as a flood, on
exposed assets, such as buildings, by overlaying a hazard layer on an
exposure layer within an analysis extent.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'INASAFE_var' where 'var' is the
name of the variable to be set. File paths are allowed to contain environment
variables within them.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of InaSAFE.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("InaSAFE v%s\n", inasafe.Version)
	},
	DisableAutoGenTag: true,
}

// runCmd is a command that runs an impact function.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run an impact function.",
	Long: `run loads the hazard and exposure layers, runs the chosen impact
function within the analysis extent, writes the impact layer with its
keywords to OutputFile and prints the impact summary.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		hazard, err := checkInputFile("Hazard", Cfg.GetString("Hazard"))
		if err != nil {
			return err
		}
		exposure, err := checkInputFile("Exposure", Cfg.GetString("Exposure"))
		if err != nil {
			return err
		}
		extent, err := parseExtent(Cfg.GetStringSlice("Extent"))
		if err != nil {
			return err
		}
		policy, err := inasafe.ParseUnionPolicy(Cfg.GetString("InvalidUnion"))
		if err != nil {
			return err
		}
		return Run(
			cmd,
			checkLogFile(Cfg.GetString("LogFile"), outputFile),
			outputFile,
			hazard, exposure,
			extent,
			Cfg.GetString("FunctionID"),
			floodBuildingParameters(Cfg),
			policy,
		)
	},
	DisableAutoGenTag: true,
}

// functionsCmd is a command that lists impact functions.
var functionsCmd = &cobra.Command{
	Use:   "functions",
	Short: "List the available impact functions.",
	Long: `functions lists the impact functions whose requirements are met by
the keywords of the Hazard and Exposure layers. If either layer is not
given, all registered functions are listed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Functions(cmd, Cfg.GetString("Hazard"), Cfg.GetString("Exposure"))
	},
	DisableAutoGenTag: true,
}
