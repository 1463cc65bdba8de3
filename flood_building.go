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

package inasafe

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/inasafe/internal/hash"
	"github.com/spf13/cast"
)

// FloodBuildingParameters configure the flood building impact function.
type FloodBuildingParameters struct {
	// TargetField is the impact layer field that marks inundated
	// buildings with 1.
	TargetField string `json:"target_field"`

	// BuildingTypeField is the exposure layer field holding building
	// types.
	BuildingTypeField string `json:"building_type_field"`

	// AffectedField is the hazard layer field holding information
	// about inundated areas.
	AffectedField string `json:"affected_field"`

	// AffectedValue is the value of AffectedField that marks an area
	// as inundated. It is converted to a number if AffectedField is
	// numeric.
	AffectedValue string `json:"affected_value"`
}

// DefaultFloodBuildingParameters returns the default parameters.
func DefaultFloodBuildingParameters() FloodBuildingParameters {
	return FloodBuildingParameters{
		TargetField:       "flooded",
		BuildingTypeField: "TYPE",
		AffectedField:     "FLOODPRONE",
		AffectedValue:     "YES",
	}
}

func (p FloodBuildingParameters) check() error {
	names := []string{"target_field", "building_type_field", "affected_field"}
	for i, v := range []string{p.TargetField, p.BuildingTypeField, p.AffectedField} {
		if v == "" {
			return fmt.Errorf("inasafe: parameter %q must not be empty", names[i])
		}
	}
	return nil
}

// FloodBuilding marks buildings that are inside flood-prone hazard
// polygons.
type FloodBuilding struct {
	Parameters FloodBuildingParameters

	// InvalidUnion decides what happens when merging a hazard polygon
	// yields an invalid geometry.
	InvalidUnion UnionPolicy

	Log logrus.FieldLogger
}

// NewFloodBuilding returns a flood building function with parameters p.
func NewFloodBuilding(p FloodBuildingParameters) *FloodBuilding {
	return &FloodBuilding{
		Parameters: p,
		Log:        logrus.StandardLogger(),
	}
}

// FloodBuildingID identifies the flood building function in a Registry.
const FloodBuildingID = "FloodBuilding"

// Metadata implements ImpactFunction.
func (f *FloodBuilding) Metadata() Metadata {
	return Metadata{
		ID:     FloodBuildingID,
		Title:  "Be-flooded",
		Rating: 1,
		Requirements: []Requirement{
			{Category: "hazard", Subcategories: []string{"flood", "tsunami"}, LayerType: "vector"},
			{Category: "exposure", Subcategories: []string{"structure"}, LayerType: "vector"},
		},
	}
}

// Run implements ImpactFunction. layers must contain exactly one layer
// with category "hazard" and one with category "exposure".
func (f *FloodBuilding) Run(layers []*Layer, extent Extent) (*ImpactLayer, error) {
	hazard, err := HazardLayer(layers)
	if err != nil {
		return nil, err
	}
	exposure, err := ExposureLayer(layers)
	if err != nil {
		return nil, err
	}
	return f.Impact(hazard, exposure, extent)
}

// affectedMatcher returns a function that tests hazard attribute values
// against the affected value, and the affected value as compared.
func (f *FloodBuilding) affectedMatcher(t FieldType) (func(interface{}) bool, interface{}, error) {
	v := f.Parameters.AffectedValue
	if t.Numeric() {
		want, err := cast.ToFloat64E(strings.TrimSpace(v))
		if err != nil {
			return nil, nil, fmt.Errorf("inasafe: affected value %q cannot be compared with numeric field %q: %v",
				v, f.Parameters.AffectedField, err)
		}
		return func(a interface{}) bool {
			if a == nil {
				return false
			}
			got, err := cast.ToFloat64E(a)
			return err == nil && got == want
		}, want, nil
	}
	return func(a interface{}) bool {
		if a == nil {
			return false
		}
		got, err := cast.ToStringE(a)
		return err == nil && got == v
	}, v, nil
}

// Impact computes the impact of hazard on exposure within extent.
// Neither input layer is modified.
func (f *FloodBuilding) Impact(hazard, exposure *Layer, extent Extent) (*ImpactLayer, error) {
	p := f.Parameters
	if err := p.check(); err != nil {
		return nil, err
	}
	if err := extent.Validate(); err != nil {
		return nil, err
	}
	log := f.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	affectedIndex := hazard.FieldIndex(p.AffectedField)
	if affectedIndex < 0 {
		return nil, MissingFieldError{Parameter: "affected_field", Field: p.AffectedField, Layer: "hazard"}
	}
	typeIndex := exposure.FieldIndex(p.BuildingTypeField)
	if typeIndex < 0 {
		return nil, MissingFieldError{Parameter: "building_type_field", Field: p.BuildingTypeField, Layer: "exposure"}
	}
	matches, affectedValue, err := f.affectedMatcher(hazard.Fields[affectedIndex].Type)
	if err != nil {
		return nil, err
	}

	union := &hazardUnion{policy: f.InvalidUnion, log: log}
	for _, feat := range hazard.FeaturesIn(extent) {
		if !matches(feat.Attributes[affectedIndex]) {
			continue
		}
		if err := union.add(feat); err != nil {
			return nil, err
		}
	}
	if union.poly == nil {
		return nil, NoMatchingFeaturesError{Field: p.AffectedField, Value: affectedValue}
	}
	log.WithFields(logrus.Fields{
		"matched": union.Matched,
		"skipped": union.Skipped,
	}).Info("built hazard union")

	index := newHazardIndex(union.poly)

	out := exposure.cloneSchema("Flooded buildings")
	targetIndex := out.FieldIndex(p.TargetField)
	if targetIndex < 0 {
		out.Fields = append(out.Fields, Field{Name: p.TargetField, Type: Integer})
		targetIndex = len(out.Fields) - 1
	}
	for _, feat := range exposure.FeaturesIn(extent) {
		attrs := make([]interface{}, len(out.Fields))
		copy(attrs, feat.Attributes)
		if index.Intersects(feat.Geom) {
			attrs[targetIndex] = int64(1)
		} else {
			attrs[targetIndex] = int64(0)
		}
		if _, err := out.AddFeature(feat.Geom, attrs...); err != nil {
			return nil, err
		}
	}

	counts, err := Aggregate(out, p.BuildingTypeField, p.TargetField)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"total":   counts.Total,
		"flooded": counts.Flooded,
	}).Info("computed building impact")

	summary := f.summary(hazard, exposure, counts)
	out.Keywords = Keywords{
		KeywordCategory:      "impact",
		KeywordSubcategory:   exposure.Keywords.Get(KeywordSubcategory),
		KeywordLayerType:     "vector",
		KeywordTitle:         out.Name,
		KeywordImpactSummary: summary.HTML(),
		KeywordMapTitle:      "Buildings inundated",
		KeywordTargetField:   p.TargetField,
		KeywordAnalysisID:    analysisID(p, extent, hazard, exposure),
	}
	return &ImpactLayer{
		Layer:   out,
		Summary: summary,
		Style:   inundationStyle(p.TargetField),
		Counts:  counts,
	}, nil
}

// analysisID identifies a run by its parameters, extent and input data.
func analysisID(p FloodBuildingParameters, extent Extent, layers ...*Layer) string {
	objects := []interface{}{FloodBuildingID, p, extent}
	for _, l := range layers {
		objects = append(objects, l.Fields, l.SRS, l.Features)
	}
	return hash.Hash(objects...)
}

func (f *FloodBuilding) summary(hazard, exposure *Layer, c *Counts) Table {
	t := Table{Rows: []TableRow{
		Row(Question(layerTitle(hazard), layerTitle(exposure), f.Metadata().Title)),
		HeaderRow("Building Type", "Flooded", "Total"),
		Row("All", c.Flooded, c.Total),
		HeaderRow("Breakdown by building type"),
	}}
	for _, typ := range c.Types() {
		tc := c.ByType[typ]
		t.Rows = append(t.Rows, Row(typ, tc.Flooded, tc.Total))
	}
	return t
}

// Aggregate counts the features of an impact layer by building type.
// A feature counts as flooded when its target field equals 1.
func Aggregate(l *Layer, buildingTypeField, targetField string) (*Counts, error) {
	typeIndex := l.FieldIndex(buildingTypeField)
	if typeIndex < 0 {
		return nil, MissingFieldError{Parameter: "building_type_field", Field: buildingTypeField, Layer: l.Name}
	}
	targetIndex := l.FieldIndex(targetField)
	if targetIndex < 0 {
		return nil, MissingFieldError{Parameter: "target_field", Field: targetField, Layer: l.Name}
	}
	c := newCounts()
	for _, feat := range l.Features {
		v, err := cast.ToIntE(feat.Attributes[targetIndex])
		flooded := err == nil && v == 1
		c.add(feat.Attributes[typeIndex], flooded)
	}
	return c, nil
}
