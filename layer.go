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
	"sort"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// FieldType is the declared type of an attribute field.
type FieldType int

// These are the attribute field types a layer can hold.
const (
	String FieldType = iota
	Integer
	Real
	Date
)

// Numeric returns whether values of type t are numbers.
func (t FieldType) Numeric() bool {
	return t == Integer || t == Real
}

func (t FieldType) String() string {
	switch t {
	case String:
		return "String"
	case Integer:
		return "Integer"
	case Real:
		return "Real"
	case Date:
		return "Date"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// Field describes one column of a layer's attribute table.
type Field struct {
	Name string
	Type FieldType
}

// Feature is a geometry together with one row of attribute values.
// Attribute values are nil (NULL), string, int64 or float64, in the
// same order as the fields of the layer that holds the feature.
type Feature struct {
	ID int
	geom.Geom
	Attributes []interface{}
}

// Bounds returns the bounds of the feature geometry. Features without
// a geometry have empty bounds.
func (f *Feature) Bounds() *geom.Bounds {
	if f.Geom == nil {
		return geom.NewBounds()
	}
	return f.Geom.Bounds()
}

// Keywords hold layer metadata such as its category ("hazard",
// "exposure" or "impact"), subcategory and layer type.
type Keywords map[string]string

// Keyword names that are used when matching layers to impact functions
// and when describing impact layers.
const (
	KeywordCategory      = "category"
	KeywordSubcategory   = "subcategory"
	KeywordLayerType     = "layertype"
	KeywordTitle         = "title"
	KeywordImpactSummary = "impact_summary"
	KeywordMapTitle      = "map_title"
	KeywordTargetField   = "target_field"
	KeywordAnalysisID    = "analysis_id"
)

// Get returns the value of keyword k, or "" if it is not set.
func (k Keywords) Get(key string) string {
	if k == nil {
		return ""
	}
	return k[key]
}

// Layer is an in-memory vector layer.
type Layer struct {
	Name     string
	Fields   []Field
	Features []*Feature
	Keywords Keywords

	// SRS is the spatial reference of the layer as Proj4 or WKT text.
	// It is empty when the projection is unknown.
	SRS string
}

// NewLayer creates an empty layer with the given attribute fields.
func NewLayer(name string, fields ...Field) *Layer {
	return &Layer{
		Name:     name,
		Fields:   fields,
		Keywords: make(Keywords),
	}
}

// FieldIndex returns the index of the field with the given name, or -1
// if the layer has no such field. Field names are matched without
// regard to case.
func (l *Layer) FieldIndex(name string) int {
	for i, f := range l.Fields {
		if strings.EqualFold(f.Name, name) {
			return i
		}
	}
	return -1
}

// AddFeature appends a feature to the layer, assigning it the next
// feature ID. It returns an error if the number of attribute values
// does not match the number of fields.
func (l *Layer) AddFeature(g geom.Geom, attrs ...interface{}) (*Feature, error) {
	if len(attrs) != len(l.Fields) {
		return nil, fmt.Errorf("inasafe: layer %s has %d fields but %d attribute values were given",
			l.Name, len(l.Fields), len(attrs))
	}
	f := &Feature{ID: len(l.Features), Geom: g, Attributes: attrs}
	l.Features = append(l.Features, f)
	return f, nil
}

// Bounds returns the combined extent of all features in the layer.
func (l *Layer) Bounds() *geom.Bounds {
	b := geom.NewBounds()
	for _, f := range l.Features {
		if f.Geom != nil {
			b.Extend(f.Geom.Bounds())
		}
	}
	return b
}

// FeaturesIn returns the features whose bounding boxes intersect
// extent, in the order they appear in the layer. The layer is not
// modified.
func (l *Layer) FeaturesIn(extent Extent) []*Feature {
	index := rtree.NewTree(25, 50)
	for _, f := range l.Features {
		if f.Geom != nil {
			index.Insert(f)
		}
	}
	found := index.SearchIntersect(extent.Bounds())
	o := make([]*Feature, len(found))
	for i, s := range found {
		o[i] = s.(*Feature)
	}
	sort.Slice(o, func(i, j int) bool { return o[i].ID < o[j].ID })
	return o
}

// cloneSchema returns a new empty layer with a copy of the fields and
// spatial reference of l.
func (l *Layer) cloneSchema(name string) *Layer {
	fields := make([]Field, len(l.Fields))
	copy(fields, l.Fields)
	o := NewLayer(name, fields...)
	o.SRS = l.SRS
	return o
}
