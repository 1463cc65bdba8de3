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
	"bytes"
	"encoding/json"
	"fmt"
	"io/ioutil"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/geojson"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/ghodss/yaml"
	goshp "github.com/jonas-p/go-shp"
	"github.com/spf13/cast"
)

const (
	// stringLength is the width of string fields in output shapefiles.
	stringLength = 50

	// intLength, floatLength and floatPrecision are the widths of
	// numeric fields in output shapefiles.
	intLength      = 10
	floatLength    = 19
	floatPrecision = 8
)

// ReadLayer reads a vector layer from a shapefile (.shp) or a GeoJSON
// feature collection (.geojson or .json), together with its keywords
// from the sidecar file <base>.keywords if there is one.
func ReadLayer(path string) (*Layer, error) {
	var l *Layer
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		l, err = ReadShapefile(path)
	case ".geojson", ".json":
		l, err = ReadGeoJSON(path)
	default:
		return nil, fmt.Errorf("inasafe: unsupported layer file %s; it should be a .shp or .geojson file", path)
	}
	if err != nil {
		return nil, err
	}
	kw, err := ReadKeywords(keywordsPath(path))
	if err != nil && !os.IsNotExist(err) {
		return nil, err
	}
	for k, v := range kw {
		l.Keywords[k] = v
	}
	return l, nil
}

func trimExt(path string) string {
	return strings.TrimSuffix(path, filepath.Ext(path))
}

func keywordsPath(path string) string {
	return trimExt(path) + ".keywords"
}

// dbfFieldType converts a dBase field descriptor to a FieldType.
func dbfFieldType(f goshp.Field) FieldType {
	switch f.Fieldtype {
	case 'N':
		if f.Precision == 0 {
			return Integer
		}
		return Real
	case 'F':
		return Real
	case 'D':
		return Date
	default:
		return String
	}
}

func dbfFieldName(f goshp.Field) string {
	return string(bytes.Trim(f.Name[:], "\x00"))
}

// parseAttribute converts a shapefile attribute to the type of its
// field. Blank numeric attributes are NULL.
func parseAttribute(s string, t FieldType) (interface{}, error) {
	s = strings.TrimSpace(strings.Trim(s, "\x00"))
	switch t {
	case Integer:
		if s == "" {
			return nil, nil
		}
		if v, err := cast.ToInt64E(s); err == nil {
			return v, nil
		}
		// Some writers store whole numbers with decimals in
		// zero-precision fields.
		v, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, err
		}
		return int64(v), nil
	case Real:
		if s == "" {
			return nil, nil
		}
		return cast.ToFloat64E(s)
	default:
		return s, nil
	}
}

// ReadShapefile reads the shapefile at path. The text of the matching
// .prj file, if present, is stored as the layer's SRS.
func ReadShapefile(path string) (*Layer, error) {
	d, err := shp.NewDecoder(path)
	if err != nil {
		return nil, fmt.Errorf("inasafe: opening shapefile %s: %v", path, err)
	}
	defer d.Close()

	var fields []Field
	var names []string
	for _, f := range d.Fields() {
		name := dbfFieldName(f)
		fields = append(fields, Field{Name: name, Type: dbfFieldType(f)})
		names = append(names, name)
	}
	l := NewLayer(filepath.Base(trimExt(path)), fields...)
	for {
		g, vals, more := d.DecodeRowFields(names...)
		if !more {
			break
		}
		attrs := make([]interface{}, len(fields))
		for i, f := range fields {
			attrs[i], err = parseAttribute(vals[f.Name], f.Type)
			if err != nil {
				return nil, fmt.Errorf("inasafe: reading shapefile %s: field %s of record %d: %v",
					path, f.Name, len(l.Features), err)
			}
		}
		if _, err := l.AddFeature(g, attrs...); err != nil {
			return nil, err
		}
	}
	if err := d.Error(); err != nil {
		return nil, fmt.Errorf("inasafe: reading shapefile %s: %v", path, err)
	}
	if b, err := ioutil.ReadFile(trimExt(path) + ".prj"); err == nil {
		l.SRS = strings.TrimSpace(string(b))
	}
	return l, nil
}

// shpShapeType returns the shapefile shape type that can hold g.
func shpShapeType(g geom.Geom) goshp.ShapeType {
	switch g.(type) {
	case geom.Point:
		return goshp.POINT
	case geom.MultiPoint:
		return goshp.MULTIPOINT
	case geom.LineString, geom.MultiLineString:
		return goshp.POLYLINE
	default:
		return goshp.POLYGON
	}
}

// shpGeom converts g to one of the geometry types the shapefile
// encoder supports.
func shpGeom(g geom.Geom) (geom.Geom, error) {
	switch t := g.(type) {
	case nil:
		return nil, nil
	case geom.Point, geom.MultiPoint, geom.MultiLineString, geom.Polygon:
		return g, nil
	case geom.LineString:
		return geom.MultiLineString{t}, nil
	case geom.MultiPolygon:
		var o geom.Polygon
		for _, p := range t {
			o = append(o, p...)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("inasafe: geometry type %T cannot be written to a shapefile", g)
	}
}

// shpField returns the dBase descriptor for f.
func shpField(f Field) goshp.Field {
	switch f.Type {
	case Integer:
		return goshp.NumberField(f.Name, intLength)
	case Real:
		return goshp.FloatField(f.Name, floatLength, floatPrecision)
	default:
		return goshp.StringField(f.Name, stringLength)
	}
}

// shpValue converts an attribute to a value the shapefile writer
// accepts for a field of type t. NULL is written as a blank.
func shpValue(v interface{}, t FieldType) interface{} {
	if v == nil {
		return ""
	}
	switch t {
	case Integer:
		if i, err := cast.ToIntE(v); err == nil {
			return i
		}
	case Real:
		if f, err := cast.ToFloat64E(v); err == nil {
			return f
		}
	}
	return cast.ToString(v)
}

// WriteShapefile writes l to a shapefile at path, along with a .prj
// file if the layer has a spatial reference.
func WriteShapefile(l *Layer, path string) error {
	path = trimExt(path) + ".shp"
	var shapeType goshp.ShapeType = goshp.POLYGON
	for _, f := range l.Features {
		if f.Geom != nil {
			shapeType = shpShapeType(f.Geom)
			break
		}
	}
	fields := make([]goshp.Field, len(l.Fields))
	for i, f := range l.Fields {
		fields[i] = shpField(f)
	}
	e, err := shp.NewEncoderFromFields(path, shapeType, fields...)
	if err != nil {
		return fmt.Errorf("inasafe: creating shapefile %s: %v", path, err)
	}
	for _, f := range l.Features {
		g, err := shpGeom(f.Geom)
		if err != nil {
			e.Close()
			return err
		}
		vals := make([]interface{}, len(l.Fields))
		for i, fld := range l.Fields {
			vals[i] = shpValue(f.Attributes[i], fld.Type)
		}
		if err := e.EncodeFields(g, vals...); err != nil {
			e.Close()
			return fmt.Errorf("inasafe: writing shapefile %s: %v", path, err)
		}
	}
	e.Close()

	if l.SRS != "" {
		if err := ioutil.WriteFile(trimExt(path)+".prj", []byte(l.SRS), 0644); err != nil {
			return fmt.Errorf("inasafe: writing projection file: %v", err)
		}
	}
	return nil
}

// geoJSONFeature is a GeoJSON feature with an undecoded geometry.
type geoJSONFeature struct {
	Type       string                 `json:"type"`
	Geometry   *geojson.Geometry      `json:"geometry"`
	Properties map[string]interface{} `json:"properties"`
}

type geoJSONFeatureCollection struct {
	Type     string            `json:"type"`
	Features []*geoJSONFeature `json:"features"`
}

// decodeGeoJSONGeometry decodes g, splitting multi-part geometries into
// parts that the geojson package can decode.
func decodeGeoJSONGeometry(g *geojson.Geometry) (geom.Geom, error) {
	if g == nil {
		return nil, nil
	}
	var partType string
	switch g.Type {
	case "MultiPoint":
		partType = "Point"
	case "MultiLineString":
		partType = "LineString"
	case "MultiPolygon":
		partType = "Polygon"
	default:
		return geojson.FromGeoJSON(g)
	}
	coords, ok := g.Coordinates.([]interface{})
	if !ok {
		return nil, geojson.InvalidGeometryError{}
	}
	var mp geom.MultiPoint
	var ml geom.MultiLineString
	var mpoly geom.MultiPolygon
	for _, c := range coords {
		part, err := geojson.FromGeoJSON(&geojson.Geometry{Type: partType, Coordinates: c})
		if err != nil {
			return nil, err
		}
		switch p := part.(type) {
		case geom.Point:
			mp = append(mp, p)
		case geom.LineString:
			ml = append(ml, p)
		case geom.Polygon:
			mpoly = append(mpoly, p)
		}
	}
	switch partType {
	case "Point":
		return mp, nil
	case "LineString":
		return ml, nil
	default:
		return mpoly, nil
	}
}

// inferFieldType chooses a field type that can hold all of vals.
func inferFieldType(vals []interface{}) FieldType {
	t := Integer
	seen := false
	for _, v := range vals {
		switch x := v.(type) {
		case nil:
			continue
		case float64:
			seen = true
			if x != math.Trunc(x) {
				t = Real
			}
		default:
			return String
		}
	}
	if !seen {
		return String
	}
	return t
}

// ReadGeoJSON reads a GeoJSON feature collection. Attribute fields are
// sorted by name and their types are inferred from the values.
func ReadGeoJSON(path string) (*Layer, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("inasafe: reading GeoJSON file: %v", err)
	}
	var fc geoJSONFeatureCollection
	if err := json.Unmarshal(b, &fc); err != nil {
		return nil, fmt.Errorf("inasafe: decoding GeoJSON file %s: %v", path, err)
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("inasafe: GeoJSON file %s holds a %q; a FeatureCollection is required", path, fc.Type)
	}

	values := make(map[string][]interface{})
	for i, f := range fc.Features {
		for k, v := range f.Properties {
			if _, ok := values[k]; !ok {
				values[k] = make([]interface{}, len(fc.Features))
			}
			values[k][i] = v
		}
	}
	names := make([]string, 0, len(values))
	for k := range values {
		names = append(names, k)
	}
	sort.Strings(names)
	fields := make([]Field, len(names))
	for i, n := range names {
		fields[i] = Field{Name: n, Type: inferFieldType(values[n])}
	}

	l := NewLayer(filepath.Base(trimExt(path)), fields...)
	for i, f := range fc.Features {
		g, err := decodeGeoJSONGeometry(f.Geometry)
		if err != nil {
			return nil, fmt.Errorf("inasafe: GeoJSON file %s: feature %d: %v", path, i, err)
		}
		attrs := make([]interface{}, len(fields))
		for j, fld := range fields {
			v := values[fld.Name][i]
			switch {
			case v == nil:
			case fld.Type == Integer:
				attrs[j] = int64(v.(float64))
			case fld.Type == Real:
				attrs[j] = v
			default:
				attrs[j] = cast.ToString(v)
			}
		}
		if _, err := l.AddFeature(g, attrs...); err != nil {
			return nil, err
		}
	}
	return l, nil
}

// encodeGeoJSONGeometry is the inverse of decodeGeoJSONGeometry.
func encodeGeoJSONGeometry(g geom.Geom) (*geojson.Geometry, error) {
	var typ string
	var parts []geom.Geom
	switch t := g.(type) {
	case nil:
		return nil, nil
	case geom.MultiPoint:
		typ = "MultiPoint"
		for _, p := range t {
			parts = append(parts, p)
		}
	case geom.MultiLineString:
		typ = "MultiLineString"
		for _, p := range t {
			parts = append(parts, p)
		}
	case geom.MultiPolygon:
		typ = "MultiPolygon"
		for _, p := range t {
			parts = append(parts, p)
		}
	default:
		return geojson.ToGeoJSON(g)
	}
	coords := make([]interface{}, len(parts))
	for i, p := range parts {
		pg, err := geojson.ToGeoJSON(p)
		if err != nil {
			return nil, err
		}
		coords[i] = pg.Coordinates
	}
	return &geojson.Geometry{Type: typ, Coordinates: coords}, nil
}

// WriteGeoJSON writes l as a GeoJSON feature collection.
func WriteGeoJSON(l *Layer, path string) error {
	fc := geoJSONFeatureCollection{Type: "FeatureCollection", Features: make([]*geoJSONFeature, len(l.Features))}
	for i, f := range l.Features {
		g, err := encodeGeoJSONGeometry(f.Geom)
		if err != nil {
			return fmt.Errorf("inasafe: encoding feature %d: %v", f.ID, err)
		}
		props := make(map[string]interface{}, len(l.Fields))
		for j, fld := range l.Fields {
			props[fld.Name] = f.Attributes[j]
		}
		fc.Features[i] = &geoJSONFeature{Type: "Feature", Geometry: g, Properties: props}
	}
	b, err := json.Marshal(fc)
	if err != nil {
		return fmt.Errorf("inasafe: encoding GeoJSON: %v", err)
	}
	return ioutil.WriteFile(path, b, 0644)
}

// ReadKeywords reads a YAML keywords file. Nested values such as a
// style description are ignored.
func ReadKeywords(path string) (Keywords, error) {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raw map[string]interface{}
	if err := yaml.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("inasafe: reading keywords file %s: %v", path, err)
	}
	kw := make(Keywords)
	for k, v := range raw {
		if s, err := cast.ToStringE(v); err == nil {
			kw[k] = s
		}
	}
	return kw, nil
}

// WriteKeywords writes kw and, if it is not nil, the style description
// to a YAML keywords file.
func WriteKeywords(path string, kw Keywords, style *StyleInfo) error {
	o := make(map[string]interface{}, len(kw)+1)
	for k, v := range kw {
		o[k] = v
	}
	if style != nil {
		if err := style.check(); err != nil {
			return err
		}
		o["style_info"] = style
	}
	b, err := yaml.Marshal(o)
	if err != nil {
		return fmt.Errorf("inasafe: encoding keywords: %v", err)
	}
	return ioutil.WriteFile(path, b, 0644)
}

// WriteLayer writes l to path as a shapefile or GeoJSON file depending
// on the extension, together with its keywords.
func WriteLayer(l *Layer, path string, style *StyleInfo) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".shp":
		err = WriteShapefile(l, path)
	case ".geojson", ".json":
		err = WriteGeoJSON(l, path)
	default:
		return fmt.Errorf("inasafe: unsupported output file %s; it should be a .shp or .geojson file", path)
	}
	if err != nil {
		return err
	}
	return WriteKeywords(keywordsPath(path), l.Keywords, style)
}

// Reproject returns a copy of l in the spatial reference srs. l is
// returned unchanged when either spatial reference is unknown or they
// are the same.
func Reproject(l *Layer, srs string) (*Layer, error) {
	if l.SRS == "" || srs == "" || l.SRS == srs {
		return l, nil
	}
	src, err := proj.Parse(l.SRS)
	if err != nil {
		return nil, fmt.Errorf("inasafe: parsing projection of layer %s: %v", l.Name, err)
	}
	dst, err := proj.Parse(srs)
	if err != nil {
		return nil, fmt.Errorf("inasafe: parsing destination projection: %v", err)
	}
	if src.Equal(dst, 1) {
		return l, nil
	}
	trans, err := src.NewTransform(dst)
	if err != nil {
		return nil, fmt.Errorf("inasafe: creating transform for layer %s: %v", l.Name, err)
	}
	o := l.cloneSchema(l.Name)
	o.SRS = srs
	for k, v := range l.Keywords {
		o.Keywords[k] = v
	}
	for _, f := range l.Features {
		var g geom.Geom
		if f.Geom != nil {
			if g, err = f.Geom.Transform(trans); err != nil {
				return nil, fmt.Errorf("inasafe: reprojecting feature %d of layer %s: %v", f.ID, l.Name, err)
			}
		}
		attrs := make([]interface{}, len(f.Attributes))
		copy(attrs, f.Attributes)
		if _, err := o.AddFeature(g, attrs...); err != nil {
			return nil, err
		}
	}
	return o, nil
}
