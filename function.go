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
	"html"
	"html/template"
	"sort"
	"strings"
)

// Requirement describes the kind of layer an impact function accepts,
// for example a vector hazard layer of subcategory flood or tsunami.
type Requirement struct {
	Category      string
	Subcategories []string
	LayerType     string
}

// Satisfied reports whether a layer with keywords kw meets r.
func (r Requirement) Satisfied(kw Keywords) bool {
	if kw.Get(KeywordCategory) != r.Category {
		return false
	}
	if r.LayerType != "" && kw.Get(KeywordLayerType) != r.LayerType {
		return false
	}
	if len(r.Subcategories) == 0 {
		return true
	}
	sub := kw.Get(KeywordSubcategory)
	for _, s := range r.Subcategories {
		if s == sub {
			return true
		}
	}
	return false
}

func (r Requirement) String() string {
	s := fmt.Sprintf("category==%q", r.Category)
	if len(r.Subcategories) > 0 {
		s += fmt.Sprintf(" and subcategory in %q", r.Subcategories)
	}
	if r.LayerType != "" {
		s += fmt.Sprintf(" and layertype==%q", r.LayerType)
	}
	return s
}

// Metadata describes an impact function.
type Metadata struct {
	ID    string
	Title string

	// Rating is a rough indication of the function's maturity, from 1
	// (experimental) to 4.
	Rating       int
	Requirements []Requirement
}

// ImpactFunction computes an impact layer from a set of input layers
// restricted to an analysis extent.
type ImpactFunction interface {
	Metadata() Metadata
	Run(layers []*Layer, extent Extent) (*ImpactLayer, error)
}

// ImpactLayer is the result of an impact function: a new vector layer
// with its summary, style and statistics. It is owned by the caller.
type ImpactLayer struct {
	*Layer
	Summary Table
	Style   StyleInfo
	Counts  *Counts
}

// layerByCategory returns the single layer whose category keyword is c.
func layerByCategory(layers []*Layer, c string) (*Layer, error) {
	var o *Layer
	for _, l := range layers {
		if l.Keywords.Get(KeywordCategory) != c {
			continue
		}
		if o != nil {
			return nil, fmt.Errorf("inasafe: more than one %s layer was given (%s and %s)", c, o.Name, l.Name)
		}
		o = l
	}
	if o == nil {
		return nil, fmt.Errorf("inasafe: no %s layer was given; set the '%s: %s' keyword on one of the layers",
			c, KeywordCategory, c)
	}
	return o, nil
}

// HazardLayer returns the layer tagged with category "hazard".
func HazardLayer(layers []*Layer) (*Layer, error) { return layerByCategory(layers, "hazard") }

// ExposureLayer returns the layer tagged with category "exposure".
func ExposureLayer(layers []*Layer) (*Layer, error) { return layerByCategory(layers, "exposure") }

// layerTitle prefers the title keyword and falls back to the layer name.
func layerTitle(l *Layer) string {
	if t := l.Keywords.Get(KeywordTitle); t != "" {
		return t
	}
	return l.Name
}

// Question phrases the analysis as a question for the report.
func Question(hazardTitle, exposureTitle, functionTitle string) template.HTML {
	return template.HTML(fmt.Sprintf("In the event of <i>%s</i> how many <i>%s</i> might <i>%s</i>?",
		html.EscapeString(hazardTitle), html.EscapeString(exposureTitle),
		html.EscapeString(strings.ToLower(functionTitle))))
}

// Registry holds the impact functions available to a host.
type Registry struct {
	funcs map[string]ImpactFunction
}

// NewRegistry returns a registry holding fs.
func NewRegistry(fs ...ImpactFunction) *Registry {
	r := &Registry{funcs: make(map[string]ImpactFunction)}
	for _, f := range fs {
		r.Register(f)
	}
	return r
}

// Register adds f, replacing any function with the same ID.
func (r *Registry) Register(f ImpactFunction) {
	r.funcs[f.Metadata().ID] = f
}

// Get returns the function with the given ID.
func (r *Registry) Get(id string) (ImpactFunction, error) {
	f, ok := r.funcs[id]
	if !ok {
		return nil, fmt.Errorf("inasafe: unknown impact function %q; available functions are %v", id, r.IDs())
	}
	return f, nil
}

// IDs returns the sorted IDs of all registered functions.
func (r *Registry) IDs() []string {
	o := make([]string, 0, len(r.funcs))
	for id := range r.funcs {
		o = append(o, id)
	}
	sort.Strings(o)
	return o
}

// Available returns the functions, sorted by ID, whose requirements are
// all met by one of the hazard or exposure keywords.
func (r *Registry) Available(hazard, exposure Keywords) []ImpactFunction {
	var o []ImpactFunction
	for _, id := range r.IDs() {
		f := r.funcs[id]
		ok := true
		for _, req := range f.Metadata().Requirements {
			if !req.Satisfied(hazard) && !req.Satisfied(exposure) {
				ok = false
				break
			}
		}
		if ok {
			o = append(o, f)
		}
	}
	return o
}

// DefaultRegistry returns a registry holding the built-in impact
// functions with their default parameters.
func DefaultRegistry() *Registry {
	return NewRegistry(NewFloodBuilding(DefaultFloodBuildingParameters()))
}
