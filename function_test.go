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
	"html/template"
	"testing"
)

func TestRequirementSatisfied(t *testing.T) {
	r := Requirement{Category: "hazard", Subcategories: []string{"flood", "tsunami"}, LayerType: "vector"}
	for _, test := range []struct {
		kw   Keywords
		want bool
	}{
		{kw: Keywords{"category": "hazard", "subcategory": "flood", "layertype": "vector"}, want: true},
		{kw: Keywords{"category": "hazard", "subcategory": "tsunami", "layertype": "vector"}, want: true},
		{kw: Keywords{"category": "hazard", "subcategory": "earthquake", "layertype": "vector"}, want: false},
		{kw: Keywords{"category": "hazard", "subcategory": "flood", "layertype": "raster"}, want: false},
		{kw: Keywords{"category": "exposure", "subcategory": "flood", "layertype": "vector"}, want: false},
		{kw: nil, want: false},
	} {
		if have := r.Satisfied(test.kw); have != test.want {
			t.Errorf("%v: %v != %v", test.kw, have, test.want)
		}
	}
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	if f, err := r.Get(FloodBuildingID); err != nil || f.Metadata().Title != "Be-flooded" {
		t.Errorf("Get: %v, %v", f, err)
	}
	if _, err := r.Get("FloodPopulation"); err == nil {
		t.Errorf("unknown function should be an error")
	}

	hazard := Keywords{"category": "hazard", "subcategory": "flood", "layertype": "vector"}
	exposure := Keywords{"category": "exposure", "subcategory": "structure", "layertype": "vector"}
	if fs := r.Available(hazard, exposure); len(fs) != 1 || fs[0].Metadata().ID != FloodBuildingID {
		t.Errorf("Available: %v", fs)
	}
	// The order of the layers doesn't matter.
	if fs := r.Available(exposure, hazard); len(fs) != 1 {
		t.Errorf("Available (swapped): %v", fs)
	}
	population := Keywords{"category": "exposure", "subcategory": "population", "layertype": "raster"}
	if fs := r.Available(hazard, population); len(fs) != 0 {
		t.Errorf("Available (population): %v", fs)
	}
}

func TestLayerByCategory(t *testing.T) {
	hazard, exposure := testLayers(t)
	if l, err := HazardLayer([]*Layer{exposure, hazard}); err != nil || l != hazard {
		t.Errorf("HazardLayer: %v, %v", l, err)
	}
	if l, err := ExposureLayer([]*Layer{exposure, hazard}); err != nil || l != exposure {
		t.Errorf("ExposureLayer: %v, %v", l, err)
	}
	if _, err := ExposureLayer([]*Layer{hazard}); err == nil {
		t.Errorf("missing exposure layer should be an error")
	}
	if _, err := HazardLayer([]*Layer{hazard, hazard}); err == nil {
		t.Errorf("two hazard layers should be an error")
	}
	if _, err := NewFloodBuilding(DefaultFloodBuildingParameters()).Run([]*Layer{hazard}, testExtent); err == nil {
		t.Errorf("Run without an exposure layer should be an error")
	}
}

func TestQuestion(t *testing.T) {
	want := template.HTML("In the event of <i>Flood &amp; mud</i> how many <i>Buildings</i> might <i>be-flooded</i>?")
	if have := Question("Flood & mud", "Buildings", "Be-flooded"); have != want {
		t.Errorf("%s != %s", have, want)
	}
}
