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
	"math"
	"reflect"
	"testing"

	"github.com/ctessum/geom"
)

func TestLayerFieldIndex(t *testing.T) {
	l := NewLayer("l", Field{Name: "TYPE"}, Field{Name: "Flooded", Type: Integer})
	for name, want := range map[string]int{"TYPE": 0, "type": 0, "flooded": 1, "FLOODPRONE": -1} {
		if have := l.FieldIndex(name); have != want {
			t.Errorf("%s: %d != %d", name, have, want)
		}
	}
}

func TestLayerAddFeature(t *testing.T) {
	l := NewLayer("l", Field{Name: "TYPE"})
	if _, err := l.AddFeature(square(0, 0, 1, 1)); err == nil {
		t.Errorf("missing attributes should be an error")
	}
	for i := 0; i < 3; i++ {
		f, err := l.AddFeature(square(0, 0, 1, 1), "house")
		if err != nil {
			t.Fatal(err)
		}
		if f.ID != i {
			t.Errorf("ID %d != %d", f.ID, i)
		}
	}
}

func TestLayerFeaturesIn(t *testing.T) {
	l := NewLayer("l")
	// Insert in an order the index is unlikely to preserve.
	for _, x := range []float64{50, 0, 40, 10, 30, 20} {
		if _, err := l.AddFeature(square(x, 0, x+5, 5)); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := l.AddFeature(nil); err != nil {
		t.Fatal(err)
	}
	var ids []int
	for _, f := range l.FeaturesIn(Extent{8, 1, 42, 2}) {
		ids = append(ids, f.ID)
	}
	if want := []int{2, 3, 4, 5}; !reflect.DeepEqual(ids, want) {
		t.Errorf("%v != %v", ids, want)
	}

	// Features added later are found, however they were added.
	if _, err := l.AddFeature(square(9, 0, 11, 5)); err != nil {
		t.Fatal(err)
	}
	if n := len(l.FeaturesIn(Extent{8, 1, 42, 2})); n != 5 {
		t.Errorf("found %d features after adding one", n)
	}
	l.Features = append(l.Features, &Feature{ID: len(l.Features), Geom: square(35, 0, 37, 5)})
	if n := len(l.FeaturesIn(Extent{8, 1, 42, 2})); n != 6 {
		t.Errorf("found %d features after appending one", n)
	}
}

func TestLayerBounds(t *testing.T) {
	l := NewLayer("l")
	l.AddFeature(square(0, 0, 1, 1))
	l.AddFeature(nil)
	l.AddFeature(geom.Point{X: 5, Y: -2})
	want := &geom.Bounds{Min: geom.Point{X: 0, Y: -2}, Max: geom.Point{X: 5, Y: 1}}
	if b := l.Bounds(); !reflect.DeepEqual(b, want) {
		t.Errorf("%v != %v", b, want)
	}
}

func TestExtent(t *testing.T) {
	for _, test := range []struct {
		e     Extent
		valid bool
	}{
		{e: Extent{0, 0, 1, 1}, valid: true},
		{e: Extent{0, 0, 0, 0}, valid: true},
		{e: Extent{1, 0, 0, 1}, valid: false},
		{e: Extent{0, 1, 1, 0}, valid: false},
		{e: Extent{math.NaN(), 0, 1, 1}, valid: false},
		{e: Extent{0, 0, math.Inf(1), 1}, valid: false},
	} {
		err := test.e.Validate()
		if test.valid != (err == nil) {
			t.Errorf("%v: valid=%v, error=%v", test.e, test.valid, err)
		}
	}
	if e := ExtentFromBounds(Extent{1, 2, 3, 4}.Bounds()); e != (Extent{1, 2, 3, 4}) {
		t.Errorf("round trip: %v", e)
	}
}

func TestIntersectExtents(t *testing.T) {
	e, err := IntersectExtents(Extent{0, 0, 10, 10}.Bounds(), Extent{5, -5, 15, 8}.Bounds())
	if err != nil {
		t.Fatal(err)
	}
	if want := (Extent{5, 0, 10, 8}); e != want {
		t.Errorf("%v != %v", e, want)
	}
	if _, err := IntersectExtents(Extent{0, 0, 1, 1}.Bounds(), Extent{2, 2, 3, 3}.Bounds()); err == nil {
		t.Errorf("disjoint extents should be an error")
	}
	if _, err := IntersectExtents(geom.NewBounds(), Extent{2, 2, 3, 3}.Bounds()); err == nil {
		t.Errorf("an empty layer should be an error")
	}
}
