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
	"math"

	"github.com/ctessum/geom"
)

// Extent is a rectangular analysis area given as
// [xmin, ymin, xmax, ymax] in the coordinates of the layers.
type Extent [4]float64

// ExtentFromBounds converts b to an Extent.
func ExtentFromBounds(b *geom.Bounds) Extent {
	return Extent{b.Min.X, b.Min.Y, b.Max.X, b.Max.Y}
}

// Bounds returns e as a geometry bounding box.
func (e Extent) Bounds() *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: e[0], Y: e[1]},
		Max: geom.Point{X: e[2], Y: e[3]},
	}
}

// Validate checks that the extent is finite and that its minimum
// corner is not above or to the right of its maximum corner.
func (e Extent) Validate() error {
	for _, v := range e {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("inasafe: extent %v contains non-finite values", e)
		}
	}
	if e[0] > e[2] || e[1] > e[3] {
		return fmt.Errorf("inasafe: extent %v has its minimum corner beyond its maximum corner; "+
			"it should be given as [xmin, ymin, xmax, ymax]", e)
	}
	return nil
}

// IntersectExtents returns the area shared by a and b. It is used as
// the analysis extent when none is given explicitly.
func IntersectExtents(a, b *geom.Bounds) (Extent, error) {
	if a.Empty() || b.Empty() || !a.Overlaps(b) {
		return Extent{}, fmt.Errorf("inasafe: the hazard and exposure layers do not overlap; " +
			"please check that they cover the same area and use the same projection")
	}
	return Extent{
		math.Max(a.Min.X, b.Min.X),
		math.Max(a.Min.Y, b.Min.Y),
		math.Min(a.Max.X, b.Max.X),
		math.Min(a.Max.Y, b.Max.Y),
	}, nil
}
