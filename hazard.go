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

	"github.com/ctessum/geom"
	"github.com/sirupsen/logrus"
)

// UnionPolicy decides what happens when adding a hazard polygon to the
// running union produces an invalid geometry.
type UnionPolicy int

const (
	// SkipInvalid discards the invalid union, logs a warning and keeps
	// the last valid union.
	SkipInvalid UnionPolicy = iota

	// AbortOnInvalid stops the analysis with an InvalidGeometryError.
	AbortOnInvalid
)

// ParseUnionPolicy converts "skip" or "abort" to a UnionPolicy.
func ParseUnionPolicy(s string) (UnionPolicy, error) {
	switch s {
	case "skip", "":
		return SkipInvalid, nil
	case "abort":
		return AbortOnInvalid, nil
	default:
		return SkipInvalid, fmt.Errorf("inasafe: invalid union policy %q; it should be 'skip' or 'abort'", s)
	}
}

func (p UnionPolicy) String() string {
	if p == AbortOnInvalid {
		return "abort"
	}
	return "skip"
}

// hazardUnion accumulates the union of matching hazard polygons.
type hazardUnion struct {
	policy UnionPolicy
	log    logrus.FieldLogger

	poly geom.Polygonal

	// Matched counts the features that satisfied the predicate and
	// Skipped those whose geometry could not be added.
	Matched, Skipped int
}

// add merges the geometry of f into the union. The first polygon is
// taken as-is; every later union is kept only if it is valid.
func (u *hazardUnion) add(f *Feature) error {
	p, ok := f.Geom.(geom.Polygonal)
	if !ok {
		u.Skipped++
		u.log.WithFields(logrus.Fields{
			"feature": f.ID,
			"geom":    fmt.Sprintf("%T", f.Geom),
		}).Warn("hazard feature matches the affected value but is not a polygon; skipping it")
		return nil
	}
	u.Matched++
	if u.poly == nil {
		u.poly = p
		return nil
	}
	combined := u.poly.Union(p)
	if err := Valid(combined); err != nil {
		if u.policy == AbortOnInvalid {
			return InvalidGeometryError{FeatureID: f.ID, Err: err}
		}
		u.Skipped++
		u.log.WithFields(logrus.Fields{
			"feature": f.ID,
			"reason":  err.Error(),
		}).Warn("discarding invalid hazard union; keeping the previous union")
		return nil
	}
	u.poly = combined
	return nil
}
