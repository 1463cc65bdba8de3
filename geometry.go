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
	"errors"
	"fmt"
	"math"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
)

// segment is one edge of a polygon ring or line, stored as a two-point
// line so that it can be held in an rtree.
type segment struct {
	geom.LineString
}

func newSegment(a, b geom.Point) *segment {
	return &segment{LineString: geom.LineString{a, b}}
}

func (s *segment) a() geom.Point { return s.LineString[0] }
func (s *segment) b() geom.Point { return s.LineString[1] }

// pathSegments returns the non-degenerate edges of path. If closed is
// true, the path is treated as a ring and the closing edge is included
// when the first and last points differ.
func pathSegments(path []geom.Point, closed bool) []*segment {
	var o []*segment
	for i := 1; i < len(path); i++ {
		if path[i-1].Equals(path[i]) {
			continue
		}
		o = append(o, newSegment(path[i-1], path[i]))
	}
	if closed && len(path) > 2 && !path[0].Equals(path[len(path)-1]) {
		o = append(o, newSegment(path[len(path)-1], path[0]))
	}
	return o
}

// orient is twice the signed area of the triangle pqr.
func orient(p, q, r geom.Point) float64 {
	return (q.X-p.X)*(r.Y-p.Y) - (q.Y-p.Y)*(r.X-p.X)
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

// between reports whether r, which is collinear with pq, lies on the
// closed segment pq.
func between(p, q, r geom.Point) bool {
	return math.Min(p.X, q.X) <= r.X && r.X <= math.Max(p.X, q.X) &&
		math.Min(p.Y, q.Y) <= r.Y && r.Y <= math.Max(p.Y, q.Y)
}

// touches reports whether the closed segments s1 and s2 share at least
// one point.
func touches(s1, s2 *segment) bool {
	o1 := sign(orient(s1.a(), s1.b(), s2.a()))
	o2 := sign(orient(s1.a(), s1.b(), s2.b()))
	o3 := sign(orient(s2.a(), s2.b(), s1.a()))
	o4 := sign(orient(s2.a(), s2.b(), s1.b()))
	if o1 != o2 && o3 != o4 {
		return true
	}
	return (o1 == 0 && between(s1.a(), s1.b(), s2.a())) ||
		(o2 == 0 && between(s1.a(), s1.b(), s2.b())) ||
		(o3 == 0 && between(s2.a(), s2.b(), s1.a())) ||
		(o4 == 0 && between(s2.a(), s2.b(), s1.b()))
}

// crosses reports whether s1 and s2 intersect in a way that makes a
// polygon invalid: their interiors cross at a single point, or they
// overlap along a stretch of non-zero length. Segments that only touch
// at a point on either one's end are not considered crossing.
func crosses(s1, s2 *segment) bool {
	o1 := sign(orient(s1.a(), s1.b(), s2.a()))
	o2 := sign(orient(s1.a(), s1.b(), s2.b()))
	o3 := sign(orient(s2.a(), s2.b(), s1.a()))
	o4 := sign(orient(s2.a(), s2.b(), s1.b()))
	if o1*o2 < 0 && o3*o4 < 0 {
		return true
	}
	if o1 != 0 || o2 != 0 {
		return false
	}
	// Collinear: measure the overlap along the dominant axis.
	lo1, hi1, lo2, hi2 := s1.a().X, s1.b().X, s2.a().X, s2.b().X
	if math.Abs(s1.b().X-s1.a().X) < math.Abs(s1.b().Y-s1.a().Y) {
		lo1, hi1, lo2, hi2 = s1.a().Y, s1.b().Y, s2.a().Y, s2.b().Y
	}
	if lo1 > hi1 {
		lo1, hi1 = hi1, lo1
	}
	if lo2 > hi2 {
		lo2, hi2 = hi2, lo2
	}
	return math.Min(hi1, hi2)-math.Max(lo1, lo2) > 0
}

// Valid checks whether p is a topologically valid polygonal geometry:
// it must have at least one ring, every coordinate must be finite,
// every ring must have at least three distinct vertices, no ring may
// cross itself or another ring (touching at a point is allowed) and
// the total area must not be zero.
func Valid(p geom.Polygonal) error {
	if p == nil {
		return errors.New("empty geometry")
	}
	tree := rtree.NewTree(25, 50)
	var nRings int
	for _, poly := range p.Polygons() {
		for _, ring := range poly {
			nRings++
			for _, pt := range ring {
				if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
					return fmt.Errorf("non-finite coordinate %v", pt)
				}
			}
			segs := pathSegments(ring, true)
			if len(segs) < 3 {
				return fmt.Errorf("ring %d has too few points", nRings-1)
			}
			for _, s := range segs {
				for _, o := range tree.SearchIntersect(s.Bounds()) {
					if crosses(s, o.(*segment)) {
						return fmt.Errorf("self-intersection near %v", s.a())
					}
				}
				tree.Insert(s)
			}
		}
	}
	if nRings == 0 {
		return errors.New("empty geometry")
	}
	if p.Area() == 0 {
		return errors.New("zero area")
	}
	return nil
}

// hazardIndex is a polygonal hazard area prepared for repeated
// intersection tests.
type hazardIndex struct {
	poly   geom.Polygonal
	bounds *geom.Bounds
	edges  *rtree.Rtree
	starts []geom.Point // first vertex of each ring
}

func newHazardIndex(p geom.Polygonal) *hazardIndex {
	h := &hazardIndex{
		poly:   p,
		bounds: p.Bounds(),
		edges:  rtree.NewTree(25, 50),
	}
	for _, poly := range p.Polygons() {
		for _, ring := range poly {
			if len(ring) == 0 {
				continue
			}
			h.starts = append(h.starts, ring[0])
			for _, s := range pathSegments(ring, true) {
				h.edges.Insert(s)
			}
		}
	}
	return h
}

// Intersects reports whether g shares any point with the hazard area,
// including points on its boundary. A nil geometry never intersects.
func (h *hazardIndex) Intersects(g geom.Geom) bool {
	if g == nil {
		return false
	}
	if b := g.Bounds(); b.Empty() || !b.Overlaps(h.bounds) {
		return false
	}
	switch t := g.(type) {
	case geom.Point:
		return t.Within(h.poly) != geom.Outside
	case geom.MultiPoint:
		for _, p := range t {
			if h.Intersects(p) {
				return true
			}
		}
	case geom.LineString:
		return h.pathIntersects(t, false)
	case geom.MultiLineString:
		for _, l := range t {
			if h.pathIntersects(l, false) {
				return true
			}
		}
	case geom.Polygon:
		return h.polygonIntersects(t)
	case geom.MultiPolygon:
		for _, p := range t {
			if h.polygonIntersects(p) {
				return true
			}
		}
	case *geom.Bounds:
		return h.polygonIntersects(geom.Polygon{{
			t.Min, {X: t.Max.X, Y: t.Min.Y}, t.Max, {X: t.Min.X, Y: t.Max.Y}, t.Min,
		}})
	case geom.GeometryCollection:
		for _, gg := range t {
			if h.Intersects(gg) {
				return true
			}
		}
	}
	return false
}

// edgesTouch reports whether any edge of path touches a hazard edge.
func (h *hazardIndex) edgesTouch(path []geom.Point, closed bool) bool {
	for _, s := range pathSegments(path, closed) {
		for _, e := range h.edges.SearchIntersect(s.Bounds()) {
			if touches(s, e.(*segment)) {
				return true
			}
		}
	}
	return false
}

func (h *hazardIndex) pathIntersects(path []geom.Point, closed bool) bool {
	if len(path) == 0 {
		return false
	}
	if h.edgesTouch(path, closed) {
		return true
	}
	// With no edge contact the path is either wholly inside or wholly
	// outside, so one vertex decides.
	return path[0].Within(h.poly) != geom.Outside
}

func (h *hazardIndex) polygonIntersects(p geom.Polygon) bool {
	for _, ring := range p {
		if len(ring) == 0 {
			continue
		}
		if h.pathIntersects(ring, true) {
			return true
		}
	}
	// The hazard may lie entirely inside p.
	for _, pt := range h.starts {
		if pt.Within(p) != geom.Outside {
			return true
		}
	}
	return false
}
