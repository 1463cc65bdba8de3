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
	"sort"

	"github.com/spf13/cast"
)

// UnknownType is the building type reported for features whose type
// attribute is missing.
const UnknownType = "Unknown type"

// nullTypes are the attribute values that mean "no value". Shapefiles
// cannot store a NULL string, so the empty string is included.
var nullTypes = map[string]bool{
	"":     true,
	"NULL": true,
	"null": true,
	"Null": true,
}

// NormalizeType converts a building type attribute value to the label
// it is reported under. nil and the values "", "NULL", "null" and
// "Null" become UnknownType; numbers are formatted without a trailing
// ".0".
func NormalizeType(v interface{}) string {
	if v == nil {
		return UnknownType
	}
	s, err := cast.ToStringE(v)
	if err != nil || nullTypes[s] {
		return UnknownType
	}
	return s
}

// TypeCount holds the number of flooded features and the total number
// of features of one building type.
type TypeCount struct {
	Flooded, Total int
}

// Counts summarizes an impact layer.
type Counts struct {
	Total, Flooded int
	ByType         map[string]*TypeCount
}

func newCounts() *Counts {
	return &Counts{ByType: make(map[string]*TypeCount)}
}

// add records one feature of the given (unnormalized) building type.
func (c *Counts) add(buildingType interface{}, flooded bool) {
	t := NormalizeType(buildingType)
	tc, ok := c.ByType[t]
	if !ok {
		tc = new(TypeCount)
		c.ByType[t] = tc
	}
	c.Total++
	tc.Total++
	if flooded {
		c.Flooded++
		tc.Flooded++
	}
}

// Types returns the building types in c in sorted order.
func (c *Counts) Types() []string {
	o := make([]string, 0, len(c.ByType))
	for t := range c.ByType {
		o = append(o, t)
	}
	sort.Strings(o)
	return o
}
