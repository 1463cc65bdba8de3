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
	"image/color"
	"strconv"
	"strings"
)

// StyleClass is one category of a categorized symbol style.
type StyleClass struct {
	Label        string  `json:"label"`
	Value        int     `json:"value"`
	Colour       string  `json:"colour"`
	Transparency int     `json:"transparency"`
	Size         float64 `json:"size"`
}

// Color parses the hexadecimal colour of the class.
func (s StyleClass) Color() (color.NRGBA, error) {
	h := strings.TrimPrefix(s.Colour, "#")
	if len(h) != 6 {
		return color.NRGBA{}, fmt.Errorf("inasafe: invalid colour %q", s.Colour)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("inasafe: invalid colour %q: %v", s.Colour, err)
	}
	t := s.Transparency
	if t < 0 {
		t = 0
	} else if t > 100 {
		t = 100
	}
	alpha := 255 - uint8(t*255/100)
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: alpha}, nil
}

// StyleInfo tells the host how to symbolize an impact layer. It is a
// description only; rendering is left to the host.
type StyleInfo struct {
	TargetField  string       `json:"target_field"`
	StyleClasses []StyleClass `json:"style_classes"`
	StyleType    string       `json:"style_type"`
}

// Class returns the style class for the given target field value.
func (s StyleInfo) Class(value int) (StyleClass, bool) {
	for _, c := range s.StyleClasses {
		if c.Value == value {
			return c, true
		}
	}
	return StyleClass{}, false
}

// check makes sure every class has a parseable colour.
func (s StyleInfo) check() error {
	for _, c := range s.StyleClasses {
		if _, err := c.Color(); err != nil {
			return fmt.Errorf("inasafe: style class %q: %v", c.Label, err)
		}
	}
	return nil
}

// inundationStyle is the two-class style used for flooded features.
func inundationStyle(targetField string) StyleInfo {
	return StyleInfo{
		TargetField: targetField,
		StyleType:   "categorizedSymbol",
		StyleClasses: []StyleClass{
			{Label: "Not Inundated", Value: 0, Colour: "#1EFC7C", Transparency: 0, Size: 0.5},
			{Label: "Inundated", Value: 1, Colour: "#F31A1C", Transparency: 0, Size: 0.5},
		},
	}
}
