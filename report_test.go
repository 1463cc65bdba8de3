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
	"image/color"
	"strings"
	"testing"
)

func TestNormalizeType(t *testing.T) {
	for _, test := range []struct {
		in   interface{}
		want string
	}{
		{in: nil, want: UnknownType},
		{in: "", want: UnknownType},
		{in: "NULL", want: UnknownType},
		{in: "null", want: UnknownType},
		{in: "Null", want: UnknownType},
		{in: "nUlL", want: "nUlL"},
		{in: "house", want: "house"},
		{in: int64(3), want: "3"},
		{in: 2.5, want: "2.5"},
	} {
		if have := NormalizeType(test.in); have != test.want {
			t.Errorf("%#v: %q != %q", test.in, have, test.want)
		}
	}
}

func TestTableHTML(t *testing.T) {
	tbl := Table{Rows: []TableRow{
		Row(template.HTML("How many <i>buildings</i>?")),
		HeaderRow("Building Type", "Flooded", "Total"),
		Row("All", 1, 2),
		HeaderRow("Breakdown by building type"),
		Row("shops & houses", 1, 2),
	}}
	want := `<table class="table table-striped condensed"><tbody>` +
		`<tr><td colspan="3">How many <i>buildings</i>?</td></tr>` +
		`<tr><th>Building Type</th><th>Flooded</th><th>Total</th></tr>` +
		`<tr><td>All</td><td>1</td><td>2</td></tr>` +
		`<tr><th colspan="3">Breakdown by building type</th></tr>` +
		`<tr><td>shops &amp; houses</td><td>1</td><td>2</td></tr>` +
		`</tbody></table>`
	if have := tbl.HTML(); have != want {
		t.Errorf("have:\n%s\nwant:\n%s", have, want)
	}

	multiline := Table{Rows: []TableRow{Row("a\nb")}}
	if strings.Contains(multiline.HTML(), "\n") {
		t.Errorf("HTML contains a newline")
	}
}

func TestTableString(t *testing.T) {
	tbl := Table{Rows: []TableRow{
		Row(template.HTML("How many <i>buildings</i>?")),
		HeaderRow("Type", "Flooded", "Total"),
		Row("All", 1, 2),
	}}
	want := "How many buildings?\n" +
		"Type  Flooded  Total\n" +
		"All   1        2\n"
	if have := tbl.String(); have != want {
		t.Errorf("have:\n%q\nwant:\n%q", have, want)
	}
}

func TestInundationStyle(t *testing.T) {
	s := inundationStyle("flooded")
	c, ok := s.Class(1)
	if !ok || c.Label != "Inundated" {
		t.Fatalf("class 1: %+v", c)
	}
	rgba, err := c.Color()
	if err != nil {
		t.Fatal(err)
	}
	if want := (color.NRGBA{R: 0xF3, G: 0x1A, B: 0x1C, A: 255}); rgba != want {
		t.Errorf("%v != %v", rgba, want)
	}
	if c, ok := s.Class(0); !ok || c.Colour != "#1EFC7C" || c.Size != 0.5 {
		t.Errorf("class 0: %+v", c)
	}
	if _, ok := s.Class(2); ok {
		t.Errorf("there should be no class 2")
	}
	if _, err := (StyleClass{Colour: "red"}).Color(); err == nil {
		t.Errorf("invalid colour should be an error")
	}
	if err := s.check(); err != nil {
		t.Error(err)
	}
	if err := (StyleInfo{StyleClasses: []StyleClass{{Label: "x", Colour: "red"}}}).check(); err == nil {
		t.Errorf("a style with an invalid colour should not pass")
	}
}

func TestStyleClassTransparency(t *testing.T) {
	for _, test := range []struct {
		transparency int
		alpha        uint8
	}{
		{transparency: 0, alpha: 255},
		{transparency: 100, alpha: 0},
		{transparency: 150, alpha: 0},
		{transparency: -20, alpha: 255},
	} {
		c, err := StyleClass{Colour: "#000000", Transparency: test.transparency}.Color()
		if err != nil {
			t.Fatal(err)
		}
		if c.A != test.alpha {
			t.Errorf("transparency %d: alpha %d != %d", test.transparency, c.A, test.alpha)
		}
	}
}

func TestParseUnionPolicy(t *testing.T) {
	for s, want := range map[string]UnionPolicy{"": SkipInvalid, "skip": SkipInvalid, "abort": AbortOnInvalid} {
		p, err := ParseUnionPolicy(s)
		if err != nil {
			t.Fatal(err)
		}
		if p != want {
			t.Errorf("%q: %v != %v", s, p, want)
		}
	}
	if _, err := ParseUnionPolicy("ignore"); err == nil {
		t.Errorf("unknown policy should be an error")
	}
}
