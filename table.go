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
	"fmt"
	"html"
	"html/template"
	"regexp"
	"strings"
	"text/tabwriter"
)

// TableRow is one row of a summary table. Cells holding template.HTML
// are rendered without escaping.
type TableRow struct {
	Cells  []interface{}
	Header bool
}

// Row returns a body row holding cells.
func Row(cells ...interface{}) TableRow {
	return TableRow{Cells: cells}
}

// HeaderRow returns a header row holding cells.
func HeaderRow(cells ...interface{}) TableRow {
	return TableRow{Cells: cells, Header: true}
}

// Table is a simple report table.
type Table struct {
	Rows []TableRow
}

func (t Table) columns() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Cells) > n {
			n = len(r.Cells)
		}
	}
	return n
}

func htmlCell(c interface{}) string {
	if h, ok := c.(template.HTML); ok {
		return string(h)
	}
	return html.EscapeString(fmt.Sprint(c))
}

// HTML renders the table as HTML without any newline characters, so it
// can be stored as a single keyword value. Rows with fewer cells than
// the widest row have their last cell spanned across the remaining
// columns.
func (t Table) HTML() string {
	ncol := t.columns()
	b := new(bytes.Buffer)
	b.WriteString(`<table class="table table-striped condensed"><tbody>`)
	for _, r := range t.Rows {
		tag := "td"
		if r.Header {
			tag = "th"
		}
		b.WriteString("<tr>")
		for i, c := range r.Cells {
			if i == len(r.Cells)-1 && len(r.Cells) < ncol {
				fmt.Fprintf(b, `<%s colspan="%d">`, tag, ncol-len(r.Cells)+1)
			} else {
				fmt.Fprintf(b, "<%s>", tag)
			}
			b.WriteString(strings.Replace(htmlCell(c), "\n", " ", -1))
			fmt.Fprintf(b, "</%s>", tag)
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
	return b.String()
}

var markup = regexp.MustCompile(`<[^>]*>`)

// String renders the table as aligned plain text.
func (t Table) String() string {
	b := new(bytes.Buffer)
	w := tabwriter.NewWriter(b, 0, 4, 2, ' ', 0)
	for _, r := range t.Rows {
		cells := make([]string, len(r.Cells))
		for i, c := range r.Cells {
			if h, ok := c.(template.HTML); ok {
				cells[i] = html.UnescapeString(markup.ReplaceAllString(string(h), ""))
			} else {
				cells[i] = fmt.Sprint(c)
			}
		}
		if len(cells) == 1 {
			// A single spanning cell should not widen the first column.
			w.Flush()
			fmt.Fprintln(b, cells[0])
			continue
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	w.Flush()
	return b.String()
}
