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

// Package hash computes stable keys for analysis inputs.
package hash

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"hash/fnv"

	"github.com/davecgh/go-spew/spew"
)

var printer = spew.ConfigState{
	Indent:                  " ",
	SortKeys:                true,
	DisableMethods:          true,
	SpewKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Hash returns a hexadecimal key for objects. Each object is gob-encoded
// into the hash; objects that gob cannot encode, such as those holding
// unregistered interface values, are written with spew instead.
func Hash(objects ...interface{}) string {
	h := fnv.New128a()
	for _, o := range objects {
		// Encode into a buffer first so a failed encoding leaves no
		// partial output in the hash.
		b := new(bytes.Buffer)
		if err := gob.NewEncoder(b).Encode(o); err == nil {
			h.Write(b.Bytes())
			continue
		}
		printer.Fprintf(h, "%#v", o)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
