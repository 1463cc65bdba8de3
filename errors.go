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

import "fmt"

// MissingFieldError is returned when an impact function parameter
// names an attribute field that the layer's attribute table does not
// have.
type MissingFieldError struct {
	// Parameter is the name of the impact function parameter.
	Parameter string

	// Field is the missing field name and Layer the layer that
	// should have held it.
	Field, Layer string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("inasafe: parameter %q (=%q) is not present in the attribute table of the %s layer",
		e.Parameter, e.Field, e.Layer)
}

// NoMatchingFeaturesError is returned when no hazard feature within the
// analysis extent has the configured affected value.
type NoMatchingFeaturesError struct {
	Field string
	Value interface{}
}

func (e NoMatchingFeaturesError) Error() string {
	return fmt.Sprintf("inasafe: there are no objects in the hazard layer with %q=%v. "+
		"Please check the value or use another extent", e.Field, e.Value)
}

// InvalidGeometryError is returned when the union of hazard polygons
// becomes topologically invalid and the function is configured to
// abort rather than skip the offending feature.
type InvalidGeometryError struct {
	// FeatureID is the hazard feature whose union failed.
	FeatureID int
	Err       error
}

func (e InvalidGeometryError) Error() string {
	return fmt.Sprintf("inasafe: union with hazard feature %d is not a valid geometry: %v", e.FeatureID, e.Err)
}
