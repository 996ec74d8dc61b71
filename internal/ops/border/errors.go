// Copyright (C) 2024 the grdborder authors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.


package border

import "fmt"

// The input product fails an eligibility precondition: wrong mission, product
// type, processing level or polarization mode, or already calibrated. Fatal,
// raised before any pixel data is touched.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

// The acquisition mode has no known noise scaling constant. Fatal.
type UnsupportedModeError struct {
	Mode string
}

func (e *UnsupportedModeError) Error() string {
	return fmt.Sprintf("cannot apply the operator to a %s mode GRD product", e.Mode)
}

// The product annotation has no noise vector for the co-polarized band. Fatal.
type MissingNoiseVectorError struct {
	Polarization string
}

func (e *MissingNoiseVectorError) Error() string {
	return fmt.Sprintf("input product does not have noise vector for %s band", e.Polarization)
}

// A source band lacks a physical unit, so unit-based band selection cannot proceed. Fatal.
type MissingUnitError struct {
	Band string
}

func (e *MissingUnitError) Error() string {
	return fmt.Sprintf("band %s requires a unit", e.Band)
}

// The product identifier is too short or deformed for fixed-offset field extraction. Fatal.
type MalformedIdentifierError struct {
	Identifier string
}

func (e *MalformedIdentifierError) Error() string {
	return fmt.Sprintf("malformed product identifier %q", e.Identifier)
}
