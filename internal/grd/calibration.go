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


package grd

import (
	"strings"
)

// Calibration vector types carried in the product calibration annotation
const (
	CalTypeSigma0 = "sigmaNought"
	CalTypeBeta0  = "betaNought"
	CalTypeGamma  = "gamma"
	CalTypeDN     = "dn"
)

// Returns the calibration sample vectors of the given type for the given
// polarization, in annotation order. Walks the calibration element of the
// original product metadata; entries whose polarisation attribute is not
// contained in the requested polarization are skipped. Returns nil if the
// product has no matching calibration records.
func CalibrationVectors(p *Product, polarization, calType string) [][]float64 {
	calElem:=p.OrigRoot.Elem("calibration")
	if calElem==nil { return nil }

	var vectors [][]float64
	for _, vecElem:=range calElem.Elems {
		pol:=vecElem.Attr("polarisation")
		if pol=="" || !strings.Contains(polarization, pol) { continue }
		vals, err:=vecElem.AttrFloatList(calType)
		if err!=nil || len(vals)==0 { continue }
		vectors=append(vectors, vals)
	}
	return vectors
}
