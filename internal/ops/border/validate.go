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

import (
	"fmt"
	"strings"

	"github.com/sarkit/grdborder/internal/grd"
	"github.com/sarkit/grdborder/internal/meta"
)

// Eligibility constants for the correction
const (
	missionPrefix   = "SENTINEL-1"
	productTypeGRD  = "GRD"
	processingLevel = "1S"
)

// The eight polarization mode codes a level-1 product identifier may carry
var polarizationModes=map[string]bool{
	"SH": true, "SV": true, "DH": true, "DV": true,
	"HH": true, "HV": true, "VV": true, "VH": true,
}

// Fields extracted from a Sentinel-1 product identifier at fixed offsets,
// e.g. S1A_IW_GRDH_1SDV_... carries level "1S" and polarization mode "DV"
type productIdentifier struct {
	Level            string // characters 12..14
	PolarizationMode string // characters 14..16
}

// Parses the fixed-offset identifier fields. Identifiers too short for the
// field offsets yield a MalformedIdentifierError instead of an index panic.
func parseProductIdentifier(name string) (productIdentifier, error) {
	if len(name)<16 {
		return productIdentifier{}, &MalformedIdentifierError{Identifier: name}
	}
	return productIdentifier{
		Level:            name[12:14],
		PolarizationMode: name[14:16],
	}, nil
}

// Checks that the source product is eligible for border noise removal:
// a Sentinel-1 family mission, GRD product type, a level-1 identifier with a
// recognized polarization mode, and not yet radiometrically calibrated.
// Any violation aborts initialization before pixel I/O.
func ValidateSource(p *grd.Product) error {
	mission:=p.AbsRoot.Attr(meta.Mission)
	if !strings.HasPrefix(mission, missionPrefix) {
		return &ValidationError{Reason: "input should be a Sentinel-1 GRD product"}
	}

	productType:=p.AbsRoot.Attr(meta.ProductType)
	if productType!=productTypeGRD {
		return &ValidationError{Reason: "input should be a GRD product"}
	}

	productName:=p.AbsRoot.Attr(meta.ProductName)
	id, err:=parseProductIdentifier(productName)
	if err!=nil { return err }

	if id.Level!=processingLevel {
		return &ValidationError{Reason: "input should be a level-1 product"}
	}
	if !polarizationModes[id.PolarizationMode] {
		return &ValidationError{Reason: fmt.Sprintf("unknown source product polarization %q", id.PolarizationMode)}
	}

	if p.AbsRoot.AttrBool(meta.AbsCalibrationFlag) {
		return &ValidationError{Reason: "cannot apply the operator to calibrated product"}
	}
	return nil
}
