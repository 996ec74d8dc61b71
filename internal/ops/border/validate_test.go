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
	"strings"
	"testing"

	"github.com/sarkit/grdborder/internal/grd"
	"github.com/sarkit/grdborder/internal/meta"
)

const testProductName="S1A_IW_GRDH_1SDV_20200101T000000_20200101T000025_030000_037000_1234"

func validSourceProduct() *grd.Product {
	p:=grd.NewProduct(testProductName, "GRD", 100, 100)
	p.AbsRoot.SetAttr(meta.Mission, "SENTINEL-1A").
		SetAttr(meta.ProductType, "GRD").
		SetAttr(meta.ProductName, testProductName).
		SetAttr(meta.AbsCalibrationFlag, "false")
	return p
}

func TestValidateSourcePasses(t *testing.T) {
	if err:=ValidateSource(validSourceProduct()); err!=nil {
		t.Errorf("unexpected error: %s", err.Error())
	}
}

func TestValidateSourceWrongMission(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.Mission, "SENTINEL-2A")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected mission validation error") }
	if _, ok:=err.(*ValidationError); !ok { t.Errorf("error type %T; want *ValidationError", err) }
}

func TestValidateSourceWrongProductType(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.ProductType, "SLC")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected product type validation error") }
	if !strings.Contains(err.Error(), "GRD") { t.Errorf("error=%q; want mention of GRD", err.Error()) }
}

func TestValidateSourceWrongLevel(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.ProductName, "S1A_IW_GRDH_2SDV_20200101T000000")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected processing level validation error") }
	if !strings.Contains(err.Error(), "level-1") { t.Errorf("error=%q; want mention of level-1", err.Error()) }
}

func TestValidateSourceUnknownPolarizationMode(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.ProductName, "S1A_IW_GRDH_1SXY_20200101T000000")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected polarization mode validation error") }
	if !strings.Contains(err.Error(), "XY") { t.Errorf("error=%q; want mention of XY", err.Error()) }
}

func TestValidateSourceShortIdentifier(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.ProductName, "S1A_IW")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected malformed identifier error") }
	if _, ok:=err.(*MalformedIdentifierError); !ok { t.Errorf("error type %T; want *MalformedIdentifierError", err) }
}

func TestValidateSourceAlreadyCalibrated(t *testing.T) {
	p:=validSourceProduct()
	p.AbsRoot.SetAttr(meta.AbsCalibrationFlag, "true")
	err:=ValidateSource(p)
	if err==nil { t.Fatalf("expected calibration validation error") }
	if !strings.Contains(err.Error(), "calibrated") { t.Errorf("error=%q; want mention of calibrated", err.Error()) }
}

func TestParseProductIdentifierModes(t *testing.T) {
	for _, mode:=range []string{"SH", "SV", "DH", "DV", "HH", "HV", "VV", "VH"} {
		name:="S1B_EW_GRDM_1S"+mode+"_20200101T000000"
		id, err:=parseProductIdentifier(name)
		if err!=nil { t.Fatalf("%s: unexpected error: %s", mode, err.Error()) }
		if id.Level!="1S" { t.Errorf("%s: level=%q; want 1S", mode, id.Level) }
		if id.PolarizationMode!=mode { t.Errorf("mode=%q; want %q", id.PolarizationMode, mode) }
	}
}
