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
	"testing"

	"github.com/sarkit/grdborder/internal/grd"
)

func bandProduct(bands ...*grd.Band) *grd.Product {
	p:=grd.NewProduct("test", "GRD", 10, 10)
	for _, b:=range bands { p.AddBand(b) }
	return p
}

func bandWithUnit(name, unit string) *grd.Band {
	b:=grd.NewBand(name, "uint16", 10, 10)
	b.Unit=unit
	return b
}

func TestSelectSourceBandsFiltersByUnit(t *testing.T) {
	p:=bandProduct(
		bandWithUnit("Amplitude_VV", grd.UnitAmplitude),
		bandWithUnit("Intensity_VV", grd.UnitIntensity),
		bandWithUnit("incident_angle", "degrees"),
	)
	selected, err:=SelectSourceBands(p, nil)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(selected)!=2 { t.Fatalf("selected %d bands; want 2", len(selected)) }
	if selected[0].Name!="Amplitude_VV" || selected[1].Name!="Intensity_VV" {
		t.Errorf("selected %s, %s; want Amplitude_VV, Intensity_VV", selected[0].Name, selected[1].Name)
	}
}

func TestSelectSourceBandsMissingUnit(t *testing.T) {
	p:=bandProduct(bandWithUnit("Amplitude_VV", ""))
	_, err:=SelectSourceBands(p, nil)
	if err==nil { t.Fatalf("expected MissingUnitError") }
	if _, ok:=err.(*MissingUnitError); !ok { t.Errorf("error type %T; want *MissingUnitError", err) }
}

func TestSelectSourceBandsPolarisationAllowList(t *testing.T) {
	p:=bandProduct(
		bandWithUnit("Amplitude_VV", grd.UnitAmplitude),
		bandWithUnit("Amplitude_VH", grd.UnitAmplitude),
	)
	selected, err:=SelectSourceBands(p, []string{"VH"})
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(selected)!=1 || selected[0].Name!="Amplitude_VH" {
		t.Errorf("selected %d bands; want only Amplitude_VH", len(selected))
	}
}

func TestBuildTargetProductMirrorsBands(t *testing.T) {
	src:=bandWithUnit("Amplitude_VV", grd.UnitAmplitude)
	src.NoDataValue=-1
	src.NoDataValueUsed=true
	src.Description="amplitude of VV polarization"
	p:=bandProduct(src)

	target:=BuildTargetProduct(p, []*grd.Band{src})
	if target.Width!=p.Width || target.Height!=p.Height {
		t.Errorf("target size %dx%d; want %dx%d", target.Width, target.Height, p.Width, p.Height)
	}
	tgt:=target.Band("Amplitude_VV")
	if tgt==nil { t.Fatalf("target band missing") }
	if tgt==src { t.Errorf("target band must be a fresh descriptor, not the source band") }
	if tgt.Unit!=src.Unit || tgt.NoDataValue!=src.NoDataValue || !tgt.NoDataValueUsed ||
		tgt.Description!=src.Description {
		t.Errorf("target band descriptor fields do not mirror the source")
	}
	if len(tgt.Data)!=100 { t.Errorf("target band data length %d; want 100", len(tgt.Data)) }
}

func TestBuildTargetProductVirtualBand(t *testing.T) {
	src:=bandWithUnit("Intensity_VV", grd.UnitIntensity)
	src.Virtual=true
	src.Expression="Amplitude_VV * Amplitude_VV"
	src.Data=nil
	p:=bandProduct(src)

	target:=BuildTargetProduct(p, []*grd.Band{src})
	tgt:=target.Band("Intensity_VV")
	if tgt==nil { t.Fatalf("target band missing") }
	if !tgt.Virtual || tgt.Expression!=src.Expression {
		t.Errorf("virtual band must keep its expression")
	}
	if tgt.Data!=nil { t.Errorf("virtual band must not allocate pixel data") }
}
