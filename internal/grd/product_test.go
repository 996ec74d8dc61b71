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
	"testing"

	"github.com/sarkit/grdborder/internal/meta"
)

func TestCoPolBandPrefersHH(t *testing.T) {
	p:=NewProduct("test", "GRD", 4, 4)
	p.AddBand(NewBand("Amplitude_VV", "uint16", 4, 4))
	p.AddBand(NewBand("Amplitude_HH", "uint16", 4, 4))

	band, pol, err:=CoPolBand(p)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if pol!="HH" || band.Name!="Amplitude_HH" { t.Errorf("got %s/%s; want Amplitude_HH/HH", band.Name, pol) }
}

func TestCoPolBandFallsBackToVV(t *testing.T) {
	p:=NewProduct("test", "GRD", 4, 4)
	p.AddBand(NewBand("Amplitude_VH", "uint16", 4, 4))
	p.AddBand(NewBand("Amplitude_VV", "uint16", 4, 4))

	band, pol, err:=CoPolBand(p)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if pol!="VV" || band.Name!="Amplitude_VV" { t.Errorf("got %s/%s; want Amplitude_VV/VV", band.Name, pol) }
}

func TestCoPolBandMissing(t *testing.T) {
	p:=NewProduct("test", "GRD", 4, 4)
	p.AddBand(NewBand("Amplitude_VH", "uint16", 4, 4))
	if _, _, err:=CoPolBand(p); err==nil {
		t.Errorf("expected error for product without HH or VV band")
	}
}

func TestCalibrationVectors(t *testing.T) {
	p:=NewProduct("test", "GRD", 4, 4)
	cal:=meta.NewElement("calibration")
	cal.AddElems(
		meta.NewElement("calibrationVector").SetAttr("polarisation", "VV").SetAttr(CalTypeDN, "2.5 3 3.5"),
		meta.NewElement("calibrationVector").SetAttr("polarisation", "VH").SetAttr(CalTypeDN, "9 9 9"),
		meta.NewElement("calibrationVector").SetAttr("polarisation", "VV").SetAttr(CalTypeDN, "4 4 4"),
	)
	p.OrigRoot.AddElems(cal)

	vectors:=CalibrationVectors(p, "VV", CalTypeDN)
	if len(vectors)!=2 { t.Fatalf("got %d vectors; want 2", len(vectors)) }
	if vectors[0][0]!=2.5 { t.Errorf("vectors[0][0]=%f; want 2.5", vectors[0][0]) }
	if vectors[1][0]!=4 { t.Errorf("vectors[1][0]=%f; want 4", vectors[1][0]) }

	if got:=CalibrationVectors(p, "HH", CalTypeDN); got!=nil {
		t.Errorf("expected nil for polarization without calibration records")
	}
}
