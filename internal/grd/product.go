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
	"fmt"
	"strings"

	"github.com/sarkit/grdborder/internal/meta"
)

// Physical units of band pixel values
const (
	UnitAmplitude = "amplitude"
	UnitIntensity = "intensity"
)

// A raster band of a GRD product. Virtual bands carry a defining expression
// instead of materialized pixel data.
type Band struct {
	Name            string  `json:"name"`
	DataType        string  `json:"dataType"`
	Width           int32   `json:"width"`
	Height          int32   `json:"height"`
	Unit            string  `json:"unit"`
	NoDataValue     float64 `json:"noDataValue"`
	NoDataValueUsed bool    `json:"noDataValueUsed"`
	Description     string  `json:"description,omitempty"`
	Virtual         bool    `json:"virtual,omitempty"`
	Expression      string  `json:"expression,omitempty"`

	Data []float32 `json:"-"` // pixel values in row-major order, nil for virtual bands
}

// A Sentinel-1 level-1 ground range detected product held in memory:
// scene dimensions, raster bands, and the two metadata trees (the abstracted
// metadata with normalized keys, and the original annotation metadata).
type Product struct {
	Name   string
	Type   string
	Width  int32
	Height int32
	Bands  []*Band

	AbsRoot  *meta.Element
	OrigRoot *meta.Element
}

// Creates a product with the given name, type and scene raster dimensions, without bands
func NewProduct(name, typ string, width, height int32) *Product {
	return &Product{
		Name:     name,
		Type:     typ,
		Width:    width,
		Height:   height,
		AbsRoot:  meta.NewElement("Abstracted_Metadata"),
		OrigRoot: meta.NewElement("Original_Product_Metadata"),
	}
}

// Appends a band to the product
func (p *Product) AddBand(b *Band) {
	p.Bands=append(p.Bands, b)
}

// Returns the band of the given name, or nil if the product has none
func (p *Product) Band(name string) *Band {
	for _, b:=range p.Bands {
		if b.Name==name { return b }
	}
	return nil
}

// Returns the names of all bands, in product order
func (p *Product) BandNames() []string {
	names:=make([]string, len(p.Bands))
	for i, b:=range p.Bands { names[i]=b.Name }
	return names
}

// Creates a non-virtual band with allocated pixel data
func NewBand(name, dataType string, width, height int32) *Band {
	return &Band{
		Name:     name,
		DataType: dataType,
		Width:    width,
		Height:   height,
		Data:     make([]float32, int(width)*int(height)),
	}
}

// Identifies the co-polarized band of the product: the first band whose name
// contains "HH", else the first whose name contains "VV". The co-polarized
// band is the noise reference for the whole scene.
func CoPolBand(p *Product) (band *Band, polarization string, err error) {
	for _, b:=range p.Bands {
		if strings.Contains(b.Name, "HH") { return b, "HH", nil }
	}
	for _, b:=range p.Bands {
		if strings.Contains(b.Name, "VV") { return b, "VV", nil }
	}
	return nil, "", fmt.Errorf("input product does not contain band with HH or VV polarization")
}
