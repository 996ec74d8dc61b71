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

	"github.com/sarkit/grdborder/internal/grd"
)

// Selects the source bands that propagate to the output: every band must
// carry a physical unit; only amplitude and intensity bands qualify; a
// non-empty polarisation allow-list further restricts by band name.
// Returns the qualifying source bands in product order.
func SelectSourceBands(p *grd.Product, selectedPolarisations []string) ([]*grd.Band, error) {
	var selected []*grd.Band
	for _, srcBand:=range p.Bands {
		if srcBand.Unit=="" {
			return nil, &MissingUnitError{Band: srcBand.Name}
		}
		if !strings.Contains(srcBand.Unit, grd.UnitAmplitude) && !strings.Contains(srcBand.Unit, grd.UnitIntensity) {
			continue
		}
		if len(selectedPolarisations)>0 && !containsSelectedPolarisations(srcBand.Name, selectedPolarisations) {
			continue
		}
		selected=append(selected, srcBand)
	}
	return selected, nil
}

func containsSelectedPolarisations(bandName string, pols []string) bool {
	for _, pol:=range pols {
		if strings.Contains(bandName, pol) { return true }
	}
	return false
}

// Builds the target product: same scene header, with each selected source
// band mirrored 1:1. Virtual bands keep their defining expression instead of
// materialized data; all others get freshly allocated pixel buffers.
func BuildTargetProduct(p *grd.Product, selected []*grd.Band) *grd.Product {
	target:=grd.NewProduct(p.Name, p.Type, p.Width, p.Height)
	target.AbsRoot =p.AbsRoot
	target.OrigRoot=p.OrigRoot

	for _, srcBand:=range selected {
		tgtBand:=&grd.Band{
			Name:            srcBand.Name,
			DataType:        srcBand.DataType,
			Width:           srcBand.Width,
			Height:          srcBand.Height,
			Unit:            srcBand.Unit,
			NoDataValue:     srcBand.NoDataValue,
			NoDataValueUsed: srcBand.NoDataValueUsed,
			Description:     srcBand.Description,
			Virtual:         srcBand.Virtual,
			Expression:      srcBand.Expression,
		}
		if !srcBand.Virtual {
			tgtBand.Data=make([]float32, int(srcBand.Width)*int(srcBand.Height))
		}
		target.AddBand(tgtBand)
	}
	return target
}
