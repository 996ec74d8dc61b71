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


// Package border masks no-value border pixels in Sentinel-1 level-1 GRD
// products. The ESA IPF leaves an elevated noise floor near the swath edges;
// this operator reconstructs a denoised amplitude per border pixel from the
// annotated thermal noise curve and trims pixels below a confidence
// threshold to the no-data value.
//
// Reference: "Masking No-value Pixels on GRD Products generated by the
// Sentinel-1 ESA IPF", OI-MPC-OTH-0243.
package border

import (
	"fmt"

	"github.com/sarkit/grdborder/internal/grd"
	"github.com/sarkit/grdborder/internal/ops"
)

// Parameter defaults
const (
	DefaultBorderLimit   = 500
	DefaultTrimThreshold = 0.5
)

// Removes border noise from a GRD product. Takes one input, produces one output
type OpBorderNoise struct {
	ops.OpUnaryBase
	SelectedPolarisations []string `json:"selectedPolarisations"` // optional allow-list of polarisation tokens
	BorderLimit           int32    `json:"borderLimit"`           // border margin in pixels
	TrimThreshold         float64  `json:"trimThreshold"`         // denoised amplitudes below this are masked
}

func init() { ops.SetOperatorFactory(func() ops.Operator { return NewOpBorderNoiseDefaults() }) } // register the operator for JSON decoding

func NewOpBorderNoiseDefaults() *OpBorderNoise {
	return NewOpBorderNoise(nil, DefaultBorderLimit, DefaultTrimThreshold)
}

func NewOpBorderNoise(selectedPolarisations []string, borderLimit int32, trimThreshold float64) *OpBorderNoise {
	op:=&OpBorderNoise{
		OpUnaryBase:           ops.OpUnaryBase{OpBase: ops.OpBase{Type: "borderNoise", Active: true}},
		SelectedPolarisations: selectedPolarisations,
		BorderLimit:           borderLimit,
		TrimThreshold:         trimThreshold,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return op
}

// Calibration provider backed by the product's own calibration annotation
type productCalibration struct {
	p *grd.Product
}

func (c productCalibration) Vectors(polarization, calType string) [][]float64 {
	return grd.CalibrationVectors(c.p, polarization, calType)
}

// Applies border noise removal to the product. Initialization is a value
// pipeline over metadata only: validation, co-polarization detection,
// version and scaling resolution, noise vector selection, LUT construction
// and target band selection. Pixel data is only touched afterwards, tile by
// tile in parallel.
func (op *OpBorderNoise) Apply(p *grd.Product, c *ops.Context) (result *grd.Product, err error) {
	if err:=ValidateSource(p); err!=nil { return nil, err }

	coPolBand, coPolarization, err:=grd.CoPolBand(p)
	if err!=nil { return nil, &ValidationError{Reason: err.Error()} }

	version, err:=ResolveProcessorVersion(p.AbsRoot)
	if err!=nil { return nil, err }

	alreadyCorrected:=ThermalNoiseCorrectionPerformed(p.OrigRoot)

	var noiseVector *NoiseVector // stays nil when corrected upstream; the LUT is all zeros then
	if !alreadyCorrected {
		noiseVector, err=SelectNoiseVector(p.OrigRoot, coPolarization)
		if err!=nil { return nil, err }
	}

	scaling, err:=ResolveScaling(p.AbsRoot, version, productCalibration{p}, coPolarization)
	if err!=nil { return nil, err }

	noiseLut:=BuildNoiseLut(p.Width, noiseVector, scaling.ScalingFactor, alreadyCorrected)

	selected, err:=SelectSourceBands(p, op.SelectedPolarisations)
	if err!=nil { return nil, err }
	if len(selected)==0 {
		return nil, &ValidationError{Reason: "no amplitude or intensity bands match the selection"}
	}
	target:=BuildTargetProduct(p, selected)

	fmt.Fprintf(c.Log, "Removing border noise from %s: IPF %.2f, co-pol %s, scaling factor %g, border limit %d px, trim threshold %g\n",
	            p.Name, version, coPolarization, scaling.ScalingFactor, op.BorderLimit, op.TrimThreshold)
	if alreadyCorrected {
		fmt.Fprintf(c.Log, "Thermal noise correction already performed upstream, passing amplitudes through\n")
	}

	// virtual bands carry no pixel data to compute
	var srcBands, tgtBands []*grd.Band
	var noDataValues []float64
	for i, srcBand:=range selected {
		if srcBand.Virtual { continue }
		srcBands    =append(srcBands, srcBand)
		tgtBands    =append(tgtBands, target.Bands[i])
		noDataValues=append(noDataValues, srcBand.NoDataValue)
	}

	pr:=&processor{
		width:         p.Width,
		height:        p.Height,
		borderLimit:   op.BorderLimit,
		trimThreshold: op.TrimThreshold,
		noiseLut:      noiseLut,
		coPolBand:     coPolBand,
		coPolNoData:   coPolBand.NoDataValue,
		srcBands:      srcBands,
		tgtBands:      tgtBands,
		noDataValues:  noDataValues,
	}

	rects:=grd.TileRows(p.Width, p.Height, c.TileHeightPx)
	fmt.Fprintf(c.Log, "Processing %d bands in %d tiles on %d threads\n", len(srcBands), len(rects), c.MaxThreads)
	if err:=pr.processAllTiles(rects, c.MaxThreads); err!=nil {
		return nil, fmt.Errorf("border noise removal failed: %s", err.Error())
	}

	for _, tgtBand:=range tgtBands {
		fmt.Fprintf(c.Log, "%s: %v\n", tgtBand.Name, grd.NewStats(tgtBand.Data))
	}
	return target, nil
}
