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

	"github.com/sarkit/grdborder/internal/meta"
)

// A sparse thermal noise calibration curve for one range line of one
// polarization: noise power control points at strictly increasing pixel
// positions. Immutable once extracted.
type NoiseVector struct {
	Pixels []int32
	Noise  []float64
}

// Reads the thermal noise correction flag from the annotation metadata.
// A product corrected upstream must not be corrected again; the caller
// responds with an all-zero noise curve rather than a failure.
func ThermalNoiseCorrectionPerformed(orig *meta.Element) bool {
	annotationElem:=orig.Elem("annotation")
	if annotationElem==nil || len(annotationElem.Elems)==0 { return false }
	processingElem:=annotationElem.Elems[0].Elem("processingInformation")
	if processingElem==nil { return false }
	return processingElem.AttrBool("thermalNoiseCorrectionPerformed")
}

// Walks the noise vector entries of the original product metadata, filters
// those whose polarisation is contained in the co-polarization code, and
// selects the middle entry of the matches as the representative range line
// for the whole scene.
func SelectNoiseVector(orig *meta.Element, coPolarization string) (*NoiseVector, error) {
	noiseElem:=orig.Elem("noise")
	if noiseElem==nil {
		return nil, &MissingNoiseVectorError{Polarization: coPolarization}
	}

	var matches []*meta.Element
	for _, vecElem:=range noiseElem.Elems {
		pol:=vecElem.Attr("polarisation")
		if pol!="" && strings.Contains(coPolarization, pol) {
			matches=append(matches, vecElem)
		}
	}
	if len(matches)==0 {
		return nil, &MissingNoiseVectorError{Polarization: coPolarization}
	}

	return parseNoiseVector(matches[len(matches)/2])
}

// Parses one noiseVector element and checks the control point invariants
func parseNoiseVector(e *meta.Element) (*NoiseVector, error) {
	pixels, err:=e.AttrIntList("pixel")
	if err!=nil { return nil, fmt.Errorf("noise vector pixel positions: %s", err.Error()) }
	noise, err:=e.AttrFloatList("noiseLut")
	if err!=nil { return nil, fmt.Errorf("noise vector noise powers: %s", err.Error()) }

	if len(pixels)!=len(noise) {
		return nil, fmt.Errorf("noise vector has %d pixel positions but %d noise powers", len(pixels), len(noise))
	}
	if len(pixels)<2 {
		return nil, fmt.Errorf("noise vector needs at least 2 control points, has %d", len(pixels))
	}
	for i:=1; i<len(pixels); i++ {
		if pixels[i]<=pixels[i-1] {
			return nil, fmt.Errorf("noise vector pixel positions not strictly increasing at index %d", i)
		}
	}
	return &NoiseVector{Pixels: pixels, Noise: noise}, nil
}
