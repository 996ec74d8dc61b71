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
	"strconv"
	"strings"

	"github.com/sarkit/grdborder/internal/meta"
)

// Instrument noise constants per acquisition mode, from the ESA IPF border
// masking note (OI-MPC-OTH-0243-S1)
const (
	kNoiseIW = 75088.7
	kNoiseEW = 56065.87
)

// IPF version thresholds changing the noise scaling formula
const (
	versionDNSquared = 2.34 // from here on the formula uses dn0 squared
	versionPrescaled = 2.50 // from here on noise vectors come pre-scaled
)

// Provides calibration sample vectors of a given type for a given
// polarization, in annotation order
type CalibrationProvider interface {
	Vectors(polarization, calType string) [][]float64
}

// The scalar noise scaling derived once at initialization from the processor
// version, acquisition mode and DN calibration. Immutable for the run.
type ScalingContext struct {
	ProcessorVersion float64
	AcquisitionMode  string
	KNoise           float64
	DN0              float64
	ScalingFactor    float64
}

// Parses the IPF processor version from the free-text processing system
// identifier. The version number is the token after the last space,
// e.g. "Sentinel-1 IPF 002.36" yields 2.36.
func ResolveProcessorVersion(abs *meta.Element) (float64, error) {
	procSysID:=abs.Attr(meta.ProcessingSystemIdentifier)
	idx:=strings.LastIndex(procSysID, " ")
	if idx<0 || idx+1>=len(procSysID) {
		return 0, fmt.Errorf("cannot parse processor version from %q", procSysID)
	}
	version, err:=strconv.ParseFloat(procSysID[idx+1:], 64)
	if err!=nil {
		return 0, fmt.Errorf("cannot parse processor version from %q: %s", procSysID, err.Error())
	}
	return version, nil
}

// Derives the noise scaling factor for the given processor version.
// Versions before 2.50 scale the annotated noise powers by knoise*dn0
// (before 2.34) or knoise*dn0^2 (2.34 and later); from 2.50 on the
// annotation is pre-scaled and the factor is 1.
func ResolveScaling(abs *meta.Element, version float64, cal CalibrationProvider, coPolarization string) (ScalingContext, error) {
	sc:=ScalingContext{ProcessorVersion: version}

	if version>=versionPrescaled {
		sc.ScalingFactor=1.0
		return sc, nil
	}

	sc.AcquisitionMode=abs.Attr(meta.AcquisitionMode)
	switch {
	case strings.Contains(sc.AcquisitionMode, "IW"):
		sc.KNoise=kNoiseIW
	case strings.Contains(sc.AcquisitionMode, "EW"):
		sc.KNoise=kNoiseEW
	default:
		return ScalingContext{}, &UnsupportedModeError{Mode: sc.AcquisitionMode}
	}

	sc.DN0=dn0(cal, coPolarization)

	if version<versionDNSquared {
		sc.ScalingFactor=sc.KNoise*sc.DN0
	} else {
		sc.ScalingFactor=sc.KNoise*sc.DN0*sc.DN0
	}
	return sc, nil
}

// Returns the first sample of the first DN calibration vector for the given
// polarization. A product without matching calibration records yields 0,
// which propagates to a zero scaling factor rather than a failure.
func dn0(cal CalibrationProvider, polarization string) float64 {
	vectors:=cal.Vectors(polarization, "dn")
	if len(vectors)==0 || len(vectors[0])==0 { return 0.0 }
	return vectors[0][0]
}
