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

// Expands the sparse noise curve into a dense, pre-scaled noise power table
// with one entry per scene column. Outside the control point range the first
// and last interval are extrapolated linearly. With alreadyCorrected set the
// table is all zeros and the correction becomes a no-op.
//
// The segment cursor only ever moves forward: columns are visited in
// increasing order and control point positions are strictly increasing, so
// the walk amortizes to O(width) regardless of the number of segments.
// The cursor is local to this call and never survives it.
func BuildNoiseLut(width int32, nv *NoiseVector, scalingFactor float64, alreadyCorrected bool) []float64 {
	lut:=make([]float64, width)
	if alreadyCorrected { return lut }

	segment:=segmentIndex(0, nv.Pixels)
	lastSegment:=len(nv.Pixels)-2
	for x:=int32(0); x<width; x++ {
		for x>nv.Pixels[segment+1] && segment<lastSegment {
			segment++
		}
		x0, x1:=nv.Pixels[segment], nv.Pixels[segment+1]
		n0, n1:=nv.Noise[segment], nv.Noise[segment+1]
		mu:=float64(x-x0)/float64(x1-x0)
		lut[x]=(n0+(n1-n0)*mu)*scalingFactor
	}
	return lut
}

// Returns the index of the control point interval containing column x:
// the smallest i with x < pixels[i], minus one, clamped to the valid
// interval range [0, len-2]
func segmentIndex(x int32, pixels []int32) int {
	for i:=0; i<len(pixels); i++ {
		if x<pixels[i] {
			if i<=1 { return 0 }
			return i-1
		}
	}
	return len(pixels)-2
}
