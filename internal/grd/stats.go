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

	"gonum.org/v1/gonum/stat"
)

// Basic amplitude statistics of one band, for log output
type Stats struct {
	Min, Max     float64
	Mean, StdDev float64
}

// Computes min, max, mean and standard deviation over the given pixel values
func NewStats(data []float32) *Stats {
	if len(data)==0 { return &Stats{} }

	min, max:=float64(data[0]), float64(data[0])
	vals:=make([]float64, len(data))
	for i, d:=range data {
		v:=float64(d)
		vals[i]=v
		if v<min { min=v }
		if v>max { max=v }
	}
	mean, std:=stat.MeanStdDev(vals, nil)
	return &Stats{Min: min, Max: max, Mean: mean, StdDev: std}
}

func (s *Stats) String() string {
	return fmt.Sprintf("min %.1f max %.1f mean %.2f stddev %.2f", s.Min, s.Max, s.Mean, s.StdDev)
}
