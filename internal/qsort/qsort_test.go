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


package qsort

import (
	"math/rand"
	"sort"
	"testing"
)

func TestQSelectFloat32(t *testing.T) {
	rng:=rand.New(rand.NewSource(42))
	for trial:=0; trial<10; trial++ {
		n:=1+rng.Intn(100)
		a:=make([]float32, n)
		for i:=range a { a[i]=rng.Float32()*1000 }

		sorted:=make([]float32, n)
		copy(sorted, a)
		sort.Slice(sorted, func(i, j int) bool { return sorted[i]<sorted[j] })

		k:=1+rng.Intn(n)
		work:=make([]float32, n)
		copy(work, a)
		if got, want:=QSelectFloat32(work, k), sorted[k-1]; got!=want {
			t.Errorf("trial %d: kth=%d of %d elements: got %f; want %f", trial, k, n, got, want)
		}
	}
}

func TestQSelectMedianFloat32(t *testing.T) {
	a:=[]float32{5, 1, 4, 2, 3}
	if got:=QSelectMedianFloat32(a); got!=3 { t.Errorf("median=%f; want 3", got) }
}

func TestQSelectPercentileFloat32(t *testing.T) {
	a:=make([]float32, 101)
	for i:=range a { a[i]=float32(i) }
	rand.New(rand.NewSource(7)).Shuffle(len(a), func(i, j int) { a[i], a[j]=a[j], a[i] })

	work:=make([]float32, len(a))
	copy(work, a)
	if got:=QSelectPercentileFloat32(work, 0.0); got!=0 { t.Errorf("p0=%f; want 0", got) }
	copy(work, a)
	if got:=QSelectPercentileFloat32(work, 1.0); got!=100 { t.Errorf("p100=%f; want 100", got) }
	copy(work, a)
	if got:=QSelectPercentileFloat32(work, 0.25); got!=25 { t.Errorf("p25=%f; want 25", got) }
}
