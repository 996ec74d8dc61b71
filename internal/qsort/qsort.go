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

// Partitions an array of float32 with the middle pivot element, and returns the pivot index.
// Values less than the pivot are moved left of the pivot, those greater are moved right.
// Array must not contain IEEE NaN
func QPartitionFloat32(a []float32) int {
	left, right:=0, len(a)-1
	mid  :=(left+right)>>1
	pivot:=a[mid]
	l:=left -1
	r:=right+1
	for {
		for {
			l++
			if a[l]>=pivot { break }
		}
		for {
			r--
			if a[r]<=pivot { break }
		}
		if l>=r { return r }
		a[l], a[r] = a[r], a[l]
	}
}

// Select kth lowest element from an array of float32. Partially reorders the array.
// Array must not contain IEEE NaN
func QSelectFloat32(a []float32, k int) float32 {
	for len(a)>1 {
		index:=QPartitionFloat32(a)
		if k<=index+1 {
			a=a[:index+1]
		} else {
			a=a[index+1:]
			k-=index+1
		}
	}
	return a[0]
}

// Select median of an array of float32. Partially reorders the array.
// Array must not contain IEEE NaN
func QSelectMedianFloat32(a []float32) float32 {
	return QSelectFloat32(a, (len(a)>>1)+1)
}

// Select the element at the given fraction of the sorted order, fraction in [0,1].
// Partially reorders the array. Array must not contain IEEE NaN
func QSelectPercentileFloat32(a []float32, fraction float32) float32 {
	k:=int(fraction*float32(len(a)-1))+1
	if k<1 { k=1 }
	if k>len(a) { k=len(a) }
	return QSelectFloat32(a, k)
}
