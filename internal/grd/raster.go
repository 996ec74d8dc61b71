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

// A rectangular pixel region of the scene raster
type Rect struct {
	X, Y          int32
	Width, Height int32
}

// A pixel buffer for one band covering one rectangular region.
// Data is row-major with stride Rect.Width, addressed via TileIndex.
type Tile struct {
	Rect Rect
	Data []float32
}

// Creates a tile with zeroed pixel data for the given region
func NewTile(r Rect) *Tile {
	return &Tile{
		Rect: r,
		Data: make([]float32, int(r.Width)*int(r.Height)),
	}
}

// Sets every pixel of the tile to the given value
func (t *Tile) Fill(v float32) {
	for i:=range t.Data { t.Data[i]=v }
}

// Row-stride aware index helper for tile buffers addressed in scene coordinates.
// CalculateStride must be called once per row before Index is used for its columns.
type TileIndex struct {
	x0, y0 int32
	stride int32
	offset int32
}

func NewTileIndex(t *Tile) *TileIndex {
	return &TileIndex{
		x0:     t.Rect.X,
		y0:     t.Rect.Y,
		stride: t.Rect.Width,
	}
}

// Prepares the index for scene row y
func (ti *TileIndex) CalculateStride(y int32) {
	ti.offset=(y-ti.y0)*ti.stride - ti.x0
}

// Returns the linear buffer index for scene column x in the prepared row
func (ti *TileIndex) Index(x int32) int32 {
	return ti.offset + x
}

// Copies the given region of a materialized band into a fresh tile
func ReadTile(b *Band, r Rect) *Tile {
	t:=NewTile(r)
	for y:=int32(0); y<r.Height; y++ {
		srcOff:=(r.Y+y)*b.Width + r.X
		dstOff:=y*r.Width
		copy(t.Data[dstOff:dstOff+r.Width], b.Data[srcOff:srcOff+r.Width])
	}
	return t
}

// Copies a tile buffer back into the matching region of a materialized band
func WriteTile(b *Band, t *Tile) {
	r:=t.Rect
	for y:=int32(0); y<r.Height; y++ {
		srcOff:=y*r.Width
		dstOff:=(r.Y+y)*b.Width + r.X
		copy(b.Data[dstOff:dstOff+r.Width], t.Data[srcOff:srcOff+r.Width])
	}
}

// Cuts the scene into full-width tile rows of at most tileHeight rows each
func TileRows(width, height, tileHeight int32) []Rect {
	if tileHeight<=0 { tileHeight=height }
	var rects []Rect
	for y:=int32(0); y<height; y+=tileHeight {
		h:=tileHeight
		if y+h>height { h=height-y }
		rects=append(rects, Rect{X: 0, Y: y, Width: width, Height: h})
	}
	return rects
}
