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
	"encoding/json"
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/image/tiff"

	"github.com/sarkit/grdborder/internal/meta"
)

// Name of the product annotation file inside a product directory
const AnnotationFileName = "product.json"

// On-disk product annotation: scene header, band list with measurement file
// references, and the two metadata trees
type annotation struct {
	Name   string  `json:"name"`
	Type   string  `json:"type"`
	Width  int32   `json:"width"`
	Height int32   `json:"height"`
	Bands  []aBand `json:"bands"`

	Abstracted *meta.Element `json:"abstractedMetadata"`
	Original   *meta.Element `json:"originalMetadata"`
}

type aBand struct {
	Band
	File string `json:"file,omitempty"` // measurement raster, relative to the product directory
}

// Reads a product from a directory holding a product.json annotation plus
// per-band TIFF measurement rasters
func ReadProduct(dir string, logWriter io.Writer) (*Product, error) {
	f, err:=os.Open(filepath.Join(dir, AnnotationFileName))
	if err!=nil { return nil, err }
	defer f.Close()

	var ann annotation
	if err:=json.NewDecoder(f).Decode(&ann); err!=nil {
		return nil, fmt.Errorf("%s: invalid annotation: %s", dir, err.Error())
	}

	p:=NewProduct(ann.Name, ann.Type, ann.Width, ann.Height)
	if ann.Abstracted!=nil { p.AbsRoot =ann.Abstracted }
	if ann.Original  !=nil { p.OrigRoot=ann.Original }

	for i:=range ann.Bands {
		b:=ann.Bands[i].Band
		if !b.Virtual {
			if ann.Bands[i].File=="" {
				return nil, fmt.Errorf("band %s has neither measurement file nor expression", b.Name)
			}
			data, w, h, err:=readMeasurement(filepath.Join(dir, ann.Bands[i].File))
			if err!=nil { return nil, err }
			if w!=b.Width || h!=b.Height {
				return nil, fmt.Errorf("band %s measurement is %dx%d, annotation says %dx%d", b.Name, w, h, b.Width, b.Height)
			}
			b.Data=data
		}
		bb:=b
		p.AddBand(&bb)
	}

	fmt.Fprintf(logWriter, "Loaded %s product %s with %d bands of %dx%d pixels from %s\n",
	            p.Type, p.Name, len(p.Bands), p.Width, p.Height, dir)
	return p, nil
}

// Decodes a TIFF measurement raster into float32 pixel values
func readMeasurement(fileName string) (data []float32, width, height int32, err error) {
	f, err:=os.Open(fileName)
	if err!=nil { return nil, 0, 0, err }
	defer f.Close()

	img, err:=tiff.Decode(f)
	if err!=nil { return nil, 0, 0, fmt.Errorf("%s: %s", fileName, err.Error()) }

	bounds:=img.Bounds()
	width, height=int32(bounds.Dx()), int32(bounds.Dy())
	data=make([]float32, int(width)*int(height))

	switch im:=img.(type) {
	case *image.Gray16:
		for y:=0; y<int(height); y++ {
			row:=im.Pix[y*im.Stride:]
			off:=y*int(width)
			for x:=0; x<int(width); x++ {
				data[off+x]=float32(uint16(row[2*x])<<8 | uint16(row[2*x+1]))
			}
		}
	case *image.Gray:
		for y:=0; y<int(height); y++ {
			row:=im.Pix[y*im.Stride:]
			off:=y*int(width)
			for x:=0; x<int(width); x++ {
				data[off+x]=float32(row[x])
			}
		}
	default:
		for y:=bounds.Min.Y; y<bounds.Max.Y; y++ {
			off:=(y-bounds.Min.Y)*int(width)
			for x:=bounds.Min.X; x<bounds.Max.X; x++ {
				r, _, _, _:=img.At(x, y).RGBA()
				data[off+x-bounds.Min.X]=float32(r)
			}
		}
	}
	return data, width, height, nil
}
