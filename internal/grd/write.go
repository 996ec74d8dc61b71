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
	"bufio"
	"encoding/json"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/tiff"
)

// Writes a product to the given directory: product.json annotation plus one
// 16-bit grayscale TIFF measurement raster per materialized band
func WriteProduct(p *Product, dir string, logWriter io.Writer) error {
	if err:=os.MkdirAll(dir, 0755); err!=nil { return err }

	ann:=annotation{
		Name:       p.Name,
		Type:       p.Type,
		Width:      p.Width,
		Height:     p.Height,
		Abstracted: p.AbsRoot,
		Original:   p.OrigRoot,
	}
	for _, b:=range p.Bands {
		ab:=aBand{Band: *b}
		ab.Data=nil
		if !b.Virtual {
			ab.File=measurementFileName(b.Name)
			if err:=writeMeasurement(b, filepath.Join(dir, ab.File)); err!=nil { return err }
		}
		ann.Bands=append(ann.Bands, ab)
	}

	f, err:=os.Create(filepath.Join(dir, AnnotationFileName))
	if err!=nil { return err }
	defer f.Close()

	enc:=json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err:=enc.Encode(&ann); err!=nil { return err }

	fmt.Fprintf(logWriter, "Wrote %s product %s with %d bands of %dx%d pixels to %s\n",
	            p.Type, p.Name, len(p.Bands), p.Width, p.Height, dir)
	return nil
}

func measurementFileName(bandName string) string {
	return strings.ToLower(bandName)+".tif"
}

// Encodes a band as deflate-compressed 16-bit grayscale TIFF.
// Values are clamped to [0, 65535]; GRD detected pixels are 16-bit DNs.
func writeMeasurement(b *Band, fileName string) error {
	f, err:=os.Create(fileName)
	if err!=nil { return err }
	defer f.Close()

	writer:=bufio.NewWriter(f)
	defer writer.Flush()

	width, height:=int(b.Width), int(b.Height)
	img:=image.NewGray16(image.Rect(0, 0, width, height))
	for y:=0; y<height; y++ {
		off:=y*width
		for x:=0; x<width; x++ {
			v:=b.Data[off+x]
			if v<0 { v=0 }
			if v>65535 { v=65535 }
			img.SetGray16(x, y, color.Gray16{Y: uint16(v+0.5)})
		}
	}

	return tiff.Encode(writer, img, &tiff.Options{Compression: tiff.Deflate, Predictor: true})
}
