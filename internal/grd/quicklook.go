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
	"image"
	"image/color"
	"image/jpeg"
	"io"
	"os"

	colorful "github.com/lucasb-eyer/go-colorful"
	"github.com/valyala/fastrand"

	"github.com/sarkit/grdborder/internal/qsort"
)

// Number of pixels sampled to estimate the quicklook display range
const quicklookSamples = 1<<16

// Percentiles clipped away at the dark and bright end of the display range
const (
	quicklookPercLow  = 0.01
	quicklookPercHigh = 0.99
)

// Writes an 8-bit JPEG quicklook of the band to the given file. The display
// range is estimated from percentiles of a random pixel sample. With colored
// set, amplitudes are rendered through an HSV blue-to-yellow ramp.
func WriteQuicklookJPGToFile(b *Band, fileName string, colored bool, quality int) error {
	file, err:=os.Create(fileName)
	if err!=nil { return err }
	defer file.Close()

	writer:=bufio.NewWriter(file)
	defer writer.Flush()

	return WriteQuicklookJPG(b, writer, colored, quality)
}

// Writes an 8-bit JPEG quicklook of the band to the given writer
func WriteQuicklookJPG(b *Band, writer io.Writer, colored bool, quality int) error {
	min, max:=quicklookRange(b.Data)
	scale:=float32(0)
	if max>min { scale=1.0/(max-min) }

	width, height:=int(b.Width), int(b.Height)
	if colored {
		img:=image.NewRGBA(image.Rect(0, 0, width, height))
		for y:=0; y<height; y++ {
			off:=y*width
			for x:=0; x<width; x++ {
				v:=clamp01((b.Data[off+x]-min)*scale)
				col:=colorful.Hsv(240*(1-float64(v)), 0.9, float64(v))
				r, g, bb:=col.RGB255()
				img.SetRGBA(x, y, color.RGBA{r, g, bb, 255})
			}
		}
		return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
	}

	img:=image.NewGray(image.Rect(0, 0, width, height))
	for y:=0; y<height; y++ {
		off:=y*width
		for x:=0; x<width; x++ {
			v:=clamp01((b.Data[off+x]-min)*scale)
			img.SetGray(x, y, color.Gray{Y: uint8(v*255)})
		}
	}
	return jpeg.Encode(writer, img, &jpeg.Options{Quality: quality})
}

func clamp01(v float32) float32 {
	if v<0 { return 0 }
	if v>1 { return 1 }
	return v
}

// Estimates the display range from the low and high percentile of a random
// sample of the pixel values
func quicklookRange(data []float32) (min, max float32) {
	if len(data)==0 { return 0, 1 }

	numSamples:=quicklookSamples
	if numSamples>len(data) { numSamples=len(data) }
	sample:=make([]float32, numSamples)
	if numSamples==len(data) {
		copy(sample, data)
	} else {
		rng:=fastrand.RNG{}
		for i:=range sample {
			sample[i]=data[rng.Uint32n(uint32(len(data)))]
		}
	}

	min=qsort.QSelectPercentileFloat32(sample, quicklookPercLow)
	max=qsort.QSelectPercentileFloat32(sample, quicklookPercHigh)
	if max<=min { max=min+1 }
	return min, max
}
