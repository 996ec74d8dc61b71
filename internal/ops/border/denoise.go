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
	"math"

	"github.com/sarkit/grdborder/internal/grd"
)

// Detected amplitudes below this floor denoise to zero outright
const amplitudeFloor = 30

// Immutable per-run state shared by all tile computations
type processor struct {
	width, height int32
	borderLimit   int32
	trimThreshold float64
	noiseLut      []float64

	coPolBand    *grd.Band
	coPolNoData  float64
	srcBands     []*grd.Band // materialized selected bands, index-aligned with tgtBands
	tgtBands     []*grd.Band
	noDataValues []float64 // per-band no-data, index-aligned with srcBands
}

// Computes one tile for all bands. Pixels outside the border margin copy
// through unchanged. Border pixels are judged by the denoised co-polarized
// amplitude: below the trim threshold every band is masked with its no-data
// value; at or above it the pixel copies through like a non-border pixel.
// Border pixels whose co-polarized value equals the no-data sentinel are not
// written at all; target tiles are pre-filled with no-data so this leaves
// them masked deterministically.
func (pr *processor) computeTileStack(rect grd.Rect, srcTiles, tgtTiles []*grd.Tile, coPolTile *grd.Tile) {
	x0, y0:=rect.X, rect.Y
	xMax, yMax:=x0+rect.Width, y0+rect.Height

	srcIndex:=grd.NewTileIndex(srcTiles[0])
	tgtIndex:=grd.NewTileIndex(tgtTiles[0])

	for y:=y0; y<yMax; y++ {
		srcIndex.CalculateStride(y)
		tgtIndex.CalculateStride(y)

		for x:=x0; x<xMax; x++ {
			srcIdx:=srcIndex.Index(x)

			testPixel:=x<pr.borderLimit || x>pr.width-pr.borderLimit ||
			           y<pr.borderLimit || y>pr.height-pr.borderLimit

			if testPixel {
				coPolValue:=float64(coPolTile.Data[srcIdx])
				if coPolValue==pr.coPolNoData {
					continue
				}

				var deNoisedValue float64
				if coPolValue<amplitudeFloor {
					deNoisedValue=0
				} else {
					deNoisedValue=math.Sqrt(math.Max(coPolValue*coPolValue-pr.noiseLut[x], 0.0))
				}

				if deNoisedValue<pr.trimThreshold {
					tgtIdx:=tgtIndex.Index(x)
					for i:=range tgtTiles {
						tgtTiles[i].Data[tgtIdx]=float32(pr.noDataValues[i])
					}
				} else {
					testPixel=false
				}
			}
			if !testPixel {
				tgtIdx:=tgtIndex.Index(x)
				for i:=range tgtTiles {
					tgtTiles[i].Data[tgtIdx]=srcTiles[i].Data[srcIdx]
				}
			}
		}
	}
}

// Computes one tile row end to end: fetches source buffers, pre-fills the
// target buffers with each band's no-data value, runs the stack computation,
// and writes the results back to the target bands
func (pr *processor) processTile(rect grd.Rect) {
	srcTiles:=make([]*grd.Tile, len(pr.srcBands))
	tgtTiles:=make([]*grd.Tile, len(pr.tgtBands))
	for i, srcBand:=range pr.srcBands {
		srcTiles[i]=grd.ReadTile(srcBand, rect)
		tgtTiles[i]=grd.NewTile(rect)
		tgtTiles[i].Fill(float32(pr.noDataValues[i]))
	}
	coPolTile:=grd.ReadTile(pr.coPolBand, rect)

	pr.computeTileStack(rect, srcTiles, tgtTiles, coPolTile)

	for i, tgtBand:=range pr.tgtBands {
		grd.WriteTile(tgtBand, tgtTiles[i])
	}
}

// Processes all tile rows of the scene with the given concurrency limit.
// Tiles are independent: each reads only the immutable shared state and its
// own buffers, so any ordering is valid. A panic in a tile computation is
// recovered and reported as a wrapped error terminating the run.
func (pr *processor) processAllTiles(rects []grd.Rect, maxThreads int) (err error) {
	limiter:=make(chan bool, maxThreads)
	errs   :=make(chan error, len(rects))
	for _, rect:=range rects {
		limiter <- true
		go func(rect grd.Rect) {
			defer func() { <-limiter }()
			defer func() {
				if r:=recover(); r!=nil {
					errs <- fmt.Errorf("computing tile at y=%d: %v", rect.Y, r)
					return
				}
				errs <- nil
			}()
			pr.processTile(rect)
		}(rect)
	}
	for i:=0; i<cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
	for i:=0; i<len(rects); i++ { // collect errors
		e:=<-errs
		if e!=nil {
			if err==nil {
				err=e
			} else {
				err=fmt.Errorf("%s; %s", err.Error(), e.Error())
			}
		}
	}
	return err
}
