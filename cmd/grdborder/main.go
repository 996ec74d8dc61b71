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

package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/pprof"
	"strings"
	"time"

	"github.com/pbnjay/memory"

	gb "github.com/sarkit/grdborder/internal"
	"github.com/sarkit/grdborder/internal/grd"
	"github.com/sarkit/grdborder/internal/ops"
	"github.com/sarkit/grdborder/internal/ops/border"
	"github.com/sarkit/grdborder/internal/rest"
)

const version = "0.3.1"

var totalMiBs=memory.TotalMemory()/1024/1024

var cpuprofile = flag.String("cpuprofile", "", "write cpu profile to `file`")
var memprofile = flag.String("memprofile", "", "write memory profile to `file`")

var out = flag.String("out", "out", "save output product to `directory`")
var jpg = flag.String("jpg", "%auto", "save 8bit quicklook of the co-polarized band as JPEG to `file`. `%auto` derives the name from the output directory")
var log = flag.String("log", "%auto", "save log output to `file`. `%auto` derives the name from the output directory")

var pol           = flag.String("pol", "", "comma-separated polarisation allow-list for output bands, e.g. VV,VH. Empty selects all")
var borderLimit   = flag.Int64("borderLimit", border.DefaultBorderLimit, "border margin limit in pixels")
var trimThreshold = flag.Float64("trimThreshold", border.DefaultTrimThreshold, "trim threshold for denoised border amplitudes")
var tileHeight    = flag.Int64("tileHeight", 512, "rows per processing tile")

var chroot = flag.String("chroot", "", "change filesystem root to `directory` before serving (requires root)")
var setuid = flag.Int64("setuid", -1, "change user id before serving, -1=don't")

func main() {
	logWriter:=os.Stdout
	start:=time.Now()
	flag.Usage=func() {
		fmt.Fprintf(logWriter, `grdborder masks border noise pixels in Sentinel-1 GRD products.
This program comes with ABSOLUTELY NO WARRANTY.
This is free software, and you are welcome to redistribute it under certain conditions.
Refer to https://www.gnu.org/licenses/gpl-3.0.en.html for details.

Usage: %s [-flag value] (denoise|stats|serve|legal|version) (productDir0 ... productDirN)

Commands:
  denoise Remove border noise from the input products
  stats   Show input product band statistics
  serve   Serve the border noise operator as a REST API
  legal   Show license and attribution information
  version Show version information

Flags:
`, os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Initialize logging to file in addition to stdout, if selected
	if *log=="%auto" {
		if *out!="" {
			*log=strings.TrimSuffix(*out, string(filepath.Separator))+".log"
		} else {
			*log=""
		}
	}
	if *log!="" {
		err:=gb.LogAlsoToFile(*log)
		if err!=nil { gb.LogFatalf("Unable to open logfile '%s'\n", *log) }
	}

	// Also auto-select JPEG quicklook target
	if *jpg=="%auto" {
		if *out!="" {
			*jpg=strings.TrimSuffix(*out, string(filepath.Separator))+".jpg"
		} else {
			*jpg=""
		}
	}

	// Enable CPU profiling if flagged
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			gb.LogFatal("Could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			gb.LogFatal("Could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
	}

	args:=flag.Args()
	if len(args)<1 {
		flag.Usage()
		return
	}

	ctx:=ops.NewContext(gb.LogWriter{})
	ctx.TileHeightPx=int32(*tileHeight)
	fmt.Fprintf(logWriter, "Physical memory %d MiB, %d threads\n", totalMiBs, ctx.MaxThreads)

	var selectedPols []string
	if *pol!="" {
		selectedPols=strings.Split(*pol, ",")
	}

	var err error
	switch args[0] {
	case "denoise":
		err=cmdDenoise(args[1:], selectedPols, ctx)

	case "stats":
		err=cmdStats(args[1:], ctx)

	case "serve":
		rest.MakeSandbox(*chroot, int(*setuid))
		rest.Serve()

	case "legal":
		cmdLegal()

	case "version":
		fmt.Fprintf(logWriter, "Version %s\n", version)

	case "help", "?":
		flag.Usage()

	default:
		fmt.Fprintf(logWriter, "Unknown command '%s'\n\n", args[0])
		flag.Usage()
		return
	}

	now:=time.Now()
	elapsed:=now.Sub(start)
	fmt.Fprintf(logWriter, "\nDone after %v\n", elapsed)
	gb.LogSync()

	// Store memory profile if flagged
	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			gb.LogFatal("Could not create memory profile: ", err)
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.Lookup("allocs").WriteTo(f, 0); err != nil {
			gb.LogFatal("Could not write allocation profile: ", err)
		}
	}

	if err!=nil {
		fmt.Fprintf(logWriter, "Error: %s\n", err.Error())
		os.Exit(-1)
	}
}

// Removes border noise from each given product directory. With multiple
// inputs, output directory and quicklook names gain a numeric suffix.
func cmdDenoise(dirs []string, selectedPols []string, ctx *ops.Context) error {
	if len(dirs)==0 { return fmt.Errorf("denoise needs at least one product directory") }

	opBorder:=border.NewOpBorderNoise(selectedPols, int32(*borderLimit), *trimThreshold)
	for i, dir:=range dirs {
		outDir, jpgFile:=*out, *jpg
		if len(dirs)>1 {
			if outDir!=""  { outDir =fmt.Sprintf("%s%04d", outDir, i) }
			if jpgFile!="" { jpgFile=fmt.Sprintf("%s%04d.jpg", strings.TrimSuffix(jpgFile, ".jpg"), i) }
		}
		seq:=ops.NewOpSequence(ops.NewOpLoad(dir), opBorder, ops.NewOpSave(outDir, jpgFile))
		promises, err:=seq.MakePromises(nil, ctx)
		if err!=nil { return err }
		if _, err:=ops.MaterializeAll(promises, ctx.MaxThreads); err!=nil { return err }
	}
	return nil
}

// Prints band statistics for each given product directory
func cmdStats(dirs []string, ctx *ops.Context) error {
	if len(dirs)==0 { return fmt.Errorf("stats needs at least one product directory") }

	for _, dir:=range dirs {
		p, err:=grd.ReadProduct(dir, ctx.Log)
		if err!=nil { return err }
		for _, b:=range p.Bands {
			if b.Virtual {
				fmt.Fprintf(ctx.Log, "%s: virtual, %s\n", b.Name, b.Expression)
				continue
			}
			fmt.Fprintf(ctx.Log, "%s [%s]: %v\n", b.Name, b.Unit, grd.NewStats(b.Data))
		}
	}
	return nil
}
