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


package rest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sarkit/grdborder/internal/ops"
	"github.com/sarkit/grdborder/internal/ops/border"
)

func Serve() {
	r := gin.Default()
	api := r.Group("/api")
	{
		v1 := api.Group("/v1")
		{
			v1.GET ("/ping",    getPing)
			v1.POST("/denoise", postDenoise)
		}
	}
	r.Run() // listen and serve on 0.0.0.0:8080
}

func getPing(c *gin.Context) {
	c.JSON(200, gin.H{
		"message": "pong",
	})
}

func printArgs(logWriter io.Writer, prefix, suffix string, args interface{}) error {
	m, err:=json.MarshalIndent(args, "", "  ")
	if err!=nil { return err }
	fmt.Fprintf(logWriter, "%s%s%s", prefix, string(m), suffix)
	return nil
}

type postDenoiseArgs struct {
	ProductDir  string                `json:"productDir"`
	OutDir      string                `json:"outDir"`
	Jpg         string                `json:"jpg"`
	BorderNoise *border.OpBorderNoise `json:"borderNoise"`
}

func postDenoise(c *gin.Context) {
	logWriter := c.Writer
	var args postDenoiseArgs
	if err:=c.ShouldBind(&args); err!=nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if args.BorderNoise==nil {
		args.BorderNoise=border.NewOpBorderNoiseDefaults()
	} else {
		// rebind the unmarshaled parameters via the constructor, which wires
		// the unary apply method
		bn:=args.BorderNoise
		if bn.BorderLimit==0 { bn.BorderLimit=border.DefaultBorderLimit }
		args.BorderNoise=border.NewOpBorderNoise(bn.SelectedPolarisations, bn.BorderLimit, bn.TrimThreshold)
	}

	header := logWriter.Header()
	header.Set("Content-Type", "text/plain")
	logWriter.WriteHeader(http.StatusOK)

	if err:=printArgs(logWriter, "Arguments:\n", "\n", args); err!=nil {
		fmt.Fprintf(logWriter, "Error printing arguments: %s\n", err.Error())
		return
	}

	ctx:=ops.NewContext(logWriter)
	seq:=ops.NewOpSequence(ops.NewOpLoad(args.ProductDir), args.BorderNoise, ops.NewOpSave(args.OutDir, args.Jpg))
	promises, err:=seq.MakePromises(nil, ctx)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
		return
	}

	_, err=ops.MaterializeAll(promises, ctx.MaxThreads)
	if err!=nil {
		fmt.Fprintf(logWriter, "error: %s\n", err.Error())
	}
	logWriter.(http.Flusher).Flush()
}
