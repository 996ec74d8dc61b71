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


package ops

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pbnjay/memory"

	"github.com/sarkit/grdborder/internal/grd"
)

// An execution context for operators
type Context struct {
	Log          io.Writer
	MemoryMB     int   // memory.TotalMemory()/1024/1024
	MaxThreads   int   `json:"maxThreads"`
	TileHeightPx int32 `json:"tileHeightPx"` // rows per tile for the tile schedulers
}

func NewContext(log io.Writer) *Context {
	memoryMB:=int(memory.TotalMemory()/1024/1024)
	return &Context{
		Log         : log,
		MemoryMB    : memoryMB,
		MaxThreads  : runtime.GOMAXPROCS(0),
		TileHeightPx: 512,
	}
}

// A promise for a GRD product. Returns a materialized product, or an error
type Promise func() (p *grd.Product, err error)

// A general product processing operator: takes n promises as inputs,
// and produces m promises as output or an error
type Operator interface {
	GetType() string
	IsActive() bool
	MakePromises(ins []Promise, c *Context) (outs []Promise, err error)
}

// Base type for operators, including type information for JSON serializing/deserializing
type OpBase struct {
	Type   string `json:"type"`
	Active bool   `json:"active"`
}

func (op *OpBase) GetType() string { return op.Type }
func (op *OpBase) IsActive() bool  { return op.Active }

// Factory method for operator subclasses. For JSON serializing/deserializing
type OperatorFactory func() Operator

// Mapping from operator type strings to factory method for the type
var operatorFactories=map[string]OperatorFactory{}

// Returns the operator factory for a given type string
func GetOperatorFactory(t string) OperatorFactory {
	return operatorFactories[t]
}

// Registers a given type string for a given type of Operator, identified via an exemplar generator
func SetOperatorFactory(f OperatorFactory) {
	op:=f()
	t:=op.GetType()
	if GetOperatorFactory(t)!=nil { panic(fmt.Sprintf("error: re-registering operator key %s\n", t)) }
	operatorFactories[t]=f
}

// A unary product processing operator: given n promises as inputs,
// applies itself to each of them individually and returns n output promises or an error
type OperatorUnary interface {
	Operator
	Apply(p *grd.Product, c *Context) (pOut *grd.Product, err error)
}

// Abstract base type for unary operators. Uses golang workaround for abstract classes
type OpUnaryBase struct {
	OpBase
	Apply func(p *grd.Product, c *Context) (pOut *grd.Product, err error) `json:"-"`
}

func (op *OpUnaryBase) MakePromises(ins []Promise, c *Context) (outs []Promise, err error) {
	if len(ins)==0 { return nil, errors.New(fmt.Sprintf("unary operator with %d inputs", len(ins))) }
	outs=make([]Promise, len(ins))
	for i, in:=range ins {
		outs[i]=op.MakePromise(in, c)
	}
	return outs, nil
}

func (op *OpUnaryBase) MakePromise(in Promise, c *Context) (out Promise) {
	return func() (p *grd.Product, err error) {
		if p, err=in();           err!=nil { return nil, err } // materialize input promise
		if p, err=op.Apply(p, c); err!=nil { return nil, err } // apply unary operator
		return p, nil                                          // wrap output in promise
	}
}

// Load a single product from a directory. Takes zero inputs, produces one output
type OpLoad struct {
	OpBase
	Dir string `json:"dir"`
}

func init() { SetOperatorFactory(func() Operator { return NewOpLoadDefault() }) } // register the operator for JSON decoding

func NewOpLoadDefault() *OpLoad { return NewOpLoad("") }

func NewOpLoad(dir string) *OpLoad {
	return &OpLoad{
		OpBase: OpBase{Type: "load", Active: true},
		Dir:    dir,
	}
}

func (op *OpLoad) MakePromises(ins []Promise, c *Context) (outs []Promise, err error) {
	if len(ins)>0 { return nil, errors.New(fmt.Sprintf("%s operator with non-zero input", op.Type)) }
	if !IsPathAllowed(op.Dir) { return nil, errors.New("product directory outside current directory tree, aborting") }

	out:=func() (p *grd.Product, err error) {
		return grd.ReadProduct(op.Dir, c.Log)
	}
	return []Promise{out}, nil
}

// Returns true if a path is considered safe, i.e. not an absolute path,
// and doesn't contain the ".." characters to change to a parent directory
func IsPathAllowed(p string) bool {
	if filepath.IsAbs(p) { return false }         // relative paths only
	if strings.Contains(p, "..") { return false } // no going outside the tree
	return true
}

// Saves a product to a directory, with an optional quicklook JPEG of its
// co-polarized band. Takes one input, produces one output (the materialized
// but unchanged input)
type OpSave struct {
	OpUnaryBase
	Dir string `json:"dir"`
	Jpg string `json:"jpg"`
}

func init() { SetOperatorFactory(func() Operator { return NewOpSaveDefault() }) } // register the operator for JSON decoding

func NewOpSaveDefault() *OpSave { return NewOpSave("", "") }

func NewOpSave(dir, jpg string) *OpSave {
	op:=OpSave{
		OpUnaryBase: OpUnaryBase{OpBase: OpBase{Type: "save", Active: dir!="" || jpg!=""}},
		Dir:         dir,
		Jpg:         jpg,
	}
	op.OpUnaryBase.Apply=op.Apply // assign class method to superclass abstract method
	return &op
}

func (op *OpSave) Apply(p *grd.Product, c *Context) (result *grd.Product, err error) {
	if !op.Active { return p, nil }

	if op.Dir!="" {
		if err:=grd.WriteProduct(p, op.Dir, c.Log); err!=nil {
			return nil, errors.New(fmt.Sprintf("error writing product to %s: %s", op.Dir, err.Error()))
		}
	}
	if op.Jpg!="" {
		band, pol, err:=grd.CoPolBand(p)
		if err!=nil { return nil, err }
		fmt.Fprintf(c.Log, "Writing %s quicklook to %s\n", pol, op.Jpg)
		if err:=grd.WriteQuicklookJPGToFile(band, op.Jpg, false, 95); err!=nil {
			return nil, errors.New(fmt.Sprintf("error writing quicklook to %s: %s", op.Jpg, err.Error()))
		}
	}
	return p, nil
}

// Applies a sequence of operators to a promise. Number of inputs, outputs as per the chained steps
type OpSequence struct {
	OpBase
	Steps    []Operator        `json:"-"`     // the actual steps
	StepsRaw []json.RawMessage `json:"steps"` // helper for unmarshaling
}

func init() { SetOperatorFactory(func() Operator { return NewOpSequenceDefault() }) } // register the operator for JSON decoding

func NewOpSequenceDefault() *OpSequence { return NewOpSequence() }

func NewOpSequence(steps ...Operator) *OpSequence {
	return &OpSequence{
		OpBase: OpBase{Type: "seq", Active: len(steps)>0},
		Steps:  steps,
	}
}

// Unmarshals a sequence of polymorphic operators from JSON,
// using the factory registry keyed on the type string
func (op *OpSequence) UnmarshalJSON(b []byte) error {
	type alias OpSequence
	err:=json.Unmarshal(b, (*alias)(op))
	if err!=nil { return err }

	for _, raw:=range op.StepsRaw {
		var step OpBase
		err=json.Unmarshal(raw, &step)
		if err!=nil { return err }

		var i Operator
		if factory:=GetOperatorFactory(step.Type); factory!=nil {
			i=factory()
		} else {
			return errors.New(fmt.Sprintf("Unknown operator type '%s' in raw JSON message '%s'", step.Type, string(raw)))
		}
		err=json.Unmarshal(raw, i)
		if err!=nil { return err }
		op.Steps=append(op.Steps, i)
	}
	return nil
}

// Appends one or more operators to the existing sequence
func (op *OpSequence) Append(steps ...Operator) {
	op.Steps=append(op.Steps, steps...)
}

// Marshals a sequence with polymorphic operators to JSON.
// Uses the actual op.Steps with label "steps", and ignores op.StepsRaw
func (op *OpSequence) MarshalJSON() (bs []byte, err error) {
	buf:=bytes.Buffer{}
	buf.WriteString("{\"type\":")
	inner, err:=json.Marshal(op.Type)
	if err!=nil { return nil, err }
	buf.Write(inner)
	fmt.Fprintf(&buf, ", \"active\":%v, \"steps\":", op.Active)
	inner, err=json.Marshal(op.Steps)
	if err!=nil { return nil, err }
	buf.Write(inner)
	buf.WriteRune('}')
	return buf.Bytes(), nil
}

func (op *OpSequence) MakePromises(ins []Promise, c *Context) (outs []Promise, err error) {
	return op.applyRecursive(op.Steps, ins, c)
}

func (op *OpSequence) applyRecursive(steps []Operator, ins []Promise, c *Context) (outs []Promise, err error) {
	if len(steps)==0 { return ins, nil }
	ins, err=steps[0].MakePromises(ins, c)
	if err!=nil { return nil, err }
	return op.applyRecursive(steps[1:], ins, c)
}

// Materializes all promises with given concurrency limit
func MaterializeAll(ins []Promise, maxThreads int) (outs []*grd.Product, err error) {
	if len(ins)==0 { return nil, nil }
	outs=make([]*grd.Product, len(ins))
	limiter:=make(chan bool, maxThreads)
	errs   :=make(chan error, len(ins))
	for i, in:=range ins {
		limiter <- true
		go func(i int, theIn Promise) {
			defer func() { <-limiter }()
			p, err:=theIn() // materialize the promise
			outs[i]=p
			errs <- err
		}(i, in)
	}
	for i:=0; i<cap(limiter); i++ { // wait for goroutines to finish
		limiter <- true
	}
	for i:=0; i<len(ins); i++ { // collect errors
		e:=<-errs
		if e!=nil {
			if err==nil {
				err=e
			} else {
				err=errors.New(fmt.Sprintf("%s; %s", err.Error(), e.Error()))
			}
		}
	}
	return outs, err
}
