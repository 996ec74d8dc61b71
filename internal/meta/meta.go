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


package meta

import (
	"strconv"
	"strings"
)

// Attribute keys of the abstracted product metadata
const (
	Mission                    = "MISSION"
	ProductType                = "PRODUCT_TYPE"
	ProductName                = "PRODUCT"
	AcquisitionMode            = "ACQUISITION_MODE"
	ProcessingSystemIdentifier = "ProcessingSystemIdentifier"
	AbsCalibrationFlag         = "abs_calibration_flag"
)

// The sentinel returned for missing string attributes
const NoValue = ""

// A node in the hierarchical product metadata tree. Carries named attributes
// as strings, plus an ordered list of child elements. Serializes to JSON as
// part of the product annotation file.
type Element struct {
	Name  string            `json:"name"`
	Attrs map[string]string `json:"attributes,omitempty"`
	Elems []*Element        `json:"elements,omitempty"`
}

// Creates a metadata element with the given name and no attributes or children
func NewElement(name string) *Element {
	return &Element{
		Name:  name,
		Attrs: map[string]string{},
	}
}

// Sets a string attribute, and returns the element for chaining
func (e *Element) SetAttr(name, value string) *Element {
	if e.Attrs==nil { e.Attrs=map[string]string{} }
	e.Attrs[name]=value
	return e
}

// Returns true if the element carries an attribute of the given name
func (e *Element) HasAttr(name string) bool {
	_, ok:=e.Attrs[name]
	return ok
}

// Returns the string attribute of the given name, or NoValue if missing
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}

// Returns the boolean attribute of the given name, or false if missing or unparseable
func (e *Element) AttrBool(name string) bool {
	b, err:=strconv.ParseBool(e.Attrs[name])
	if err!=nil { return false }
	return b
}

// Returns the integer attribute of the given name, or the given default if missing or unparseable
func (e *Element) AttrInt(name string, def int) int {
	i, err:=strconv.Atoi(e.Attrs[name])
	if err!=nil { return def }
	return i
}

// Appends child elements, and returns the element for chaining
func (e *Element) AddElems(children ...*Element) *Element {
	e.Elems=append(e.Elems, children...)
	return e
}

// Returns the first child element of the given name, or nil if missing
func (e *Element) Elem(name string) *Element {
	for _, c:=range e.Elems {
		if c.Name==name { return c }
	}
	return nil
}

// Parses a whitespace-separated list of integers from the attribute of the given name
func (e *Element) AttrIntList(name string) ([]int32, error) {
	fields:=strings.Fields(e.Attrs[name])
	vals:=make([]int32, len(fields))
	for i, f:=range fields {
		v, err:=strconv.ParseInt(f, 10, 32)
		if err!=nil { return nil, err }
		vals[i]=int32(v)
	}
	return vals, nil
}

// Parses a whitespace-separated list of floats from the attribute of the given name
func (e *Element) AttrFloatList(name string) ([]float64, error) {
	fields:=strings.Fields(e.Attrs[name])
	vals:=make([]float64, len(fields))
	for i, f:=range fields {
		v, err:=strconv.ParseFloat(f, 64)
		if err!=nil { return nil, err }
		vals[i]=v
	}
	return vals, nil
}
