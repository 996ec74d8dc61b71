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
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/sarkit/grdborder/internal/grd"
)

func TestIsPathAllowed(t *testing.T) {
	if !IsPathAllowed("products/scene1") { t.Errorf("relative path should be allowed") }
	if IsPathAllowed("/etc/passwd") { t.Errorf("absolute path should be rejected") }
	if IsPathAllowed("../secrets") { t.Errorf("parent directory path should be rejected") }
}

func TestOpSequenceJSONRoundTrip(t *testing.T) {
	seq:=NewOpSequence(NewOpLoad("products/scene1"), NewOpSave("out", "out.jpg"))

	bs, err:=json.Marshal(seq)
	if err!=nil { t.Fatalf("marshal: %s", err.Error()) }
	if !strings.Contains(string(bs), `"type":"load"`) { t.Errorf("marshaled sequence %s lacks load step", string(bs)) }

	var back OpSequence
	if err:=json.Unmarshal(bs, &back); err!=nil { t.Fatalf("unmarshal: %s", err.Error()) }
	if len(back.Steps)!=2 { t.Fatalf("got %d steps; want 2", len(back.Steps)) }
	load, ok:=back.Steps[0].(*OpLoad)
	if !ok { t.Fatalf("step 0 type %T; want *OpLoad", back.Steps[0]) }
	if load.Dir!="products/scene1" { t.Errorf("load dir=%q does not round trip", load.Dir) }
	save, ok:=back.Steps[1].(*OpSave)
	if !ok { t.Fatalf("step 1 type %T; want *OpSave", back.Steps[1]) }
	if save.Dir!="out" || save.Jpg!="out.jpg" { t.Errorf("save args do not round trip") }
}

func TestOpSequenceUnknownOperator(t *testing.T) {
	var seq OpSequence
	err:=json.Unmarshal([]byte(`{"type":"seq","active":true,"steps":[{"type":"warp"}]}`), &seq)
	if err==nil { t.Errorf("expected error for unknown operator type") }
}

func TestUnaryOperatorChainsPromises(t *testing.T) {
	op:=OpUnaryBase{OpBase: OpBase{Type: "double", Active: true}}
	op.Apply=func(p *grd.Product, c *Context) (*grd.Product, error) {
		for _, b:=range p.Bands {
			for i:=range b.Data { b.Data[i]*=2 }
		}
		return p, nil
	}

	in:=func() (*grd.Product, error) {
		p:=grd.NewProduct("test", "GRD", 2, 1)
		b:=grd.NewBand("Amplitude_VV", "uint16", 2, 1)
		b.Data[0], b.Data[1]=3, 4
		p.AddBand(b)
		return p, nil
	}

	c:=&Context{Log: io.Discard, MaxThreads: 2}
	outs, err:=op.MakePromises([]Promise{in}, c)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	p, err:=outs[0]()
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if p.Bands[0].Data[0]!=6 || p.Bands[0].Data[1]!=8 { t.Errorf("promise chain did not apply the operator") }
}

func TestMaterializeAll(t *testing.T) {
	mk:=func(name string) Promise {
		return func() (*grd.Product, error) { return grd.NewProduct(name, "GRD", 1, 1), nil }
	}
	fail:=func() (*grd.Product, error) { return nil, errors.New("boom") }

	outs, err:=MaterializeAll([]Promise{mk("a"), mk("b"), mk("c")}, 2)
	if err!=nil { t.Fatalf("unexpected error: %s", err.Error()) }
	if len(outs)!=3 || outs[0].Name!="a" || outs[2].Name!="c" { t.Errorf("outputs out of order: %v", outs) }

	_, err=MaterializeAll([]Promise{mk("a"), fail}, 2)
	if err==nil || !strings.Contains(err.Error(), "boom") { t.Errorf("error not propagated: %v", err) }

	outs, err=MaterializeAll(nil, 2)
	if outs!=nil || err!=nil { t.Errorf("empty input should yield nil, nil") }
}
