// Copyright 2025 Google LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dispatch

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/ir"
	"github.com/gx-org/tkdispatch/irb/irbtest"
	"github.com/gx-org/tkdispatch/kind"
	"github.com/gx-org/tkdispatch/typectx"
)

func newDispatch() (*Dispatch, *irbtest.Fake) {
	b := irbtest.New()
	block := &ir.BasicBlock{Name: "entry", Parent: &ir.Function{Name: "k"}}
	b.SetInsertPoint(block, nil)
	return New(typectx.New(), b), b
}

func i32() *frontend.Integer  { return &frontend.Integer{Bits: 32, Sign: kind.Signed} }
func u32() *frontend.Integer  { return &frontend.Integer{Bits: 32, Sign: kind.Unsigned} }
func fp32() *frontend.Float   { return &frontend.Float{Knd: kind.FP32} }
func fp16() *frontend.Float   { return &frontend.Float{Knd: kind.FP16} }

func scalarConst(d *Dispatch, ft frontend.Type, v ir.Value) *frontend.Value {
	return d.Ctx.CreateValue(v, ft)
}

func TestAddIntegerBroadcast(t *testing.T) {
	d, b := newDispatch()
	scalarTy := i32()
	blockTy := &frontend.Block{Elem: i32(), Shape: []uint32{4}}

	lhs := scalarConst(d, scalarTy, b.GetInt32(1))

	rhsInst := b.Insert(&ir.Inst{Op: ir.OpSplat, Typ: blockTy.IRType()})
	rhsVal := d.Ctx.CreateValue(rhsInst, blockTy)

	got, err := d.Add(lhs, rhsVal)
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if !got.Type().IsBlock() {
		t.Fatalf("Add result should broadcast to a Block, got %s", got.Type())
	}
	inst, ok := got.IR().(*ir.Inst)
	if !ok || inst.Op != ir.OpAdd {
		t.Fatalf("Add should emit OpAdd, got %#v", got.IR())
	}
}

func TestTrueDivMixedPrecision(t *testing.T) {
	d, b := newDispatch()
	lhs := scalarConst(d, fp16(), b.GetFloat32(1))
	rhs := scalarConst(d, i32(), b.GetInt32(2))

	got, err := d.TrueDiv(lhs, rhs)
	if err != nil {
		t.Fatalf("TrueDiv: %v", err)
	}
	if diff := cmp.Diff("fp16", got.Type().String()); diff != "" {
		t.Errorf("TrueDiv(fp16, i32) result type mismatch (-want +got):\n%s", diff)
	}
	inst, ok := got.IR().(*ir.Inst)
	if !ok || inst.Op != ir.OpFDiv {
		t.Fatalf("TrueDiv should emit OpFDiv, got %#v", got.IR())
	}
}

func TestModMixedSignednessIsRejected(t *testing.T) {
	d, b := newDispatch()
	lhs := scalarConst(d, i32(), b.GetInt32(7))
	rhs := scalarConst(d, u32(), b.GetInt32(3))

	_, err := d.Mod(lhs, rhs)
	if err == nil {
		t.Fatal("Mod(signed, unsigned) should be rejected")
	}
}

func TestCastPointerToBool(t *testing.T) {
	d, b := newDispatch()
	ptrTy := &frontend.Pointer{Pointee: fp32(), AddrSpace: 1}
	x := scalarConst(d, ptrTy, b.GetInt64(0x1000))

	got, err := d.Cast(x, &frontend.Integer{Bits: 1, Sign: kind.Unsigned})
	if err != nil {
		t.Fatalf("Cast ptr->bool: %v", err)
	}
	if !got.Type().IsBool() {
		t.Fatalf("Cast ptr->bool should produce a bool, got %s", got.Type())
	}
	inst, ok := got.IR().(*ir.Inst)
	if !ok || inst.Op != ir.OpICmpNE {
		t.Fatalf("Cast ptr->bool should emit OpICmpNE, got %#v", got.IR())
	}
	// The pointer must have been cast to i64 before the comparison.
	cmpLHS, ok := inst.Operands[0].(*ir.Inst)
	if !ok || cmpLHS.Op != ir.OpPtrToInt {
		t.Fatalf("Cast ptr->bool should first emit OpPtrToInt, got %#v", inst.Operands[0])
	}
}

func TestAtomicMaxFloat(t *testing.T) {
	d, b := newDispatch()
	ptrTy := &frontend.Pointer{Pointee: fp32(), AddrSpace: 0}
	ptr := scalarConst(d, ptrTy, b.GetInt64(0x2000))
	val := scalarConst(d, fp32(), b.GetFloat32(1.5))
	mask := scalarConst(d, &frontend.Integer{Bits: 1, Sign: kind.Unsigned}, b.GetInt1(true))

	got, err := d.AtomicMax(ptr, val, mask)
	if err != nil {
		t.Fatalf("AtomicMax: %v", err)
	}
	if got.Type().String() != "fp32" {
		t.Fatalf("AtomicMax(fp32 ptr) should return fp32, got %s", got.Type())
	}
	inst, ok := got.IR().(*ir.Inst)
	if !ok || inst.Op != ir.OpBitCast {
		t.Fatalf("AtomicMax float should finish with a bitcast back to float, got %#v", got.IR())
	}
	// Underneath: a select over two AtomicRMWs (Max and UMin).
	sel, ok := inst.Operands[0].(*ir.Inst)
	if !ok || sel.Op != ir.OpSelect {
		t.Fatalf("AtomicMax float should merge via select, got %#v", inst.Operands[0])
	}
}

func TestAtomicMaxRejectsFP64(t *testing.T) {
	d, b := newDispatch()
	ptrTy := &frontend.Pointer{Pointee: &frontend.Float{Knd: kind.FP64}, AddrSpace: 0}
	ptr := scalarConst(d, ptrTy, b.GetInt64(0x3000))
	val := scalarConst(d, &frontend.Float{Knd: kind.FP64}, b.GetFloat32(1))
	mask := scalarConst(d, &frontend.Integer{Bits: 1, Sign: kind.Unsigned}, b.GetInt1(true))

	_, err := d.AtomicMax(ptr, val, mask)
	if err == nil || !strings.Contains(err.Error(), "fp32") {
		t.Fatalf("AtomicMax on fp64 pointee should be rejected, got %v", err)
	}
}
