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

// Package dispatch is the semantic layer between the kernel language's
// block-oriented operators and the typed SSA IR: every exported method on
// Dispatch type-checks its operands, applies the promotion rules in
// package promote, and emits the matching IR instruction through an
// irb.Builder, wrapping the result as a frontend.Value owned by a
// typectx.Context.
package dispatch

import (
	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/internal/ierrors"
	"github.com/gx-org/tkdispatch/ir"
	"github.com/gx-org/tkdispatch/irb"
	"github.com/gx-org/tkdispatch/kind"
	"github.com/gx-org/tkdispatch/promote"
	"github.com/gx-org/tkdispatch/typectx"
)

// Dispatch holds the two collaborators every operation needs: the
// TypeContext that owns FrontendType/FrontendValue storage, and the
// IRBuilder instructions are emitted through. It carries no other state
// and is safe to keep around for the duration of one compilation.
type Dispatch struct {
	Ctx     *typectx.Context
	Builder irb.Builder
}

// New returns a Dispatch bound to the given TypeContext and builder.
func New(ctx *typectx.Context, b irb.Builder) *Dispatch {
	return &Dispatch{Ctx: ctx, Builder: b}
}

func (d *Dispatch) value(inst *ir.Inst, ft frontend.Type) *frontend.Value {
	return d.Ctx.CreateValue(inst, ft)
}

// isBlock reports whether v's FrontendType is a Block.
func isBlock(v *frontend.Value) bool { return v.Type().IsBlock() }

func blockShape(v *frontend.Value) []uint32 {
	b, ok := v.Type().(*frontend.Block)
	if !ok {
		return nil
	}
	return b.Shape
}

// splatScalar broadcasts a scalar value to a Block of the given shape by
// emitting a splat and wrapping the result with a Block FrontendType
// whose element is the scalar's own type.
func (d *Dispatch) splatScalar(v *frontend.Value, shape []uint32) *frontend.Value {
	if isBlock(v) || shape == nil {
		return v
	}
	blockTy := &frontend.Block{Elem: v.Type(), Shape: shape}
	inst := d.Builder.CreateSplat(v.IR(), blockTy.IRType())
	return d.value(inst, blockTy)
}

// broadcastOperands implements step 1 of binary_op_type_checking: two-way
// broadcast so lhs and rhs end up with the same shape (or both scalar).
func (d *Dispatch) broadcastOperands(lhs, rhs *frontend.Value) (*frontend.Value, *frontend.Value, error) {
	lBlock, rBlock := isBlock(lhs), isBlock(rhs)
	switch {
	case !lBlock && !rBlock:
		return lhs, rhs, nil
	case lBlock && !rBlock:
		return lhs, d.splatScalar(rhs, blockShape(lhs)), nil
	case !lBlock && rBlock:
		return d.splatScalar(lhs, blockShape(rhs)), rhs, nil
	default:
		shape, err := promote.BroadcastShapes(blockShape(lhs), blockShape(rhs))
		if err != nil {
			return nil, nil, err
		}
		newLhs, err := d.broadcastBlockTo(lhs, shape)
		if err != nil {
			return nil, nil, err
		}
		newRhs, err := d.broadcastBlockTo(rhs, shape)
		if err != nil {
			return nil, nil, err
		}
		return newLhs, newRhs, nil
	}
}

func (d *Dispatch) broadcastBlockTo(v *frontend.Value, shape []uint32) (*frontend.Value, error) {
	cur := blockShape(v)
	if shapeEqual(cur, shape) {
		return v, nil
	}
	ft := &frontend.Block{Elem: v.Type().ScalarType(), Shape: shape}
	inst := d.Builder.CreateBroadcast(v.IR(), ft.IRType())
	return d.value(inst, ft), nil
}

func shapeEqual(a, b []uint32) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// checkPtrType validates that a pointer operand is only present where the
// caller permits it, and that two pointer operands don't combine into
// a pointer+pointer-of-different-pointee or pointer+float operation.
func checkPtrType(lhs, rhs frontend.Type, allowLHSPtr, allowRHSPtr bool) error {
	lPtr, lIsPtr := lhs.ScalarType().(*frontend.Pointer)
	rPtr, rIsPtr := rhs.ScalarType().(*frontend.Pointer)
	if lIsPtr && !allowLHSPtr {
		return ierrors.Semantic("pointer not allowed on the left-hand side of this operation")
	}
	if rIsPtr && !allowRHSPtr {
		return ierrors.Semantic("pointer not allowed on the right-hand side of this operation")
	}
	if lIsPtr && rIsPtr && !frontend.Equal(lPtr.Pointee, rPtr.Pointee) {
		return ierrors.Semantic("pointer operands have different pointee types")
	}
	if lIsPtr && rhs.ScalarType().IsFloat() {
		return ierrors.Semantic("pointer combined with a floating-point operand")
	}
	if rIsPtr && lhs.ScalarType().IsFloat() {
		return ierrors.Semantic("pointer combined with a floating-point operand")
	}
	return nil
}

// binOpOpts mirrors binary_op_type_checking's shared preamble. arithmeticCheck
// enables the computation_type cast when neither side is a pointer.
type binOpOpts struct {
	allowLHSPtr, allowRHSPtr bool
	arithmeticCheck          bool
	divOrMod                 promote.DivOrMod
}

// binaryOpTypeChecking broadcasts, validates pointer usage, and (when
// arithmeticCheck is set and neither side is a pointer) casts both
// operands to their common computation type.
func (d *Dispatch) binaryOpTypeChecking(lhs, rhs *frontend.Value, opts binOpOpts) (*frontend.Value, *frontend.Value, error) {
	lhs, rhs, err := d.broadcastOperands(lhs, rhs)
	if err != nil {
		return nil, nil, err
	}
	if err := checkPtrType(lhs.Type(), rhs.Type(), opts.allowLHSPtr, opts.allowRHSPtr); err != nil {
		return nil, nil, err
	}
	lPtr := lhs.Type().ScalarType().IsPointer()
	rPtr := rhs.Type().ScalarType().IsPointer()
	if opts.arithmeticCheck && !lPtr && !rPtr {
		compTy, err := promote.ComputationType(lhs.Type().ScalarType(), rhs.Type().ScalarType(), opts.divOrMod)
		if err != nil {
			return nil, nil, err
		}
		lhs, err = d.castScalarOrBlock(lhs, compTy)
		if err != nil {
			return nil, nil, err
		}
		rhs, err = d.castScalarOrBlock(rhs, compTy)
		if err != nil {
			return nil, nil, err
		}
	}
	return lhs, rhs, nil
}

// castScalarOrBlock casts v's scalar element to dstScalar, preserving v's
// Block shape if it has one.
func (d *Dispatch) castScalarOrBlock(v *frontend.Value, dstScalar frontend.Type) (*frontend.Value, error) {
	dst := dstScalar
	if b, ok := v.Type().(*frontend.Block); ok {
		dst = &frontend.Block{Elem: dstScalar, Shape: b.Shape}
	}
	return d.Cast(v, dst)
}

// resultElemType computes the FrontendType of a binary op's result: elemTy
// wrapped as a Block of lhs's shape if lhs is a Block, else of rhs's shape
// if rhs is a Block, else elemTy itself.
func resultElemType(lhs, rhs *frontend.Value, elemTy frontend.Type) frontend.Type {
	if b, ok := lhs.Type().(*frontend.Block); ok {
		return &frontend.Block{Elem: elemTy, Shape: b.Shape}
	}
	if b, ok := rhs.Type().(*frontend.Block); ok {
		return &frontend.Block{Elem: elemTy, Shape: b.Shape}
	}
	return elemTy
}

func boolType() *frontend.Integer { return &frontend.Integer{Bits: 1, Sign: kind.Unsigned} }
