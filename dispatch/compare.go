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
	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/internal/ierrors"
	"github.com/gx-org/tkdispatch/ir"
)

type irBuilderLike interface {
	CreateFCmpOGT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOGE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOLT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOLE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOEQ(l, r ir.Value, t ir.Type) *ir.Inst
	CreateFCmpUNE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpSGT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpSGE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpSLT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpSLE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpUGT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpUGE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpULT(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpULE(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpEQ(l, r ir.Value, t ir.Type) *ir.Inst
	CreateICmpNE(l, r ir.Value, t ir.Type) *ir.Inst
}

// compare implements the shared shape of gt/ge/lt/le/eq/ne: broadcast,
// promote to a common computation type, then pick the ordered float
// comparison or the signed/unsigned integer comparison. The result's
// FrontendType is a Block-of-bool when the operands are Blocks, else a
// scalar bool.
func (d *Dispatch) compare(lhs, rhs *frontend.Value, fcmp, icmpS, icmpU func(irb irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{arithmeticCheck: true})
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, boolType())
	scalar := lhs.Type().ScalarType()
	if scalar.IsFloat() {
		inst := fcmp(d.Builder, lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	integer, ok := scalar.(*frontend.Integer)
	if !ok {
		return nil, ierrors.Unreachable("compare")
	}
	if integer.IsSigned() {
		inst := icmpS(d.Builder, lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := icmpU(d.Builder, lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Gt implements the > comparison.
func (d *Dispatch) Gt(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpOGT(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpSGT(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpUGT(l, r, t) })
}

// Ge implements the >= comparison.
func (d *Dispatch) Ge(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpOGE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpSGE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpUGE(l, r, t) })
}

// Lt implements the < comparison.
func (d *Dispatch) Lt(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpOLT(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpSLT(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpULT(l, r, t) })
}

// Le implements the <= comparison.
func (d *Dispatch) Le(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpOLE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpSLE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpULE(l, r, t) })
}

// Eq implements the == comparison. Integer equality does not depend on
// signedness, so both signed and unsigned branches emit icmpEQ.
func (d *Dispatch) Eq(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpOEQ(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpEQ(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpEQ(l, r, t) })
}

// Ne implements the != comparison.
func (d *Dispatch) Ne(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.compare(lhs, rhs,
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateFCmpUNE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpNE(l, r, t) },
		func(b irBuilderLike, l, r ir.Value, t ir.Type) *ir.Inst { return b.CreateICmpNE(l, r, t) })
}
