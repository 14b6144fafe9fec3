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
	"github.com/gx-org/tkdispatch/promote"
)

type bitwiseOp func(b *Dispatch, lhs, rhs ir.Value, t ir.Type) *ir.Inst

func (d *Dispatch) bitwise(name string, lhs, rhs *frontend.Value, emit bitwiseOp) (*frontend.Value, error) {
	lhs, rhs, err := d.broadcastOperands(lhs, rhs)
	if err != nil {
		return nil, err
	}
	if !lhs.Type().ScalarType().IsInteger() || !rhs.Type().ScalarType().IsInteger() {
		return nil, ierrors.Semantic("%s requires integer operands", name)
	}
	common, err := promote.IntegerPromote(lhs.Type().ScalarType(), rhs.Type().ScalarType())
	if err != nil {
		return nil, err
	}
	lhs, err = d.castScalarOrBlock(lhs, common)
	if err != nil {
		return nil, err
	}
	rhs, err = d.castScalarOrBlock(rhs, common)
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, common)
	inst := emit(d, lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// And emits a bitwise and of two integer (or integer Block) operands.
func (d *Dispatch) And(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.bitwise("and", lhs, rhs, func(b *Dispatch, l, r ir.Value, t ir.Type) *ir.Inst {
		return b.Builder.CreateAnd(l, r, t)
	})
}

// Or emits a bitwise or of two integer (or integer Block) operands.
func (d *Dispatch) Or(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.bitwise("or", lhs, rhs, func(b *Dispatch, l, r ir.Value, t ir.Type) *ir.Inst {
		return b.Builder.CreateOr(l, r, t)
	})
}

// Xor emits a bitwise xor of two integer (or integer Block) operands.
func (d *Dispatch) Xor(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.bitwise("xor", lhs, rhs, func(b *Dispatch, l, r ir.Value, t ir.Type) *ir.Inst {
		return b.Builder.CreateXor(l, r, t)
	})
}

// Shl emits a left shift. The shift amount is not separately range
// checked; out-of-range behavior follows the IR builder's semantics.
func (d *Dispatch) Shl(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.bitwise("shl", lhs, rhs, func(b *Dispatch, l, r ir.Value, t ir.Type) *ir.Inst {
		return b.Builder.CreateShl(l, r, t)
	})
}

// LShr emits a logical right shift.
func (d *Dispatch) LShr(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	return d.bitwise("lshr", lhs, rhs, func(b *Dispatch, l, r ir.Value, t ir.Type) *ir.Inst {
		return b.Builder.CreateLShr(l, r, t)
	})
}
