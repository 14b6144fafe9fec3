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

// Plus is a no-op; it returns x unchanged.
func (d *Dispatch) Plus(x *frontend.Value) (*frontend.Value, error) {
	return x, nil
}

// Minus rejects a pointer operand and otherwise emits sub(0, x).
func (d *Dispatch) Minus(x *frontend.Value) (*frontend.Value, error) {
	if x.Type().ScalarType().IsPointer() {
		return nil, ierrors.Semantic("unary minus on a pointer operand")
	}
	return d.negate(x)
}

// negate computes 0 - x without the pointer check Minus performs, so Sub
// can reuse it to negate an already-validated integer/float offset.
func (d *Dispatch) negate(x *frontend.Value) (*frontend.Value, error) {
	zero := d.zeroOfScalarType(x.Type().ScalarType())
	zero = d.splatScalar(zero, blockShape(x))
	scalar := x.Type().ScalarType()
	resultTy := resultElemType(x, x, scalar)
	if scalar.IsFloat() {
		inst := d.Builder.CreateFSub(zero.IR(), x.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateSub(zero.IR(), x.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Invert rejects a pointer or float operand and otherwise emits
// xor(x, all_ones_of_scalar_type).
func (d *Dispatch) Invert(x *frontend.Value) (*frontend.Value, error) {
	scalar := x.Type().ScalarType()
	if scalar.IsPointer() {
		return nil, ierrors.Semantic("bitwise invert on a pointer operand")
	}
	if scalar.IsFloat() {
		return nil, ierrors.Semantic("bitwise invert on a floating-point operand")
	}
	ones := d.allOnesOfScalarType(scalar)
	ones = d.splatScalar(ones, blockShape(x))
	resultTy := resultElemType(x, x, scalar)
	inst := d.Builder.CreateXor(x.IR(), ones.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

func (d *Dispatch) zeroOfScalarType(t frontend.Type) *frontend.Value {
	return d.Ctx.CreateValue(ir.NullValue(t.IRType()), t)
}

func (d *Dispatch) allOnesOfScalarType(t frontend.Type) *frontend.Value {
	return d.Ctx.CreateValue(ir.AllOnesValue(t.IRType()), t)
}
