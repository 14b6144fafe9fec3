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
	"github.com/gx-org/tkdispatch/ir"
)

type mathEmit func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst

func (d *Dispatch) math(x *frontend.Value, emit mathEmit) (*frontend.Value, error) {
	inst := emit(d, x.IR(), x.Type().IRType())
	return d.value(inst, x.Type()), nil
}

// Exp emits the exponential intrinsic; the result type equals the input type.
func (d *Dispatch) Exp(x *frontend.Value) (*frontend.Value, error) {
	return d.math(x, func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst { return b.Builder.CreateExp(v, t) })
}

// Log emits the natural logarithm intrinsic.
func (d *Dispatch) Log(x *frontend.Value) (*frontend.Value, error) {
	return d.math(x, func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst { return b.Builder.CreateLog(v, t) })
}

// Cos emits the cosine intrinsic.
func (d *Dispatch) Cos(x *frontend.Value) (*frontend.Value, error) {
	return d.math(x, func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst { return b.Builder.CreateCos(v, t) })
}

// Sin emits the sine intrinsic.
func (d *Dispatch) Sin(x *frontend.Value) (*frontend.Value, error) {
	return d.math(x, func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst { return b.Builder.CreateSin(v, t) })
}

// Sqrt emits the square root intrinsic.
func (d *Dispatch) Sqrt(x *frontend.Value) (*frontend.Value, error) {
	return d.math(x, func(b *Dispatch, v ir.Value, t ir.Type) *ir.Inst { return b.Builder.CreateSqrt(v, t) })
}

// UMulHi computes the high half of an unsigned widening multiply; it
// shares the binary type-checking preamble (broadcast + promote) with the
// arithmetic operators, but has no dedicated IR opcode constant beyond
// OpUMulHi.
func (d *Dispatch) UMulHi(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{arithmeticCheck: true})
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	inst := d.Builder.Insert(&ir.Inst{Op: ir.OpUMulHi, Typ: resultTy.IRType(), Operands: []ir.Value{lhs.IR(), rhs.IR()}})
	return d.value(inst, resultTy), nil
}
