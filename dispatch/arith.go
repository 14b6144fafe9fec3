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
	"github.com/gx-org/tkdispatch/kind"
	"github.com/gx-org/tkdispatch/promote"
)

// Add canonicalizes a pointer operand to lhs, then emits a GEP for
// pointer+integer or the matching fadd/add otherwise.
func (d *Dispatch) Add(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{
		allowLHSPtr: true, allowRHSPtr: true, arithmeticCheck: true,
	})
	if err != nil {
		return nil, err
	}
	if rhs.Type().ScalarType().IsPointer() && !lhs.Type().ScalarType().IsPointer() {
		lhs, rhs = rhs, lhs
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	if lhs.Type().ScalarType().IsPointer() {
		resultTy = resultElemType(lhs, rhs, lhs.Type().ScalarType())
		inst := d.Builder.CreateGEP(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	if lhs.Type().ScalarType().IsFloat() {
		resultTy = resultElemType(lhs, rhs, lhs.Type().ScalarType())
		inst := d.Builder.CreateFAdd(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateAdd(lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Sub only allows a pointer on lhs (pointer subtraction is not
// commutative); ptr-int emits a GEP with the negated offset.
func (d *Dispatch) Sub(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{
		allowLHSPtr: true, allowRHSPtr: false, arithmeticCheck: true,
	})
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	if lhs.Type().ScalarType().IsPointer() {
		negRhs, err := d.negate(rhs)
		if err != nil {
			return nil, err
		}
		inst := d.Builder.CreateGEP(lhs.IR(), negRhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	if lhs.Type().ScalarType().IsFloat() {
		inst := d.Builder.CreateFSub(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateSub(lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Mul emits fmul for float operands, imul for integer operands.
func (d *Dispatch) Mul(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{arithmeticCheck: true})
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	if lhs.Type().ScalarType().IsFloat() {
		inst := d.Builder.CreateFMul(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateMul(lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Mod emits frem for float operands; for integers, srem or urem by
// signedness, rejecting mixed signedness.
func (d *Dispatch) Mod(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{arithmeticCheck: true, divOrMod: promote.Yes})
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	scalar := lhs.Type().ScalarType()
	if scalar.IsFloat() {
		inst := d.Builder.CreateFRem(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	integer, ok := scalar.(*frontend.Integer)
	if !ok {
		return nil, ierrors.Unreachable("mod")
	}
	if integer.IsSigned() {
		inst := d.Builder.CreateSRem(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateURem(lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// TrueDiv always computes in a floating-point type: int/int promotes to
// fp32, mixed int/fp casts the int side to the float side's type, fp/fp
// promotes to the widest-mantissa float. It then emits fdiv with the
// IEEE-rounding flag left at its default (false).
func (d *Dispatch) TrueDiv(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{})
	if err != nil {
		return nil, err
	}
	lScalar, rScalar := lhs.Type().ScalarType(), rhs.Type().ScalarType()
	var dstScalar frontend.Type
	switch {
	case lScalar.IsInteger() && rScalar.IsInteger():
		dstScalar = &frontend.Float{Knd: kind.FP32}
	case lScalar.IsFloat() && rScalar.IsFloat():
		dstScalar = widestMantissa(lScalar.(*frontend.Float), rScalar.(*frontend.Float))
	case lScalar.IsFloat():
		dstScalar = lScalar
	case rScalar.IsFloat():
		dstScalar = rScalar
	default:
		return nil, ierrors.Unreachable("truediv")
	}
	lhs, err = d.castScalarOrBlock(lhs, dstScalar)
	if err != nil {
		return nil, err
	}
	rhs, err = d.castScalarOrBlock(rhs, dstScalar)
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(lhs, rhs, dstScalar)
	inst := d.Builder.CreateFDiv(lhs.IR(), rhs.IR(), resultTy.IRType(), false)
	return d.value(inst, resultTy), nil
}

func widestMantissa(a, b *frontend.Float) frontend.Type {
	if a.Knd.MantissaWidth() >= b.Knd.MantissaWidth() {
		return a
	}
	return b
}

// FloorDiv is integer-only: sdiv or udiv by the promoted signedness.
func (d *Dispatch) FloorDiv(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{arithmeticCheck: true, divOrMod: promote.Yes})
	if err != nil {
		return nil, err
	}
	integer, ok := lhs.Type().ScalarType().(*frontend.Integer)
	if !ok {
		return nil, ierrors.Unreachable("floordiv")
	}
	resultTy := resultElemType(lhs, rhs, integer)
	if integer.IsSigned() {
		inst := d.Builder.CreateSDiv(lhs.IR(), rhs.IR(), resultTy.IRType())
		return d.value(inst, resultTy), nil
	}
	inst := d.Builder.CreateUDiv(lhs.IR(), rhs.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// FDiv requires both operands to already be float; it skips the
// computation_type recast that TrueDiv applies and instead annotates the
// emitted fdiv with the caller-supplied IEEE-rounding flag.
func (d *Dispatch) FDiv(lhs, rhs *frontend.Value, ieeeRounding bool) (*frontend.Value, error) {
	lhs, rhs, err := d.binaryOpTypeChecking(lhs, rhs, binOpOpts{})
	if err != nil {
		return nil, err
	}
	if !lhs.Type().ScalarType().IsFloat() || !rhs.Type().ScalarType().IsFloat() {
		return nil, ierrors.Semantic("fdiv requires both operands to be floating-point")
	}
	resultTy := resultElemType(lhs, rhs, lhs.Type().ScalarType())
	inst := d.Builder.CreateFDiv(lhs.IR(), rhs.IR(), resultTy.IRType(), ieeeRounding)
	return d.value(inst, resultTy), nil
}
