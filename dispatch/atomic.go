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
	"github.com/gx-org/tkdispatch/kind"
)

func (d *Dispatch) simpleRMW(op ir.AtomicRMWOp, ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	elem, v, m, err := d.atomRedTypeChecking(ptr, val, mask)
	if err != nil {
		return nil, err
	}
	resultTy := withBlockShapeOf(ptr, elem)
	inst := d.Builder.CreateAtomicRMW(op, ptr.IR(), v.IR(), m.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// AtomicAdd uses FAdd for a float pointee, Add otherwise.
func (d *Dispatch) AtomicAdd(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	elem, err := pointeeType(ptr)
	if err != nil {
		return nil, err
	}
	if elem.IsFloat() {
		return d.simpleRMW(ir.AtomicFAdd, ptr, val, mask)
	}
	return d.simpleRMW(ir.AtomicAdd, ptr, val, mask)
}

// AtomicAnd, AtomicOr, AtomicXor, AtomicXchg are plain bitwise/exchange RMWs.
func (d *Dispatch) AtomicAnd(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.simpleRMW(ir.AtomicAnd, ptr, val, mask)
}

func (d *Dispatch) AtomicOr(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.simpleRMW(ir.AtomicOr, ptr, val, mask)
}

func (d *Dispatch) AtomicXor(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.simpleRMW(ir.AtomicXor, ptr, val, mask)
}

func (d *Dispatch) AtomicXchg(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.simpleRMW(ir.AtomicXchg, ptr, val, mask)
}

// AtomicMax dispatches to an integer Max/UMax RMW by signedness, or, for a
// float pointee, the int-reinterpret trick: val and ptr are bitcast to
// int32, the non-negative lanes (mask & val>=0) run Max, the negative
// lanes (mask & val<0) run UMin, and the two results are merged with
// where on the sign of val. Single precision only, per the IEEE-754
// layout this relies on (sign-magnitude integer ordering only holds for
// a 32-bit float's bit pattern).
func (d *Dispatch) AtomicMax(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.atomicMinMax(ptr, val, mask, true)
}

// AtomicMin is AtomicMax's mirror: Min/UMax instead of Max/UMin.
func (d *Dispatch) AtomicMin(ptr, val, mask *frontend.Value) (*frontend.Value, error) {
	return d.atomicMinMax(ptr, val, mask, false)
}

func (d *Dispatch) atomicMinMax(ptr, val, mask *frontend.Value, isMax bool) (*frontend.Value, error) {
	elem, err := pointeeType(ptr)
	if err != nil {
		return nil, err
	}
	if elem.IsInteger() {
		integer := elem.(*frontend.Integer)
		var op ir.AtomicRMWOp
		switch {
		case isMax && integer.IsSigned():
			op = ir.AtomicMax
		case isMax && !integer.IsSigned():
			op = ir.AtomicUMax
		case !isMax && integer.IsSigned():
			op = ir.AtomicMin
		default:
			op = ir.AtomicUMin
		}
		return d.simpleRMW(op, ptr, val, mask)
	}
	if f, ok := elem.(*frontend.Float); !ok || f.Knd != kind.FP32 {
		return nil, ierrors.Semantic("atomic_max/atomic_min on a float pointee requires fp32")
	}

	_, v, m, err := d.atomRedTypeChecking(ptr, val, mask)
	if err != nil {
		return nil, err
	}

	i32 := &frontend.Integer{Bits: 32, Sign: kind.Signed}
	iPtr, err := d.BitCast(ptr, withBlockShapeOf(ptr, &frontend.Pointer{Pointee: i32, AddrSpace: ptrAddrSpace(ptr)}))
	if err != nil {
		return nil, err
	}
	iVal, err := d.BitCast(v, withBlockShapeOf(v, i32))
	if err != nil {
		return nil, err
	}

	isNonNeg, err := d.Ge(v, d.splatScalar(d.zeroOfScalarType(elem), blockShape(v)))
	if err != nil {
		return nil, err
	}
	isNeg, err := d.Invert(isNonNeg)
	if err != nil {
		return nil, err
	}

	nonNegMask, err := d.And(m, isNonNeg)
	if err != nil {
		return nil, err
	}
	negMask, err := d.And(m, isNeg)
	if err != nil {
		return nil, err
	}

	posOp, negOp := ir.AtomicMax, ir.AtomicUMin
	if !isMax {
		posOp, negOp = ir.AtomicMin, ir.AtomicUMax
	}

	resultTy := withBlockShapeOf(ptr, i32)
	posInst := d.Builder.CreateAtomicRMW(posOp, iPtr.IR(), iVal.IR(), nonNegMask.IR(), resultTy.IRType())
	posResult := d.value(posInst, resultTy)
	negInst := d.Builder.CreateAtomicRMW(negOp, iPtr.IR(), iVal.IR(), negMask.IR(), resultTy.IRType())
	negResult := d.value(negInst, resultTy)

	selected, err := d.Where(isNonNeg, posResult, negResult)
	if err != nil {
		return nil, err
	}
	return d.BitCast(selected, withBlockShapeOf(ptr, elem))
}

func ptrAddrSpace(ptr *frontend.Value) uint32 {
	p, ok := ptr.Type().ScalarType().(*frontend.Pointer)
	if !ok {
		return 0
	}
	return p.AddrSpace
}
