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

// reduce widens an integer input of 32 bits or less to a 32-bit integer
// of the same signedness (a deliberate accuracy/cost trade-off), picks
// the float or integer flavor
// of op, drops the reduced axis from the result shape, and emits the
// reduce instruction.
func (d *Dispatch) reduce(x *frontend.Value, axis int, floatOp, intOp ir.ReduceOp) (*frontend.Value, error) {
	b, ok := x.Type().(*frontend.Block)
	if !ok {
		return nil, ierrors.Semantic("reduce requires a Block operand")
	}
	if axis < 0 || axis >= len(b.Shape) {
		return nil, ierrors.Semantic("reduce: axis %d out of range for rank %d", axis, len(b.Shape))
	}
	elem := b.Elem
	var op ir.ReduceOp
	switch {
	case elem.IsFloat():
		op = floatOp
	case elem.IsInteger():
		op = intOp
		if i := elem.(*frontend.Integer); i.Bits <= 32 {
			var err error
			x, err = d.castScalarOrBlock(x, &frontend.Integer{Bits: 32, Sign: i.Sign})
			if err != nil {
				return nil, err
			}
			elem = x.Type().(*frontend.Block).Elem
		}
	default:
		return nil, ierrors.Unreachable("reduce: non-numeric element type")
	}
	resultShape := append([]uint32(nil), x.Type().(*frontend.Block).Shape...)
	resultShape = append(resultShape[:axis], resultShape[axis+1:]...)
	var resultTy frontend.Type = elem
	if len(resultShape) > 0 {
		resultTy = &frontend.Block{Elem: elem, Shape: resultShape}
	}
	inst := d.Builder.CreateReduce(x.IR(), axis, op, resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// Min reduces along axis with FMIN (float) or MIN (int).
func (d *Dispatch) Min(x *frontend.Value, axis int) (*frontend.Value, error) {
	return d.reduce(x, axis, ir.ReduceFMin, ir.ReduceMin)
}

// Max reduces along axis with FMAX (float) or MAX (int).
func (d *Dispatch) Max(x *frontend.Value, axis int) (*frontend.Value, error) {
	return d.reduce(x, axis, ir.ReduceFMax, ir.ReduceMax)
}

// Sum reduces along axis with FADD (float) or ADD (int).
func (d *Dispatch) Sum(x *frontend.Value, axis int) (*frontend.Value, error) {
	return d.reduce(x, axis, ir.ReduceFAdd, ir.ReduceAdd)
}

// XorSum reduces along axis with XOR; it requires an integer scalar.
func (d *Dispatch) XorSum(x *frontend.Value, axis int) (*frontend.Value, error) {
	b, ok := x.Type().(*frontend.Block)
	if !ok || !b.Elem.IsInteger() {
		return nil, ierrors.Semantic("xor_sum requires an integer Block operand")
	}
	return d.reduce(x, axis, ir.ReduceXor, ir.ReduceXor)
}
