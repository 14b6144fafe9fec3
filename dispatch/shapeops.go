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
	"github.com/gx-org/tkdispatch/promote"
)

// Reshape returns x reinterpreted with a new shape; the element counts of
// the old and new shapes must match.
func (d *Dispatch) Reshape(x *frontend.Value, shape []uint32) (*frontend.Value, error) {
	b, ok := x.Type().(*frontend.Block)
	if !ok {
		return nil, ierrors.Semantic("reshape requires a Block operand")
	}
	if numElements(b.Shape) != numElements(shape) {
		return nil, ierrors.Semantic("reshape: element count mismatch (%d vs %d)", numElements(b.Shape), numElements(shape))
	}
	ft := &frontend.Block{Elem: b.Elem, Shape: shape}
	inst := d.Builder.CreateReshape(x.IR(), ft.IRType())
	return d.value(inst, ft), nil
}

func numElements(shape []uint32) uint64 {
	n := uint64(1)
	for _, d := range shape {
		n *= uint64(d)
	}
	return n
}

// Cat concatenates two Blocks along the IR-defined axis.
func (d *Dispatch) Cat(lhs, rhs *frontend.Value) (*frontend.Value, error) {
	lb, lok := lhs.Type().(*frontend.Block)
	rb, rok := rhs.Type().(*frontend.Block)
	if !lok || !rok {
		return nil, ierrors.Semantic("cat requires two Block operands")
	}
	if !frontend.Equal(lb.Elem, rb.Elem) {
		return nil, ierrors.Semantic("cat: element type mismatch")
	}
	ft := &frontend.Block{Elem: lb.Elem, Shape: catShape(lb.Shape, rb.Shape)}
	inst := d.Builder.CreateCat(lhs.IR(), rhs.IR(), ft.IRType())
	return d.value(inst, ft), nil
}

// catShape concatenates along the last axis, the convention the IR
// builder's create_cat follows.
func catShape(a, b []uint32) []uint32 {
	out := append([]uint32(nil), a...)
	if len(out) == 0 {
		return out
	}
	out[len(out)-1] += b[len(b)-1]
	return out
}

// BroadcastTo is the unary broadcast: a scalar is splat to shape; a Block
// of equal shape is returned unchanged; a Block of a different rank is an
// error; otherwise a broadcast is emitted.
func (d *Dispatch) BroadcastTo(x *frontend.Value, shape []uint32) (*frontend.Value, error) {
	if !isBlock(x) {
		return d.splatScalar(x, shape), nil
	}
	cur := blockShape(x)
	if len(cur) != len(shape) {
		return nil, ierrors.Semantic("broadcast: rank mismatch (%d vs %d)", len(cur), len(shape))
	}
	if shapeEqual(cur, shape) {
		return x, nil
	}
	return d.broadcastBlockTo(x, shape)
}

// BroadcastPair is the binary broadcast: a scalar side is splat to the
// other side's shape; two Block sides are reconciled via
// promote.BroadcastShapes with a broadcast emitted on whichever side
// doesn't already match the result shape.
func (d *Dispatch) BroadcastPair(lhs, rhs *frontend.Value) (*frontend.Value, *frontend.Value, error) {
	lBlock, rBlock := isBlock(lhs), isBlock(rhs)
	switch {
	case lBlock && !rBlock:
		return lhs, d.splatScalar(rhs, blockShape(lhs)), nil
	case !lBlock && rBlock:
		return d.splatScalar(lhs, blockShape(rhs)), rhs, nil
	case lBlock && rBlock:
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
	default:
		return lhs, rhs, nil
	}
}
