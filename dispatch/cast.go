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
)

// Cast walks the cast ladder documented for the `cast` operation: the
// first matching rule wins. If x is a Block and dst is a scalar type, dst
// is promoted to a Block of x's shape before the ladder runs.
func (d *Dispatch) Cast(x *frontend.Value, dst frontend.Type) (*frontend.Value, error) {
	srcBlock, xIsBlock := x.Type().(*frontend.Block)
	dstScalar := dst
	if dstBlock, ok := dst.(*frontend.Block); ok {
		dstScalar = dstBlock.Elem
	} else if xIsBlock {
		dst = &frontend.Block{Elem: dst, Shape: srcBlock.Shape}
	}
	srcScalar := x.Type().ScalarType()

	if frontend.Equal(srcScalar, dstScalar) {
		return x, nil
	}

	// Order matters: this mirrors the cast matrix's row order, most
	// specific first, with the generic any->bool row last so it only
	// catches what no earlier row already claimed (pointer->bool).
	switch {
	case srcScalar.IsFloat() && dstScalar.IsFloat():
		srcF, dstF := srcScalar.(*frontend.Float), dstScalar.(*frontend.Float)
		if dstF.Knd.MantissaWidth() < srcF.Knd.MantissaWidth() {
			inst := d.Builder.CreateFPTrunc(x.IR(), dst.IRType())
			return d.value(inst, dst), nil
		}
		inst := d.Builder.CreateFPExt(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case srcScalar.IsInteger() && dstScalar.IsInteger():
		srcI := srcScalar.(*frontend.Integer)
		signExtend := srcI.IsSigned()
		inst := d.Builder.CreateIntCast(x.IR(), dst.IRType(), signExtend)
		return d.value(inst, dst), nil
	case srcScalar.IsFloat() && dstScalar.IsInteger():
		if dstScalar.IsBool() {
			inst := d.Builder.CreateFPToUI(x.IR(), dst.IRType())
			return d.value(inst, dst), nil
		}
		inst := d.Builder.CreateFPToSI(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case srcScalar.IsInteger() && dstScalar.IsFloat():
		srcI := srcScalar.(*frontend.Integer)
		if srcI.IsBool() || !srcI.IsSigned() {
			inst := d.Builder.CreateUIToFP(x.IR(), dst.IRType())
			return d.value(inst, dst), nil
		}
		inst := d.Builder.CreateSIToFP(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case srcScalar.IsPointer() && isInt64(dstScalar):
		inst := d.Builder.CreatePtrToInt(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case !srcScalar.IsPointer() && dstScalar.IsPointer():
		inst := d.Builder.CreateIntToPtr(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case srcScalar.IsPointer() && dstScalar.IsPointer():
		inst := d.Builder.CreateBitCast(x.IR(), dst.IRType())
		return d.value(inst, dst), nil
	case dstScalar.IsBool():
		return d.castToBool(x, dst)
	}
	return nil, ierrors.Unreachable("cast " + srcScalar.String() + "->" + dstScalar.String())
}

func isInt64(t frontend.Type) bool {
	i, ok := t.(*frontend.Integer)
	return ok && i.Bits == 64 && !i.IsBool()
}

// castToBool is the ladder's residual bool row, reached only once every
// typed case above has had a chance to claim its own cast (int->bool and
// fp->bool are handled by the int->int and fp->int cases respectively).
// In practice this leaves pointer->bool: the pointer is cast to i64 first,
// then every value is compared not-equal to the zero of its (possibly
// just-produced) integer type.
func (d *Dispatch) castToBool(x *frontend.Value, dstBool frontend.Type) (*frontend.Value, error) {
	scalar := x.Type().ScalarType()
	if scalar.IsPointer() {
		i64 := frontend.Type(&frontend.Integer{Bits: 64, Sign: kind.Signed})
		var err error
		x, err = d.Cast(x, withBlockShapeOf(x, i64))
		if err != nil {
			return nil, err
		}
		scalar = x.Type().ScalarType()
	}
	zero := d.zeroOfScalarType(scalar)
	zero = d.splatScalar(zero, blockShape(x))
	inst := d.Builder.CreateICmpNE(x.IR(), zero.IR(), dstBool.IRType())
	return d.value(inst, dstBool), nil
}

func withBlockShapeOf(x *frontend.Value, scalar frontend.Type) frontend.Type {
	if b, ok := x.Type().(*frontend.Block); ok {
		return &frontend.Block{Elem: scalar, Shape: b.Shape}
	}
	return scalar
}

// BitCast requires matching primitive bit widths; if either side is a
// pointer, it delegates to Cast (which already knows the ptr<->ptr and
// ptr<->int rules).
func (d *Dispatch) BitCast(x *frontend.Value, dst frontend.Type) (*frontend.Value, error) {
	srcScalar := x.Type().ScalarType()
	dstScalar := dst.ScalarType()
	if srcScalar.IsPointer() || dstScalar.IsPointer() {
		return d.Cast(x, dst)
	}
	if bitWidth(srcScalar) != bitWidth(dstScalar) {
		return nil, ierrors.Semantic("bitcast requires matching bit widths (%d vs %d)", bitWidth(srcScalar), bitWidth(dstScalar))
	}
	fullDst := dst
	if b, ok := x.Type().(*frontend.Block); ok {
		fullDst = &frontend.Block{Elem: dstScalar, Shape: b.Shape}
	}
	inst := d.Builder.CreateBitCast(x.IR(), fullDst.IRType())
	return d.value(inst, fullDst), nil
}

func bitWidth(t frontend.Type) int {
	switch v := t.(type) {
	case *frontend.Integer:
		return v.Bits
	case *frontend.Float:
		return floatBits(v.Knd)
	}
	return -1
}

func floatBits(k kind.Float) int {
	switch k {
	case kind.FP8:
		return 8
	case kind.FP16, kind.BF16:
		return 16
	case kind.FP32:
		return 32
	case kind.FP64:
		return 64
	}
	return -1
}
