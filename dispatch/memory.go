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

// pointeeType returns the element type a pointer points to, reinterpreting
// a bool pointee as int8 -- the IR has no native i1 load/store, so bool
// memory traffic always happens through an int8 lane.
func pointeeType(ptr *frontend.Value) (frontend.Type, error) {
	scalar := ptr.Type().ScalarType()
	p, ok := scalar.(*frontend.Pointer)
	if !ok {
		return nil, ierrors.Semantic("expected a pointer operand")
	}
	if p.Pointee.IsBool() {
		return &frontend.Integer{Bits: 8, Sign: kind.Unsigned}, nil
	}
	return p.Pointee, nil
}

// reinterpretPointer bitcasts ptr so its declared pointee matches elem,
// shape-preserved if ptr is a Block of pointers. This is how a bool
// pointee's int8 memory lane (see pointeeType) gets an operand pointer
// of the matching type: a load/store of *i1 has no direct encoding, so
// the pointer itself has to be retyped to *i8 before it's used.
func (d *Dispatch) reinterpretPointer(ptr *frontend.Value, elem frontend.Type) (*frontend.Value, error) {
	p := ptr.Type().ScalarType().(*frontend.Pointer)
	if frontend.Equal(p.Pointee, elem) {
		return ptr, nil
	}
	return d.BitCast(ptr, withBlockShapeOf(ptr, &frontend.Pointer{Pointee: elem, AddrSpace: p.AddrSpace}))
}

// Load implements load(ptr, mask?, other?, cache_modifier, is_volatile).
func (d *Dispatch) Load(ptr *frontend.Value, mask, other *frontend.Value, cacheModifier string, isVolatile bool) (*frontend.Value, error) {
	cache, ok := ir.ParseCacheModifier(cacheModifier)
	if !ok {
		return nil, ierrors.Semantic("unrecognized cache modifier %q", cacheModifier)
	}
	elem, err := pointeeType(ptr)
	if err != nil {
		return nil, err
	}
	ptr, err = d.reinterpretPointer(ptr, elem)
	if err != nil {
		return nil, err
	}
	if other != nil && mask == nil {
		return nil, ierrors.Semantic("load: other given without mask")
	}
	resultTy := withBlockShapeOf(ptr, elem)
	if mask == nil {
		inst := d.Builder.CreateLoad(ptr.IR(), resultTy.IRType(), cache, isVolatile)
		return d.value(inst, resultTy), nil
	}
	shape := blockShape(ptr)
	mask = d.splatScalar(mask, shape)
	var otherVal *frontend.Value
	if other != nil {
		otherVal, err = d.castScalarOrBlock(other, elem)
		if err != nil {
			return nil, err
		}
		otherVal = d.splatScalar(otherVal, shape)
	} else {
		u := d.Ctx.CreateValue(&ir.Undef{Typ: elem.IRType()}, elem)
		otherVal = d.splatScalar(u, shape)
	}
	inst := d.Builder.CreateMaskedLoad(ptr.IR(), mask.IR(), otherVal.IR(), resultTy.IRType(), cache, isVolatile)
	return d.value(inst, resultTy), nil
}

// Store implements store(ptr, val, mask?).
func (d *Dispatch) Store(ptr, val *frontend.Value, mask *frontend.Value) (*frontend.Value, error) {
	elem, err := pointeeType(ptr)
	if err != nil {
		return nil, err
	}
	shape := blockShape(ptr)
	val, err = d.castScalarOrBlock(val, elem)
	if err != nil {
		return nil, err
	}
	val = d.splatScalar(val, shape)
	ptr, err = d.reinterpretPointer(ptr, elem)
	if err != nil {
		return nil, err
	}
	voidTy := &frontend.Void{}
	if mask == nil {
		inst := d.Builder.CreateStore(ptr.IR(), val.IR())
		return d.value(inst, voidTy), nil
	}
	if !mask.Type().ScalarType().IsBool() {
		return nil, ierrors.Semantic("store: mask must be boolean")
	}
	mask = d.splatScalar(mask, shape)
	inst := d.Builder.CreateMaskedStore(ptr.IR(), val.IR(), mask.IR())
	return d.value(inst, voidTy), nil
}

// AtomicCAS implements atomic_cas(ptr, cmp, val) with a direct emit.
func (d *Dispatch) AtomicCAS(ptr, cmp, val *frontend.Value) (*frontend.Value, error) {
	elem, err := pointeeType(ptr)
	if err != nil {
		return nil, err
	}
	resultTy := withBlockShapeOf(ptr, elem)
	inst := d.Builder.CreateAtomicCAS(ptr.IR(), cmp.IR(), val.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}

// atomRedTypeChecking is the shared preamble for every RMW: broadcast val
// and mask to ptr's Block shape, cast val to the pointee type, and
// materialize an all-true mask (splat if ptr is a Block) when the caller
// didn't supply one.
func (d *Dispatch) atomRedTypeChecking(ptr, val, mask *frontend.Value) (elem frontend.Type, v, m *frontend.Value, err error) {
	elem, err = pointeeType(ptr)
	if err != nil {
		return nil, nil, nil, err
	}
	shape := blockShape(ptr)
	v, err = d.castScalarOrBlock(val, elem)
	if err != nil {
		return nil, nil, nil, err
	}
	v = d.splatScalar(v, shape)
	if mask == nil {
		allTrue := d.Ctx.CreateValue(&ir.Constant{Typ: ir.Int(1), Bits: 1}, boolType())
		m = d.splatScalar(allTrue, shape)
	} else {
		m = d.splatScalar(mask, shape)
	}
	return elem, v, m, nil
}
