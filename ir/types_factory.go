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

package ir

import "github.com/gx-org/tkdispatch/kind"

// Atomic, shapeless types are singletons: their identity is their value,
// so equality by == works without an interning context.
var (
	voidT     = &VoidType{}
	labelT    = &LabelType{}
	metadataT = &MetadataType{}
	tokenT    = &TokenType{}
)

// Void returns the void type.
func Void() Type { return voidT }

// Label returns the basic-block-reference type.
func Label() Type { return labelT }

// Metadata returns the metadata type.
func Metadata() Type { return metadataT }

// Token returns the opaque token type.
func Token() Type { return tokenT }

var floatTypes = map[kind.Float]*FloatType{
	kind.FP8:  {Knd: kind.FP8},
	kind.FP16: {Knd: kind.FP16},
	kind.BF16: {Knd: kind.BF16},
	kind.FP32: {Knd: kind.FP32},
	kind.FP64: {Knd: kind.FP64},
}

// Float returns the (interned) float type of the given kind.
func Float(k kind.Float) *FloatType { return floatTypes[k] }

var intTypes = map[int]*IntType{
	1:   {Bits: 1},
	8:   {Bits: 8},
	16:  {Bits: 16},
	32:  {Bits: 32},
	64:  {Bits: 64},
	128: {Bits: 128},
}

// Int returns the (interned) integer type of the given bit width.
// Panics if bits is not one of the widths supported by the IR
// (1, 8, 16, 32, 64, 128).
func Int(bits int) *IntType {
	t, ok := intTypes[bits]
	if !ok {
		panic("ir: unsupported integer bit width")
	}
	return t
}

// Pointer returns a pointer type to elem in the given address space.
// Pointer types are not interned (the teacher's equivalent block/pointer
// type factories return fresh structural instances too); FrontendType
// equality is defined structurally, not by identity, for composite types.
func Pointer(elem Type, addrSpace uint32) *PointerType {
	return &PointerType{Elem: elem, AddrSpace: addrSpace}
}

// FuncType returns a function type.
func FuncType(ret Type, params ...Type) *FunctionType {
	return &FunctionType{Return: ret, Params: params}
}

// Block returns a block (tile) type. elem must not itself be a BlockType.
func Block(elem Type, shape []uint32) *BlockType {
	if _, ok := elem.(*BlockType); ok {
		panic("ir: block element type must be scalar")
	}
	return &BlockType{Elem: elem, Shape: shape}
}

// TypesEqual reports whether two IR types have the same structure.
func TypesEqual(a, b Type) bool {
	switch at := a.(type) {
	case *VoidType, *LabelType, *MetadataType, *TokenType:
		return a == b
	case *FloatType:
		bt, ok := b.(*FloatType)
		return ok && at.Knd == bt.Knd
	case *IntType:
		bt, ok := b.(*IntType)
		return ok && at.Bits == bt.Bits
	case *PointerType:
		bt, ok := b.(*PointerType)
		return ok && at.AddrSpace == bt.AddrSpace && TypesEqual(at.Elem, bt.Elem)
	case *FunctionType:
		bt, ok := b.(*FunctionType)
		if !ok || len(at.Params) != len(bt.Params) || !TypesEqual(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !TypesEqual(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	case *BlockType:
		bt, ok := b.(*BlockType)
		if !ok || len(at.Shape) != len(bt.Shape) || !TypesEqual(at.Elem, bt.Elem) {
			return false
		}
		for i := range at.Shape {
			if at.Shape[i] != bt.Shape[i] {
				return false
			}
		}
		return true
	}
	return false
}
