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

// Package ir is the typed SSA intermediate representation that the
// dispatch and inliner layers target. It has no notion of signedness --
// that is added by the frontend package -- and no notion of source
// position, since parsing and AST construction are out of scope for this
// layer.
package ir

import (
	"fmt"

	"github.com/gx-org/tkdispatch/kind"
)

// FloatKind is the floating-point format of a FloatType.
type FloatKind = kind.Float

// Type is the IR-level type of a value. Void, label, metadata, token,
// float and integer types are interned, so two of them describing the
// same type are ==; pointer, function and block types are built fresh
// each time and are compared structurally with TypesEqual.
type Type interface {
	// String returns a human-readable representation, used in error messages.
	String() string

	node()
}

type base struct{}

func (base) node() {}

// VoidType is the type of instructions that produce no value (store, barrier).
type VoidType struct{ base }

func (VoidType) String() string { return "void" }

// LabelType is the type of a basic block reference.
type LabelType struct{ base }

func (LabelType) String() string { return "label" }

// MetadataType is the type of compiler-internal metadata tags.
type MetadataType struct{ base }

func (MetadataType) String() string { return "metadata" }

// TokenType is the type of opaque compiler tokens (e.g. barrier handles).
type TokenType struct{ base }

func (TokenType) String() string { return "token" }

// FloatType is a floating-point scalar of a given format.
type FloatType struct {
	base
	Knd FloatKind
}

func (t *FloatType) String() string { return t.Knd.String() }

// IntType is an integer scalar of a given bit width. Signedness is not
// part of the IR type; it lives in the frontend's FrontendType.
type IntType struct {
	base
	Bits int
}

func (t *IntType) String() string { return fmt.Sprintf("i%d", t.Bits) }

// PointerType is a pointer to a scalar or Block element in an address space.
type PointerType struct {
	base
	Elem      Type
	AddrSpace uint32
}

func (t *PointerType) String() string {
	return fmt.Sprintf("%s*(%d)", t.Elem, t.AddrSpace)
}

// FunctionType is the signature of a function.
type FunctionType struct {
	base
	Return Type
	Params []Type
}

func (t *FunctionType) String() string {
	s := "("
	for i, p := range t.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + t.Return.String()
}

// BlockType is a compile-time-shaped bundle of scalar elements; Elem must
// not itself be a BlockType.
type BlockType struct {
	base
	Elem  Type
	Shape []uint32
}

func (t *BlockType) String() string {
	s := "<"
	for i, d := range t.Shape {
		if i > 0 {
			s += "x"
		}
		s += fmt.Sprintf("%d", d)
	}
	return s + "x" + t.Elem.String() + ">"
}
