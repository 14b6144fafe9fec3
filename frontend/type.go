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

// Package frontend defines the frontend-level type and value: a FrontendType
// adds the signedness semantics the IR lacks, and a FrontendValue pairs an
// IR value handle with its FrontendType. Both are owned by a TypeContext
// (package typectx) and are never mutated once constructed.
package frontend

import (
	"fmt"

	"github.com/gx-org/tkdispatch/ir"
	"github.com/gx-org/tkdispatch/kind"
)

// Type is a frontend-level type: scalar and composite types with
// signedness. It is implemented as a tagged-variant sum -- one Go type per
// variant -- so Dispatch can drive its branching with ordinary type
// switches rather than a discriminant field.
type Type interface {
	// IRType returns the single IR type backing this FrontendType.
	IRType() ir.Type

	// String returns a human-readable representation for error messages.
	String() string

	// ScalarType returns the element type if this is a Block, else itself.
	ScalarType() Type

	// IsBlock reports whether this is a Block (tile) type.
	IsBlock() bool

	// IsPointer reports whether the scalar type is a Pointer.
	IsPointer() bool

	// IsFloat reports whether the scalar type is a floating-point type.
	IsFloat() bool

	// IsInteger reports whether the scalar type is an Integer (includes bool).
	IsInteger() bool

	// IsBool reports whether the scalar type is Integer(1, Unsigned).
	IsBool() bool

	// Signedness returns the signedness of an Integer scalar type (for a
	// Block, of its element), and kind.Unsigned for every other type (so
	// callers that only care about
	// propagating signedness through shape-only ops don't need a
	// type switch of their own).
	Signedness() kind.Signedness

	typeNode()
}

type base struct{}

func (base) typeNode() {}
func (base) IsBlock() bool             { return false }
func (base) IsPointer() bool           { return false }
func (base) IsFloat() bool             { return false }
func (base) IsInteger() bool           { return false }
func (base) IsBool() bool              { return false }
func (base) Signedness() kind.Signedness { return kind.Unsigned }

// Void is the type of an operation that produces no value.
type Void struct{ base }

func (*Void) IRType() ir.Type    { return ir.Void() }
func (*Void) String() string     { return "void" }
func (v *Void) ScalarType() Type { return v }

// Label is the type of a basic block reference.
type Label struct{ base }

func (*Label) IRType() ir.Type    { return ir.Label() }
func (*Label) String() string     { return "label" }
func (l *Label) ScalarType() Type { return l }

// Metadata is the type of a compiler-internal metadata tag.
type Metadata struct{ base }

func (*Metadata) IRType() ir.Type    { return ir.Metadata() }
func (*Metadata) String() string     { return "metadata" }
func (m *Metadata) ScalarType() Type { return m }

// Token is the type of an opaque compiler token.
type Token struct{ base }

func (*Token) IRType() ir.Type    { return ir.Token() }
func (*Token) String() string     { return "token" }
func (t *Token) ScalarType() Type { return t }

// Float is a floating-point scalar.
type Float struct {
	base
	Knd kind.Float
}

func (f *Float) IRType() ir.Type     { return ir.Float(f.Knd) }
func (f *Float) String() string      { return f.Knd.String() }
func (f *Float) ScalarType() Type    { return f }
func (*Float) IsFloat() bool         { return true }

// Integer is an integer scalar with explicit signedness. Bool is
// represented as Integer{Bits: 1, Sign: kind.Unsigned}.
type Integer struct {
	base
	Bits int
	Sign kind.Signedness
}

func (i *Integer) IRType() ir.Type { return ir.Int(i.Bits) }

func (i *Integer) String() string {
	if i.IsBool() {
		return "bool"
	}
	prefix := "i"
	if i.Sign == kind.Unsigned {
		prefix = "u"
	}
	return fmt.Sprintf("%s%d", prefix, i.Bits)
}

func (i *Integer) ScalarType() Type         { return i }
func (*Integer) IsInteger() bool            { return true }
func (i *Integer) IsBool() bool             { return i.Bits == 1 }
func (i *Integer) Signedness() kind.Signedness { return i.Sign }

// IsSigned reports whether the integer is signed and is not bool (bool is
// defined as unsigned per the data model; mirrors the original `!is_bool`
// guard used throughout the cast matrix).
func (i *Integer) IsSigned() bool { return i.Sign == kind.Signed && !i.IsBool() }

// Pointer is a pointer to a scalar or Block element in an address space.
type Pointer struct {
	base
	Pointee   Type
	AddrSpace uint32
}

func (p *Pointer) IRType() ir.Type { return ir.Pointer(p.Pointee.IRType(), p.AddrSpace) }
func (p *Pointer) String() string  { return p.Pointee.String() + "*" }
func (p *Pointer) ScalarType() Type { return p }
func (*Pointer) IsPointer() bool   { return true }

// Function is the signature of a callable.
type Function struct {
	base
	Return Type
	Params []Type
}

func (f *Function) IRType() ir.Type {
	params := make([]ir.Type, len(f.Params))
	for i, p := range f.Params {
		params[i] = p.IRType()
	}
	return ir.FuncType(f.Return.IRType(), params...)
}

func (f *Function) String() string {
	s := "("
	for i, p := range f.Params {
		if i > 0 {
			s += ", "
		}
		s += p.String()
	}
	return s + ") -> " + f.Return.String()
}
func (f *Function) ScalarType() Type { return f }

// Block is a compile-time-shaped tile of scalar elements. Elem must be a
// scalar type (never another Block); Shape has rank >= 1.
type Block struct {
	base
	Elem  Type
	Shape []uint32
}

func (b *Block) IRType() ir.Type { return ir.Block(b.Elem.IRType(), b.Shape) }

func (b *Block) String() string {
	s := "<"
	for i, d := range b.Shape {
		if i > 0 {
			s += "x"
		}
		s += fmt.Sprintf("%d", d)
	}
	return s + "x" + b.Elem.String() + ">"
}

func (b *Block) ScalarType() Type            { return b.Elem }
func (*Block) IsBlock() bool                 { return true }
func (b *Block) IsPointer() bool             { return b.Elem.IsPointer() }
func (b *Block) IsFloat() bool               { return b.Elem.IsFloat() }
func (b *Block) IsInteger() bool             { return b.Elem.IsInteger() }
func (b *Block) IsBool() bool                { return b.Elem.IsBool() }
func (b *Block) Signedness() kind.Signedness { return b.Elem.Signedness() }

// NumElements returns the total element count of the block's shape.
func (b *Block) NumElements() uint64 {
	n := uint64(1)
	for _, d := range b.Shape {
		n *= uint64(d)
	}
	return n
}

// Equal reports whether two FrontendTypes have the same structure,
// including signedness. Composite types compare recursively.
func Equal(a, b Type) bool {
	switch at := a.(type) {
	case *Void, *Label, *Metadata, *Token:
		return sameVariant(a, b)
	case *Float:
		bt, ok := b.(*Float)
		return ok && at.Knd == bt.Knd
	case *Integer:
		bt, ok := b.(*Integer)
		return ok && at.Bits == bt.Bits && at.Sign == bt.Sign
	case *Pointer:
		bt, ok := b.(*Pointer)
		return ok && at.AddrSpace == bt.AddrSpace && Equal(at.Pointee, bt.Pointee)
	case *Function:
		bt, ok := b.(*Function)
		if !ok || len(at.Params) != len(bt.Params) || !Equal(at.Return, bt.Return) {
			return false
		}
		for i := range at.Params {
			if !Equal(at.Params[i], bt.Params[i]) {
				return false
			}
		}
		return true
	case *Block:
		bt, ok := b.(*Block)
		if !ok || len(at.Shape) != len(bt.Shape) || !Equal(at.Elem, bt.Elem) {
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

func sameVariant(a, b Type) bool {
	switch a.(type) {
	case *Void:
		_, ok := b.(*Void)
		return ok
	case *Label:
		_, ok := b.(*Label)
		return ok
	case *Metadata:
		_, ok := b.(*Metadata)
		return ok
	case *Token:
		_, ok := b.(*Token)
		return ok
	}
	return false
}
