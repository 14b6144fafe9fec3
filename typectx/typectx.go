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

// Package typectx owns the FrontendType and FrontendValue instances for a
// single compilation. It bridges the frontend type model to the IR type
// context: every FrontendType it hands out is interned on (IR type,
// signedness), and every FrontendValue it creates is appended to a
// bump-allocated list that is never reused.
//
// A TypeContext carries no internal locking: per the concurrency model,
// a single compilation runs on one thread, and a thread compiling a
// different kernel must build its own TypeContext.
package typectx

import (
	"fmt"

	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/ir"
	"github.com/gx-org/tkdispatch/kind"
)

// Context owns all FrontendType and FrontendValue instances for a
// compilation.
type Context struct {
	types  map[string]frontend.Type
	values []*frontend.Value
}

// New returns an empty TypeContext.
func New() *Context {
	return &Context{types: make(map[string]frontend.Type)}
}

func internKey(t ir.Type, sign kind.Signedness) string {
	return fmt.Sprintf("%s#%s", t.String(), sign)
}

// GetTypeFromIRType interns (or returns the previously interned)
// FrontendType for an IR type plus a signedness hint. The hint is only
// meaningful when t is, or wraps, an integer type; it is ignored (but
// still part of the cache key, for simplicity) otherwise.
func (c *Context) GetTypeFromIRType(t ir.Type, sign kind.Signedness) frontend.Type {
	key := internKey(t, sign)
	if ft, ok := c.types[key]; ok {
		return ft
	}
	ft := fromIRType(t, sign)
	c.types[key] = ft
	return ft
}

// GetTypeFromIRTypeSigned is GetTypeFromIRType with the default
// signedness hint (kind.Signed), matching the TypeContext operation
// `get_type_from_ir_type(ir_type, signedness=SIGNED)` default.
func (c *Context) GetTypeFromIRTypeSigned(t ir.Type) frontend.Type {
	return c.GetTypeFromIRType(t, kind.Signed)
}

// GetTypeFromIR interns the FrontendType of an IR value's type.
func (c *Context) GetTypeFromIR(v ir.Value, sign kind.Signedness) frontend.Type {
	return c.GetTypeFromIRType(v.Type(), sign)
}

// GetTypeFromIRSigned is GetTypeFromIR with the default signedness hint.
func (c *Context) GetTypeFromIRSigned(v ir.Value) frontend.Type {
	return c.GetTypeFromIR(v, kind.Signed)
}

func fromIRType(t ir.Type, sign kind.Signedness) frontend.Type {
	switch it := t.(type) {
	case *ir.VoidType:
		return &frontend.Void{}
	case *ir.LabelType:
		return &frontend.Label{}
	case *ir.MetadataType:
		return &frontend.Metadata{}
	case *ir.TokenType:
		return &frontend.Token{}
	case *ir.FloatType:
		return &frontend.Float{Knd: it.Knd}
	case *ir.IntType:
		s := sign
		if it.Bits == 1 {
			s = kind.Unsigned // bool is always Integer(1, unsigned)
		}
		return &frontend.Integer{Bits: it.Bits, Sign: s}
	case *ir.PointerType:
		return &frontend.Pointer{Pointee: fromIRType(it.Elem, sign), AddrSpace: it.AddrSpace}
	case *ir.FunctionType:
		params := make([]frontend.Type, len(it.Params))
		for i, p := range it.Params {
			params[i] = fromIRType(p, kind.Signed)
		}
		return &frontend.Function{Return: fromIRType(it.Return, kind.Signed), Params: params}
	case *ir.BlockType:
		return &frontend.Block{Elem: fromIRType(it.Elem, sign), Shape: it.Shape}
	}
	panic("typectx: unhandled IR type")
}

// CreateValue wraps an IR value as a FrontendValue. If ft is nil, the
// FrontendType is derived from the IR value's type with the default
// (signed) hint -- matching `create_value(ir_value, frontend_type?)` where
// the type argument is optional.
func (c *Context) CreateValue(v ir.Value, ft frontend.Type) *frontend.Value {
	if ft == nil {
		ft = c.GetTypeFromIRSigned(v)
	}
	fv := &frontend.Value{IRValue: v, Typ: ft}
	c.values = append(c.values, fv)
	return fv
}

// NumValues returns how many FrontendValues this context has allocated;
// exposed for tests asserting on the bump-allocator's behavior.
func (c *Context) NumValues() int { return len(c.values) }
