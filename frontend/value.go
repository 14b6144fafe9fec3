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

package frontend

import "github.com/gx-org/tkdispatch/ir"

// Value pairs an IR value handle with its FrontendType. It is never
// mutated after construction: every Dispatch operation that needs a
// "different" value builds a new Value rather than editing this one.
//
// Invariant: IRValue.Type() and Typ.IRType() must describe the same IR
// type. TypeContext.CreateValue does not check this; callers are
// responsible for pairing matching types.
type Value struct {
	IRValue ir.Value
	Typ     Type
}

// Type returns the frontend type of the value.
func (v *Value) Type() Type { return v.Typ }

// IR returns the underlying IR value handle.
func (v *Value) IR() ir.Value { return v.IRValue }
