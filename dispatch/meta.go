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

// MultipleOf attaches a "value is a multiple of n" hint to the underlying
// IR instruction and returns x unchanged. x must be backed by an
// instruction, not a constant or argument.
func (d *Dispatch) MultipleOf(x *frontend.Value, n int64) (*frontend.Value, error) {
	inst, ok := x.IR().(*ir.Inst)
	if !ok {
		return nil, ierrors.Unreachable("multiple_of: operand is not an instruction")
	}
	inst.MultipleOf = &n
	return x, nil
}

// MaxContiguous attaches a "value's contiguous run is at most n" hint to
// the underlying IR instruction and returns x unchanged.
func (d *Dispatch) MaxContiguous(x *frontend.Value, n int64) (*frontend.Value, error) {
	inst, ok := x.IR().(*ir.Inst)
	if !ok {
		return nil, ierrors.Unreachable("max_contiguous: operand is not an instruction")
	}
	inst.MaxContiguous = &n
	return x, nil
}

// DebugBarrier emits a barrier instruction and returns a void value.
func (d *Dispatch) DebugBarrier() *frontend.Value {
	inst := d.Builder.CreateBarrier()
	return d.value(inst, &frontend.Void{})
}
