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
	"github.com/gx-org/tkdispatch/kind"
)

func int32ScalarType() frontend.Type { return &frontend.Integer{Bits: 32, Sign: kind.Signed} }

// ProgramID returns the grid index along axis, a scalar int32.
func (d *Dispatch) ProgramID(axis int) *frontend.Value {
	ty := int32ScalarType()
	inst := d.Builder.CreateGetProgramID(axis, ty.IRType())
	return d.value(inst, ty)
}

// NumPrograms returns the grid size along axis, a scalar int32.
func (d *Dispatch) NumPrograms(axis int) *frontend.Value {
	ty := int32ScalarType()
	inst := d.Builder.CreateGetNumPrograms(axis, ty.IRType())
	return d.value(inst, ty)
}
