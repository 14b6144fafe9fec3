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

// Arange returns an int32 Block of shape [end-start] holding start..end-1.
func (d *Dispatch) Arange(start, end int64) (*frontend.Value, error) {
	if end <= start {
		return nil, ierrors.Semantic("arange requires end > start (got start=%d, end=%d)", start, end)
	}
	elem := &frontend.Integer{Bits: 32, Sign: kind.Signed}
	ft := &frontend.Block{Elem: elem, Shape: []uint32{uint32(end - start)}}
	inst := d.Builder.CreateGetRange(start, end, ft.IRType())
	return d.value(inst, ft), nil
}

// Zeros returns a Block of the given shape and dtype, filled with dtype's
// null value via a splat.
func (d *Dispatch) Zeros(shape []uint32, dtype frontend.Type) (*frontend.Value, error) {
	zero := d.zeroOfScalarType(dtype)
	return d.splatScalar(zero, shape), nil
}
