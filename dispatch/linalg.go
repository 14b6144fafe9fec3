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

// Dot computes lhs [M,K] times rhs [K,N] into a [M,N] Block. The
// accumulator starts at zero, int32 for integer inputs and float32
// otherwise, splatted to the result shape. K agreement between the two
// operands is left to the IR builder to re-check.
func (d *Dispatch) Dot(lhs, rhs *frontend.Value, allowTF32 bool) (*frontend.Value, error) {
	lb, lok := lhs.Type().(*frontend.Block)
	rb, rok := rhs.Type().(*frontend.Block)
	if !lok || !rok || len(lb.Shape) != 2 || len(rb.Shape) != 2 {
		return nil, ierrors.Semantic("dot requires two rank-2 Block operands")
	}
	m, n := lb.Shape[0], rb.Shape[1]
	var accElem frontend.Type
	if lb.Elem.IsInteger() && rb.Elem.IsInteger() {
		accElem = &frontend.Integer{Bits: 32, Sign: kind.Signed}
	} else {
		accElem = &frontend.Float{Knd: kind.FP32}
	}
	accTy := &frontend.Block{Elem: accElem, Shape: []uint32{m, n}}
	acc := d.splatScalar(d.zeroOfScalarType(accElem), accTy.Shape)

	inst := d.Builder.CreateDot(lhs.IR(), rhs.IR(), acc.IR(), accTy.IRType(), allowTF32)
	return d.value(inst, accTy), nil
}
