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
	"github.com/gx-org/tkdispatch/promote"
)

// Where casts cond to i1, broadcasts x and y to cond's shape if cond is a
// Block, promotes x and y to their common computation type, and emits a
// select.
func (d *Dispatch) Where(cond, x, y *frontend.Value) (*frontend.Value, error) {
	cond, err := d.Cast(cond, withBlockShapeOf(cond, boolType()))
	if err != nil {
		return nil, err
	}
	if shape := blockShape(cond); shape != nil {
		x = d.splatScalar(x, shape)
		y = d.splatScalar(y, shape)
	}
	compTy, err := promote.ComputationType(x.Type().ScalarType(), y.Type().ScalarType(), promote.No)
	if err != nil {
		return nil, err
	}
	x, err = d.castScalarOrBlock(x, compTy)
	if err != nil {
		return nil, err
	}
	y, err = d.castScalarOrBlock(y, compTy)
	if err != nil {
		return nil, err
	}
	resultTy := resultElemType(x, y, compTy)
	inst := d.Builder.CreateSelect(cond.IR(), x.IR(), y.IR(), resultTy.IRType())
	return d.value(inst, resultTy), nil
}
