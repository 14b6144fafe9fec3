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

// Package promote implements the type promotion rules Dispatch consults
// before emitting a binary operation: which of two scalar types the
// operation should compute in, and how two block shapes broadcast
// together.
package promote

import (
	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/internal/ierrors"
	"github.com/gx-org/tkdispatch/kind"
)

// DivOrMod distinguishes the division/modulo operators, which cannot run
// natively in fp16/bf16 and which require matching signedness between
// integer operands.
type DivOrMod bool

// Recognized DivOrMod values.
const (
	No  DivOrMod = false
	Yes DivOrMod = true
)

// IntegerPromote returns the common type of two Integer operands.
//
//   - If both have the same signedness, the wider wins; ties prefer a.
//   - Otherwise the unsigned operand wins when its width is >= the signed
//     operand's width; otherwise the signed operand wins.
func IntegerPromote(a, b frontend.Type) (frontend.Type, error) {
	ai, aok := a.(*frontend.Integer)
	bi, bok := b.(*frontend.Integer)
	if !aok || !bok {
		return nil, ierrors.Unreachable("integer_promote: non-integer operand")
	}
	if ai.Sign == bi.Sign {
		if bi.Bits > ai.Bits {
			return bi, nil
		}
		return ai, nil
	}
	var unsigned, signed *frontend.Integer
	if ai.Sign == kind.Unsigned {
		unsigned, signed = ai, bi
	} else {
		unsigned, signed = bi, ai
	}
	if unsigned.Bits >= signed.Bits {
		return unsigned, nil
	}
	return signed, nil
}

// ComputationType returns the scalar type a binary operation on a and b
// should compute in. a and b must be scalar (non-Block) types; Dispatch
// is responsible for unwrapping Block operands to their element type
// before calling this.
func ComputationType(a, b frontend.Type, divOrMod DivOrMod) (frontend.Type, error) {
	af, aIsFloat := a.(*frontend.Float)
	bf, bIsFloat := b.(*frontend.Float)
	switch {
	case isFPKind(a, kind.FP64) || isFPKind(b, kind.FP64):
		return &frontend.Float{Knd: kind.FP64}, nil
	case isFPKind(a, kind.FP32) || isFPKind(b, kind.FP32):
		return &frontend.Float{Knd: kind.FP32}, nil
	case aIsFloat || bIsFloat:
		// Both operands, if float, are fp16 or bf16 at this point (fp64/fp32
		// were handled above); a scalar mixing fp16 with an integer is
		// resolved by picking the float kind present.
		knd := kind.FP16
		if aIsFloat {
			knd = af.Knd
		} else if bIsFloat {
			knd = bf.Knd
		}
		if divOrMod == Yes {
			return &frontend.Float{Knd: kind.FP32}, nil
		}
		return &frontend.Float{Knd: knd}, nil
	}
	ai, aok := a.(*frontend.Integer)
	bi, bok := b.(*frontend.Integer)
	if !aok || !bok {
		return nil, ierrors.Unreachable("computation_type: operand is neither float nor integer")
	}
	if divOrMod == Yes && ai.Sign != bi.Sign {
		return nil, ierrors.Semantic("different signedness")
	}
	return IntegerPromote(a, b)
}

func isFPKind(t frontend.Type, k kind.Float) bool {
	f, ok := t.(*frontend.Float)
	return ok && f.Knd == k
}

// BroadcastShapes returns the element-wise broadcast of two shapes of
// equal rank: for each dimension, if either side is 1 the other wins; if
// equal, that dimension wins; otherwise the shapes are incompatible.
func BroadcastShapes(a, b []uint32) ([]uint32, error) {
	if len(a) != len(b) {
		return nil, ierrors.Semantic("broadcast_shapes: rank mismatch (%d vs %d)", len(a), len(b))
	}
	out := make([]uint32, len(a))
	for i := range a {
		switch {
		case a[i] == b[i]:
			out[i] = a[i]
		case a[i] == 1:
			out[i] = b[i]
		case b[i] == 1:
			out[i] = a[i]
		default:
			return nil, ierrors.Semantic("broadcast_shapes: incompatible dimensions %d and %d at axis %d", a[i], b[i], i)
		}
	}
	return out, nil
}
