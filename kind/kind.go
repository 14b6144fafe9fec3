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

// Package kind defines the small closed enumerations shared by the IR type
// model and the frontend type model: floating-point width and integer
// signedness. Keeping them in their own package avoids a dependency cycle
// between ir and frontend, both of which need to name these tags.
package kind

// Float is the width/format of a floating-point scalar.
type Float uint8

// Floating-point formats supported by the cast matrix.
const (
	FP8 Float = iota
	FP16
	BF16
	FP32
	FP64
)

// String returns the canonical name of the float kind.
func (f Float) String() string {
	switch f {
	case FP8:
		return "fp8"
	case FP16:
		return "fp16"
	case BF16:
		return "bf16"
	case FP32:
		return "fp32"
	case FP64:
		return "fp64"
	}
	return "invalid float kind"
}

// MantissaWidth returns the number of mantissa bits, used to rank floats
// for truncation/extension and to pick the widest-mantissa type in
// mixed-float division.
func (f Float) MantissaWidth() int {
	switch f {
	case FP8:
		return 3
	case FP16:
		return 10
	case BF16:
		return 7
	case FP32:
		return 23
	case FP64:
		return 52
	}
	return 0
}

// Signedness of an integer scalar. Only meaningful for Integer types;
// bool is represented as Integer(1, Unsigned).
type Signedness uint8

// The two signedness values.
const (
	Signed Signedness = iota
	Unsigned
)

// String returns "signed" or "unsigned".
func (s Signedness) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}
