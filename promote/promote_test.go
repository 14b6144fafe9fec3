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

package promote

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/gx-org/tkdispatch/frontend"
	"github.com/gx-org/tkdispatch/kind"
)

func i(bits int, sign kind.Signedness) *frontend.Integer {
	return &frontend.Integer{Bits: bits, Sign: sign}
}

func f(k kind.Float) *frontend.Float {
	return &frontend.Float{Knd: k}
}

func TestIntegerPromoteSameSignednessPrefersWider(t *testing.T) {
	got, err := IntegerPromote(i(32, kind.Signed), i(64, kind.Signed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frontend.Equal(got, i(64, kind.Signed)) {
		t.Errorf("got %v, want i64", got)
	}
}

func TestIntegerPromoteTieBreaksToA(t *testing.T) {
	a := i(32, kind.Signed)
	got, err := IntegerPromote(a, i(32, kind.Signed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != a {
		t.Errorf("expected tie to resolve to a, got %v", got)
	}
}

func TestIntegerPromoteUnsignedWinsWhenWiderOrEqual(t *testing.T) {
	got, err := IntegerPromote(i(32, kind.Unsigned), i(32, kind.Signed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frontend.Equal(got, i(32, kind.Unsigned)) {
		t.Errorf("got %v, want u32", got)
	}
}

func TestIntegerPromoteSignedWinsWhenWider(t *testing.T) {
	got, err := IntegerPromote(i(8, kind.Unsigned), i(32, kind.Signed))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frontend.Equal(got, i(32, kind.Signed)) {
		t.Errorf("got %v, want i32", got)
	}
}

func TestIntegerPromoteRejectsNonInteger(t *testing.T) {
	if _, err := IntegerPromote(f(kind.FP32), i(32, kind.Signed)); err == nil {
		t.Error("expected an error for a non-integer operand")
	}
}

func TestComputationTypeFP64Wins(t *testing.T) {
	got, err := ComputationType(f(kind.FP32), f(kind.FP64), No)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(kind.FP64, got.(*frontend.Float).Knd); diff != "" {
		t.Errorf("unexpected computation type (-want +got):\n%s", diff)
	}
}

func TestComputationTypeFP32Wins(t *testing.T) {
	got, err := ComputationType(i(32, kind.Signed), f(kind.FP32), No)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := got.(*frontend.Float)
	if !ok || ft.Knd != kind.FP32 {
		t.Errorf("got %v, want fp32", got)
	}
}

func TestComputationTypeFP16DivPromotesToFP32(t *testing.T) {
	got, err := ComputationType(f(kind.FP16), f(kind.FP16), Yes)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := got.(*frontend.Float)
	if !ok || ft.Knd != kind.FP32 {
		t.Errorf("got %v, want fp32 (fp16 has no native div/mod)", got)
	}
}

func TestComputationTypeFP16NonDivStaysFP16(t *testing.T) {
	got, err := ComputationType(f(kind.FP16), f(kind.FP16), No)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	ft, ok := got.(*frontend.Float)
	if !ok || ft.Knd != kind.FP16 {
		t.Errorf("got %v, want fp16", got)
	}
}

func TestComputationTypeMixedSignednessModFails(t *testing.T) {
	_, err := ComputationType(i(32, kind.Signed), i(32, kind.Unsigned), Yes)
	if err == nil {
		t.Fatal("expected an error for mixed signedness mod")
	}
}

func TestComputationTypeIntegerFallsThroughToPromote(t *testing.T) {
	got, err := ComputationType(i(16, kind.Signed), i(32, kind.Signed), No)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !frontend.Equal(got, i(32, kind.Signed)) {
		t.Errorf("got %v, want i32", got)
	}
}

func TestBroadcastShapesRankMismatch(t *testing.T) {
	if _, err := BroadcastShapes([]uint32{4, 4}, []uint32{4}); err == nil {
		t.Error("expected an error for rank mismatch")
	}
}

func TestBroadcastShapesBroadcastsOnes(t *testing.T) {
	got, err := BroadcastShapes([]uint32{1, 8}, []uint32{4, 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]uint32{4, 8}, got); diff != "" {
		t.Errorf("unexpected broadcast shape (-want +got):\n%s", diff)
	}
}

func TestBroadcastShapesIncompatibleDimensions(t *testing.T) {
	if _, err := BroadcastShapes([]uint32{4, 8}, []uint32{4, 6}); err == nil {
		t.Error("expected an error for incompatible dimensions")
	}
}
