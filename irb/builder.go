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

// Package irb declares the IR builder contract that Dispatch targets.
// Every instruction Dispatch emits goes through a Builder (UMulHi, which
// has no Create method, builds its *ir.Inst and hands it to Insert), so
// that a test can substitute irbtest.Fake for the real code generator
// without either side knowing about the other.
package irb

import "github.com/gx-org/tkdispatch/ir"

// Builder is a fluent factory for IR instructions, with a cursor
// (set by SetInsertPoint) tracking where the next instruction lands.
// Every create_* method inserts at the cursor and advances it.
type Builder interface {
	// SetInsertPoint moves the cursor to the end of block, or, when at is
	// non-nil, immediately before at (within its own block).
	SetInsertPoint(block *ir.BasicBlock, at *ir.Inst)

	// InsertBlock returns the block the cursor currently points into.
	InsertBlock() *ir.BasicBlock

	// Insert appends a fully-formed instruction at the cursor and returns it.
	Insert(inst *ir.Inst) *ir.Inst

	// Arithmetic.
	CreateFAdd(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFSub(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFMul(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFDiv(lhs, rhs ir.Value, t ir.Type, ieeeRounding bool) *ir.Inst
	CreateFRem(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateAdd(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateSub(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateMul(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateSDiv(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateUDiv(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateSRem(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateURem(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateGEP(ptr, offset ir.Value, t ir.Type) *ir.Inst

	// Bitwise.
	CreateAnd(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateOr(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateXor(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateShl(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateLShr(lhs, rhs ir.Value, t ir.Type) *ir.Inst

	// Comparisons, both float (ordered/unordered-not-equal) and integer
	// (signed/unsigned/sign-agnostic).
	CreateFCmpOGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOLT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOLE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFCmpOEQ(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateFCmpUNE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpSGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpSGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpSLT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpSLE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpUGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpUGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpULT(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpULE(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpEQ(lhs, rhs ir.Value, t ir.Type) *ir.Inst
	CreateICmpNE(lhs, rhs ir.Value, t ir.Type) *ir.Inst

	// Casts.
	CreateFPTrunc(v ir.Value, t ir.Type) *ir.Inst
	CreateFPExt(v ir.Value, t ir.Type) *ir.Inst
	CreateFPToSI(v ir.Value, t ir.Type) *ir.Inst
	CreateFPToUI(v ir.Value, t ir.Type) *ir.Inst
	CreateSIToFP(v ir.Value, t ir.Type) *ir.Inst
	CreateUIToFP(v ir.Value, t ir.Type) *ir.Inst
	CreateIntCast(v ir.Value, t ir.Type, isSigned bool) *ir.Inst
	CreateIntToPtr(v ir.Value, t ir.Type) *ir.Inst
	CreatePtrToInt(v ir.Value, t ir.Type) *ir.Inst
	CreateBitCast(v ir.Value, t ir.Type) *ir.Inst

	// Shape manipulation.
	CreateSplat(v ir.Value, t ir.Type) *ir.Inst
	CreateBroadcast(v ir.Value, t ir.Type) *ir.Inst
	CreateReshape(v ir.Value, t ir.Type) *ir.Inst
	CreateCat(lhs, rhs ir.Value, t ir.Type) *ir.Inst

	// Memory.
	CreateLoad(ptr ir.Value, t ir.Type, cache ir.CacheModifier, isVolatile bool) *ir.Inst
	CreateMaskedLoad(ptr, mask, other ir.Value, t ir.Type, cache ir.CacheModifier, isVolatile bool) *ir.Inst
	CreateStore(ptr, val ir.Value) *ir.Inst
	CreateMaskedStore(ptr, val, mask ir.Value) *ir.Inst
	CreateAtomicCAS(ptr, cmp, val ir.Value, t ir.Type) *ir.Inst
	CreateAtomicRMW(op ir.AtomicRMWOp, ptr, val, mask ir.Value, t ir.Type) *ir.Inst

	// Linear algebra, selection, reduction, programming model, math.
	CreateDot(lhs, rhs, acc ir.Value, t ir.Type, allowTF32 bool) *ir.Inst
	CreateSelect(cond, tval, fval ir.Value, t ir.Type) *ir.Inst
	CreateReduce(v ir.Value, axis int, op ir.ReduceOp, t ir.Type) *ir.Inst
	CreateGetProgramID(axis int, t ir.Type) *ir.Inst
	CreateGetNumPrograms(axis int, t ir.Type) *ir.Inst
	CreateGetRange(start, end int64, t ir.Type) *ir.Inst
	CreateBarrier() *ir.Inst
	CreateExp(v ir.Value, t ir.Type) *ir.Inst
	CreateLog(v ir.Value, t ir.Type) *ir.Inst
	CreateCos(v ir.Value, t ir.Type) *ir.Inst
	CreateSin(v ir.Value, t ir.Type) *ir.Inst
	CreateSqrt(v ir.Value, t ir.Type) *ir.Inst

	// Type accessors.
	GetVoidTy() ir.Type
	GetInt1Ty() ir.Type
	GetInt8Ty() ir.Type
	GetInt16Ty() ir.Type
	GetInt32Ty() ir.Type
	GetInt64Ty() ir.Type
	GetFloatTy(k ir.FloatKind) ir.Type

	// Constant builders.
	GetInt1(v bool) ir.Value
	GetInt32(v int32) ir.Value
	GetInt64(v int64) ir.Value
	GetFloat32(v float32) ir.Value
}
