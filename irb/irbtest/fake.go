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

// Package irbtest provides an in-memory irb.Builder backed directly by the
// ir package, for exercising Dispatch and the inliner in tests without a
// real code generator.
package irbtest

import (
	"fmt"
	"math"

	"github.com/gx-org/tkdispatch/ir"
	"github.com/gx-org/tkdispatch/irb"
	"github.com/gx-org/tkdispatch/kind"
)

// Fake is an irb.Builder that appends every created instruction to the
// block at the cursor, named sequentially ("%0", "%1", ...) the way a
// disassembler would print unnamed SSA values.
type Fake struct {
	block  *ir.BasicBlock
	at     *ir.Inst
	nextID int
}

// New returns a Fake builder with no insertion point set; SetInsertPoint
// must be called before any create_* method.
func New() *Fake { return &Fake{} }

var _ irb.Builder = (*Fake)(nil)

// SetInsertPoint implements irb.Builder.
func (f *Fake) SetInsertPoint(block *ir.BasicBlock, at *ir.Inst) {
	f.block = block
	f.at = at
}

// InsertBlock implements irb.Builder.
func (f *Fake) InsertBlock() *ir.BasicBlock { return f.block }

func (f *Fake) name() string {
	n := fmt.Sprintf("%%%d", f.nextID)
	f.nextID++
	return n
}

// Insert implements irb.Builder: it appends at the end of the block when
// the cursor has no "at" target, otherwise it splices the instruction in
// immediately before it.
func (f *Fake) Insert(inst *ir.Inst) *ir.Inst {
	if f.block == nil {
		panic("irbtest: Insert called with no insert point set")
	}
	if inst.Name == "" && inst.Typ != nil {
		if _, isVoid := inst.Typ.(*ir.VoidType); !isVoid {
			inst.Name = f.name()
		}
	}
	if f.at == nil {
		f.block.Append(inst)
		return inst
	}
	idx := -1
	for i, existing := range f.block.Insts {
		if existing == f.at {
			idx = i
			break
		}
	}
	if idx < 0 {
		f.block.Append(inst)
		return inst
	}
	f.block.Insts = append(f.block.Insts, nil)
	copy(f.block.Insts[idx+1:], f.block.Insts[idx:])
	f.block.Insts[idx] = inst
	return inst
}

func (f *Fake) emit(op ir.Opcode, t ir.Type, operands ...ir.Value) *ir.Inst {
	return f.Insert(&ir.Inst{Op: op, Typ: t, Operands: operands})
}

// Arithmetic.

func (f *Fake) CreateFAdd(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFAdd, t, lhs, rhs) }
func (f *Fake) CreateFSub(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFSub, t, lhs, rhs) }
func (f *Fake) CreateFMul(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFMul, t, lhs, rhs) }

func (f *Fake) CreateFDiv(lhs, rhs ir.Value, t ir.Type, ieeeRounding bool) *ir.Inst {
	inst := f.emit(ir.OpFDiv, t, lhs, rhs)
	inst.IEEERounding = ieeeRounding
	return inst
}

func (f *Fake) CreateFRem(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFRem, t, lhs, rhs) }
func (f *Fake) CreateAdd(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpAdd, t, lhs, rhs) }
func (f *Fake) CreateSub(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpSub, t, lhs, rhs) }
func (f *Fake) CreateMul(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpMul, t, lhs, rhs) }
func (f *Fake) CreateSDiv(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpSDiv, t, lhs, rhs) }
func (f *Fake) CreateUDiv(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpUDiv, t, lhs, rhs) }
func (f *Fake) CreateSRem(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpSRem, t, lhs, rhs) }
func (f *Fake) CreateURem(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpURem, t, lhs, rhs) }
func (f *Fake) CreateGEP(ptr, offset ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpGEP, t, ptr, offset) }

// Bitwise.

func (f *Fake) CreateAnd(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpAnd, t, lhs, rhs) }
func (f *Fake) CreateOr(lhs, rhs ir.Value, t ir.Type) *ir.Inst   { return f.emit(ir.OpOr, t, lhs, rhs) }
func (f *Fake) CreateXor(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpXor, t, lhs, rhs) }
func (f *Fake) CreateShl(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpShl, t, lhs, rhs) }
func (f *Fake) CreateLShr(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpLShr, t, lhs, rhs) }

// Comparisons.

func (f *Fake) CreateFCmpOGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpOGT, t, lhs, rhs) }
func (f *Fake) CreateFCmpOGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpOGE, t, lhs, rhs) }
func (f *Fake) CreateFCmpOLT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpOLT, t, lhs, rhs) }
func (f *Fake) CreateFCmpOLE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpOLE, t, lhs, rhs) }
func (f *Fake) CreateFCmpOEQ(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpOEQ, t, lhs, rhs) }
func (f *Fake) CreateFCmpUNE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFCmpUNE, t, lhs, rhs) }
func (f *Fake) CreateICmpSGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpSGT, t, lhs, rhs) }
func (f *Fake) CreateICmpSGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpSGE, t, lhs, rhs) }
func (f *Fake) CreateICmpSLT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpSLT, t, lhs, rhs) }
func (f *Fake) CreateICmpSLE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpSLE, t, lhs, rhs) }
func (f *Fake) CreateICmpUGT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpUGT, t, lhs, rhs) }
func (f *Fake) CreateICmpUGE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpUGE, t, lhs, rhs) }
func (f *Fake) CreateICmpULT(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpULT, t, lhs, rhs) }
func (f *Fake) CreateICmpULE(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpICmpULE, t, lhs, rhs) }
func (f *Fake) CreateICmpEQ(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpICmpEQ, t, lhs, rhs) }
func (f *Fake) CreateICmpNE(lhs, rhs ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpICmpNE, t, lhs, rhs) }

// Casts.

func (f *Fake) CreateFPTrunc(v ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpFPTrunc, t, v) }
func (f *Fake) CreateFPExt(v ir.Value, t ir.Type) *ir.Inst   { return f.emit(ir.OpFPExt, t, v) }
func (f *Fake) CreateFPToSI(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpFPToSI, t, v) }
func (f *Fake) CreateFPToUI(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpFPToUI, t, v) }
func (f *Fake) CreateSIToFP(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpSIToFP, t, v) }
func (f *Fake) CreateUIToFP(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpUIToFP, t, v) }

func (f *Fake) CreateIntCast(v ir.Value, t ir.Type, isSigned bool) *ir.Inst {
	inst := f.emit(ir.OpIntCast, t, v)
	inst.Signed = isSigned
	return inst
}

func (f *Fake) CreateIntToPtr(v ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpIntToPtr, t, v) }
func (f *Fake) CreatePtrToInt(v ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpPtrToInt, t, v) }
func (f *Fake) CreateBitCast(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpBitCast, t, v) }

// Shape manipulation.

func (f *Fake) CreateSplat(v ir.Value, t ir.Type) *ir.Inst     { return f.emit(ir.OpSplat, t, v) }
func (f *Fake) CreateBroadcast(v ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpBroadcast, t, v) }
func (f *Fake) CreateReshape(v ir.Value, t ir.Type) *ir.Inst   { return f.emit(ir.OpReshape, t, v) }
func (f *Fake) CreateCat(lhs, rhs ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpCat, t, lhs, rhs) }

// Memory.

func (f *Fake) CreateLoad(ptr ir.Value, t ir.Type, cache ir.CacheModifier, isVolatile bool) *ir.Inst {
	inst := f.emit(ir.OpLoad, t, ptr)
	inst.Cache = cache
	inst.Volatile = isVolatile
	return inst
}

func (f *Fake) CreateMaskedLoad(ptr, mask, other ir.Value, t ir.Type, cache ir.CacheModifier, isVolatile bool) *ir.Inst {
	operands := []ir.Value{ptr, mask}
	if other != nil {
		operands = append(operands, other)
	}
	inst := f.emit(ir.OpMaskedLoad, t, operands...)
	inst.Cache = cache
	inst.Volatile = isVolatile
	return inst
}

func (f *Fake) CreateStore(ptr, val ir.Value) *ir.Inst {
	return f.emit(ir.OpStore, ir.Void(), ptr, val)
}

func (f *Fake) CreateMaskedStore(ptr, val, mask ir.Value) *ir.Inst {
	return f.emit(ir.OpMaskedStore, ir.Void(), ptr, val, mask)
}

func (f *Fake) CreateAtomicCAS(ptr, cmp, val ir.Value, t ir.Type) *ir.Inst {
	return f.emit(ir.OpAtomicCAS, t, ptr, cmp, val)
}

func (f *Fake) CreateAtomicRMW(op ir.AtomicRMWOp, ptr, val, mask ir.Value, t ir.Type) *ir.Inst {
	operands := []ir.Value{ptr, val}
	if mask != nil {
		operands = append(operands, mask)
	}
	inst := f.emit(ir.OpAtomicRMW, t, operands...)
	inst.AtomicOp = op
	return inst
}

// Linear algebra, selection, reduction, programming model, math.

func (f *Fake) CreateDot(lhs, rhs, acc ir.Value, t ir.Type, allowTF32 bool) *ir.Inst {
	inst := f.emit(ir.OpDot, t, lhs, rhs, acc)
	inst.AllowTF32 = allowTF32
	return inst
}

func (f *Fake) CreateSelect(cond, tval, fval ir.Value, t ir.Type) *ir.Inst {
	return f.emit(ir.OpSelect, t, cond, tval, fval)
}

func (f *Fake) CreateReduce(v ir.Value, axis int, op ir.ReduceOp, t ir.Type) *ir.Inst {
	inst := f.emit(ir.OpReduce, t, v)
	inst.Axis = axis
	inst.ReduceOp = op
	return inst
}

func (f *Fake) CreateGetProgramID(axis int, t ir.Type) *ir.Inst {
	inst := f.emit(ir.OpGetProgramID, t)
	inst.Axis = axis
	return inst
}

func (f *Fake) CreateGetNumPrograms(axis int, t ir.Type) *ir.Inst {
	inst := f.emit(ir.OpGetNumPrograms, t)
	inst.Axis = axis
	return inst
}

func (f *Fake) CreateGetRange(start, end int64, t ir.Type) *ir.Inst {
	inst := f.emit(ir.OpGetRange, t)
	inst.RangeStart = start
	inst.RangeEnd = end
	return inst
}

func (f *Fake) CreateBarrier() *ir.Inst { return f.emit(ir.OpBarrier, ir.Void()) }
func (f *Fake) CreateExp(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpExp, t, v) }
func (f *Fake) CreateLog(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpLog, t, v) }
func (f *Fake) CreateCos(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpCos, t, v) }
func (f *Fake) CreateSin(v ir.Value, t ir.Type) *ir.Inst  { return f.emit(ir.OpSin, t, v) }
func (f *Fake) CreateSqrt(v ir.Value, t ir.Type) *ir.Inst { return f.emit(ir.OpSqrt, t, v) }

// Type accessors.

func (f *Fake) GetVoidTy() ir.Type             { return ir.Void() }
func (f *Fake) GetInt1Ty() ir.Type             { return ir.Int(1) }
func (f *Fake) GetInt8Ty() ir.Type             { return ir.Int(8) }
func (f *Fake) GetInt16Ty() ir.Type            { return ir.Int(16) }
func (f *Fake) GetInt32Ty() ir.Type            { return ir.Int(32) }
func (f *Fake) GetInt64Ty() ir.Type            { return ir.Int(64) }
func (f *Fake) GetFloatTy(k ir.FloatKind) ir.Type { return ir.Float(k) }

// Constant builders.

func (f *Fake) GetInt1(v bool) ir.Value {
	bits := uint64(0)
	if v {
		bits = 1
	}
	return &ir.Constant{Typ: ir.Int(1), Bits: bits}
}

func (f *Fake) GetInt32(v int32) ir.Value {
	return &ir.Constant{Typ: ir.Int(32), Bits: uint64(uint32(v))}
}

func (f *Fake) GetInt64(v int64) ir.Value {
	return &ir.Constant{Typ: ir.Int(64), Bits: uint64(v)}
}

func (f *Fake) GetFloat32(v float32) ir.Value {
	return &ir.Constant{Typ: ir.Float(kind.FP32), Bits: uint64(math.Float32bits(v))}
}
