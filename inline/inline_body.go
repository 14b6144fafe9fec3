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

package inline

import (
	"github.com/gx-org/tkdispatch/internal/ierrors"
	"github.com/gx-org/tkdispatch/ir"
)

// inlineOne replaces call with a clone of callee's body, following the
// procedure described for per-call inlining: split the parent block,
// reuse the split-off predecessor as the landing block for the callee's
// first block, allocate fresh blocks for the rest, clone every
// instruction with its operands and block references remapped, and merge
// every `ret` into a phi at the resumed successor block.
//
// Calls newly exposed by cloning (a callee that itself calls something)
// are appended to sites so Run visits them in a later pass.
func inlineOne(callee *ir.Function, call *ir.Inst, sites map[*ir.Function][]*ir.Inst) error {
	if len(callee.Blocks) == 0 {
		return ierrors.Semantic("inliner: callee %q has no blocks", callee.Name)
	}
	exit := call.Parent()
	if exit == nil {
		return ierrors.Unreachable("inline: call instruction has no parent block")
	}
	callerFn := exit.Parent

	entry := exit.SplitBefore(call, callee.Name+".entry")

	exitVal := &ir.Inst{Op: ir.OpPhi, Typ: callee.ReturnType(), Name: callee.Name + ".ret"}
	insertAt(exit, exit.FirstNonPhi(), exitVal)

	removeInst(exit, call)
	for _, block := range callerFn.Blocks {
		for _, inst := range block.Insts {
			inst.ReplaceUsesOfWith(call, exitVal)
		}
	}

	// entry's terminator is the branch SplitBefore just wrote; it is
	// discarded because the cloned callee body (placed into entry below)
	// supplies its own terminator.
	entry.Insts = entry.Insts[:len(entry.Insts)-1]

	blockMap := map[*ir.BasicBlock]*ir.BasicBlock{callee.Blocks[0]: entry}
	for _, cb := range callee.Blocks[1:] {
		blockMap[cb] = callerFn.AppendBlock(callee.Name + "." + cb.Name)
	}

	valueMap := make(map[ir.Value]ir.Value, len(callee.Args))
	for i, arg := range callee.Args {
		valueMap[arg] = call.Operands[i]
	}

	for _, cb := range callee.Blocks {
		dst := blockMap[cb]
		for _, orig := range cb.Insts {
			if orig.Op == ir.OpReturn {
				if rv := orig.ReturnValue(); rv != nil {
					exitVal.AddIncoming(remapValue(rv, valueMap), dst)
				}
				dst.Append(&ir.Inst{Op: ir.OpBranch, Typ: ir.Void(), Blocks: []*ir.BasicBlock{exit}})
				continue
			}
			clone := orig.Clone()
			for i, operand := range clone.Operands {
				clone.Operands[i] = remapValue(operand, valueMap)
			}
			for i, blk := range clone.Blocks {
				if mapped, ok := blockMap[blk]; ok {
					clone.Blocks[i] = mapped
				}
			}
			dst.Append(clone)
			valueMap[orig] = clone
			if clone.Op == ir.OpCall && clone.Callee != nil {
				sites[clone.Callee] = append(sites[clone.Callee], clone)
			}
		}
	}
	return nil
}

func remapValue(v ir.Value, valueMap map[ir.Value]ir.Value) ir.Value {
	if mapped, ok := valueMap[v]; ok {
		return mapped
	}
	return v
}

func insertAt(block *ir.BasicBlock, idx int, inst *ir.Inst) {
	block.Insts = append(block.Insts, nil)
	copy(block.Insts[idx+1:], block.Insts[idx:])
	block.Insts[idx] = inst
}

func removeInst(block *ir.BasicBlock, inst *ir.Inst) {
	for i, cur := range block.Insts {
		if cur == inst {
			block.Insts = append(block.Insts[:i], block.Insts[i+1:]...)
			return
		}
	}
}
