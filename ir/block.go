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

package ir

import "fmt"

// BasicBlock is a straight-line list of instructions ending in a
// terminator (branch, conditional branch, or return).
type BasicBlock struct {
	Name   string
	Parent *Function
	Insts  []*Inst
}

// Type implements Value so a block can be the operand of instructions that
// reference it directly (none currently do; branch targets live in
// Inst.Blocks instead, matching the IR model described for the inliner).
func (b *BasicBlock) Type() Type { return Label() }

func (*BasicBlock) irValue() {}

// Append adds an instruction at the end of the block and sets its parent.
func (b *BasicBlock) Append(inst *Inst) {
	inst.parent = b
	b.Insts = append(b.Insts, inst)
}

// Terminator returns the block's terminator instruction, or nil if the
// block is not yet terminated.
func (b *BasicBlock) Terminator() *Inst {
	if len(b.Insts) == 0 {
		return nil
	}
	last := b.Insts[len(b.Insts)-1]
	if !last.IsTerminator() {
		return nil
	}
	return last
}

// FirstNonPhi returns the index of the first instruction in the block that
// is not a Phi node (or len(Insts) if the block is all phis).
func (b *BasicBlock) FirstNonPhi() int {
	for idx, inst := range b.Insts {
		if inst.Op != OpPhi {
			return idx
		}
	}
	return len(b.Insts)
}

// indexOf returns the index of inst in the block's instruction list, or -1.
func (b *BasicBlock) indexOf(inst *Inst) int {
	for idx, i := range b.Insts {
		if i == inst {
			return idx
		}
	}
	return -1
}

// SplitBefore splits the block immediately before at: a new predecessor
// block (named name) is created holding every instruction that came
// before at, terminated by an unconditional branch into the receiver,
// which keeps at and everything after it and becomes the "successor"
// block that execution resumes in.
func (b *BasicBlock) SplitBefore(at *Inst, name string) *BasicBlock {
	idx := b.indexOf(at)
	if idx < 0 {
		panic("ir: SplitBefore: instruction not found in block")
	}
	pred := &BasicBlock{Name: name, Parent: b.Parent}
	pred.Insts = b.Insts[:idx:idx]
	for _, inst := range pred.Insts {
		inst.parent = pred
	}
	b.Insts = b.Insts[idx:]
	b.Parent.insertBefore(pred, b)
	pred.Append(&Inst{Op: OpBranch, Typ: Void(), Blocks: []*BasicBlock{b}})
	return pred
}

// Successors returns the blocks a terminator can branch to.
func (b *BasicBlock) Successors() []*BasicBlock {
	term := b.Terminator()
	if term == nil {
		return nil
	}
	return term.Blocks
}

func (b *BasicBlock) String() string {
	return fmt.Sprintf("block %q (%d insts)", b.Name, len(b.Insts))
}
