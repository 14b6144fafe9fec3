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

// Function is a list of basic blocks with a signature and formal
// arguments.
type Function struct {
	Name   string
	Typ    *FunctionType
	Args   []*Argument
	Blocks []*BasicBlock
	Module *Module
}

// ReturnType returns the function's declared return type.
func (f *Function) ReturnType() Type { return f.Typ.Return }

// AppendBlock creates and appends a new empty block to the function.
func (f *Function) AppendBlock(name string) *BasicBlock {
	b := &BasicBlock{Name: name, Parent: f}
	f.Blocks = append(f.Blocks, b)
	return b
}

// insertBefore splices newBlock into the function's block list immediately
// before target. Used by BasicBlock.SplitBefore.
func (f *Function) insertBefore(newBlock, target *BasicBlock) {
	idx := -1
	for i, b := range f.Blocks {
		if b == target {
			idx = i
			break
		}
	}
	if idx < 0 {
		panic("ir: insertBefore: target block not in function")
	}
	f.Blocks = append(f.Blocks, nil)
	copy(f.Blocks[idx+1:], f.Blocks[idx:])
	f.Blocks[idx] = newBlock
}

// Module is a collection of functions sharing a namespace. The inliner
// mutates a Module in place, replacing call sites with cloned bodies and
// removing callees once fully inlined.
type Module struct {
	Functions []*Function
}

// AddFunction appends a function to the module.
func (m *Module) AddFunction(f *Function) {
	f.Module = m
	m.Functions = append(m.Functions, f)
}

// RemoveFunction removes fn from the module's function list. It is a
// no-op if fn is not present.
func (m *Module) RemoveFunction(fn *Function) {
	for i, f := range m.Functions {
		if f == fn {
			m.Functions = append(m.Functions[:i], m.Functions[i+1:]...)
			return
		}
	}
}
