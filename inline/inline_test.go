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
	"strings"
	"testing"

	"github.com/gx-org/tkdispatch/ir"
)

// buildAdd1Module returns a module with a callee add1(x) = x + 1 and a
// caller main(y) = add1(y) + 2, wired as a single call site.
func buildAdd1Module(t *testing.T) (mod *ir.Module, caller *ir.Function, sum *ir.Inst) {
	t.Helper()
	i32 := ir.Int(32)

	callee := &ir.Function{Name: "add1", Typ: &ir.FunctionType{Return: i32, Params: []ir.Type{i32}}}
	arg := &ir.Argument{Typ: i32, Name: "x", Index: 0}
	callee.Args = []*ir.Argument{arg}
	entry := &ir.BasicBlock{Name: "entry", Parent: callee}
	callee.Blocks = []*ir.BasicBlock{entry}
	one := &ir.Constant{Typ: i32, Bits: 1}
	add := &ir.Inst{Op: ir.OpAdd, Typ: i32, Operands: []ir.Value{arg, one}}
	entry.Append(add)
	entry.Append(&ir.Inst{Op: ir.OpReturn, Typ: ir.Void(), Operands: []ir.Value{add}})

	main := &ir.Function{Name: "main", Typ: &ir.FunctionType{Return: i32, Params: []ir.Type{i32}}}
	yArg := &ir.Argument{Typ: i32, Name: "y", Index: 0}
	main.Args = []*ir.Argument{yArg}
	b0 := &ir.BasicBlock{Name: "b0", Parent: main}
	main.Blocks = []*ir.BasicBlock{b0}
	callInst := &ir.Inst{Op: ir.OpCall, Typ: i32, Callee: callee, Operands: []ir.Value{yArg}}
	b0.Append(callInst)
	two := &ir.Constant{Typ: i32, Bits: 2}
	sumInst := &ir.Inst{Op: ir.OpAdd, Typ: i32, Operands: []ir.Value{callInst, two}}
	b0.Append(sumInst)
	b0.Append(&ir.Inst{Op: ir.OpReturn, Typ: ir.Void(), Operands: []ir.Value{sumInst}})

	mod = &ir.Module{}
	mod.AddFunction(callee)
	mod.AddFunction(main)
	return mod, main, sumInst
}

func TestRunInlinesSingleReturnCallee(t *testing.T) {
	mod, main, sum := buildAdd1Module(t)

	if err := Run(mod); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(mod.Functions) != 1 || mod.Functions[0] != main {
		t.Fatalf("expected only %q to remain in the module, got %v", main.Name, mod.Functions)
	}

	for _, block := range main.Blocks {
		for _, inst := range block.Insts {
			if inst.Op == ir.OpCall {
				t.Fatalf("module still contains a call instruction: %v", inst)
			}
		}
	}

	phi, ok := sum.Operands[0].(*ir.Inst)
	if !ok || phi.Op != ir.OpPhi {
		t.Fatalf("sum's first operand should have been replaced with the inlined return phi, got %#v", sum.Operands[0])
	}
	if len(phi.Operands) != 1 || len(phi.Blocks) != 1 {
		t.Fatalf("expected exactly one incoming value on the merged return phi, got %d", len(phi.Operands))
	}
	inlinedAdd, ok := phi.Operands[0].(*ir.Inst)
	if !ok || inlinedAdd.Op != ir.OpAdd {
		t.Fatalf("phi's incoming value should be the cloned callee body, got %#v", phi.Operands[0])
	}
	if inlinedAdd.Operands[0] != main.Args[0] {
		t.Fatalf("cloned callee body should reference the caller's argument, got %#v", inlinedAdd.Operands[0])
	}
}

func TestRunRejectsDirectRecursion(t *testing.T) {
	i32 := ir.Int(32)
	fn := &ir.Function{Name: "loopy", Typ: &ir.FunctionType{Return: i32, Params: nil}}
	block := &ir.BasicBlock{Name: "entry", Parent: fn}
	fn.Blocks = []*ir.BasicBlock{block}
	call := &ir.Inst{Op: ir.OpCall, Typ: i32, Callee: fn}
	block.Append(call)
	block.Append(&ir.Inst{Op: ir.OpReturn, Typ: ir.Void(), Operands: []ir.Value{call}})

	mod := &ir.Module{}
	mod.AddFunction(fn)

	err := Run(mod)
	if err == nil || !strings.Contains(err.Error(), "recursion") {
		t.Fatalf("expected a recursion error, got %v", err)
	}
}
