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

// Package inline implements the function inliner: every call instruction
// in a module is replaced by a clone of its callee's body, and callees
// with no remaining call sites are dropped from the module.
package inline

import (
	"go.uber.org/multierr"
	"golang.org/x/exp/maps"

	"github.com/gx-org/tkdispatch/internal/ierrors"
	"github.com/gx-org/tkdispatch/ir"
)

// Run inlines every call in mod and removes fully-inlined callees. It
// refuses to run at all if the call graph has a cycle (mutual or direct
// recursion): every independent cycle is collected and returned together
// via multierr rather than failing fast on the first one found.
func Run(mod *ir.Module) error {
	if err := checkNoCycles(mod); err != nil {
		return err
	}
	sites := collectCallSites(mod)
	for {
		callee := pickCalleeWithSites(mod, sites)
		if callee == nil {
			break
		}
		for _, call := range sites[callee] {
			if err := inlineOne(callee, call, sites); err != nil {
				return err
			}
		}
		delete(sites, callee)
		mod.RemoveFunction(callee)
	}
	return nil
}

// pickCalleeWithSites returns a function in mod that still has pending
// call sites, or nil if none remain. Iterating mod.Functions (rather than
// the sites map directly) keeps removal order deterministic.
func pickCalleeWithSites(mod *ir.Module, sites map[*ir.Function][]*ir.Inst) *ir.Function {
	for _, fn := range mod.Functions {
		if len(sites[fn]) > 0 {
			return fn
		}
	}
	return nil
}

// collectCallSites walks every function's blocks' instructions and
// records each call under its callee.
func collectCallSites(mod *ir.Module) map[*ir.Function][]*ir.Inst {
	sites := make(map[*ir.Function][]*ir.Inst)
	for _, fn := range mod.Functions {
		for _, block := range fn.Blocks {
			for _, inst := range block.Insts {
				if inst.Op == ir.OpCall && inst.Callee != nil {
					sites[inst.Callee] = append(sites[inst.Callee], inst)
				}
			}
		}
	}
	return sites
}

// checkNoCycles builds the caller->callee call graph and reports, via
// Tarjan's algorithm, every strongly connected component with more than
// one function or a self-loop -- i.e. every mutual or direct recursion
// cycle -- rather than stopping at the first one found.
func checkNoCycles(mod *ir.Module) error {
	edges := make(map[*ir.Function]map[*ir.Function]bool)
	for _, fn := range mod.Functions {
		edges[fn] = make(map[*ir.Function]bool)
		for _, block := range fn.Blocks {
			for _, inst := range block.Insts {
				if inst.Op == ir.OpCall && inst.Callee != nil {
					edges[fn][inst.Callee] = true
				}
			}
		}
	}
	sccs := tarjanSCCs(mod.Functions, edges)
	var errs []error
	for _, scc := range sccs {
		if len(scc) > 1 {
			errs = append(errs, ierrors.Semantic("inliner: mutual recursion cycle among functions %v", names(scc)))
			continue
		}
		fn := scc[0]
		if edges[fn][fn] {
			errs = append(errs, ierrors.Semantic("inliner: direct recursion in function %q", fn.Name))
		}
	}
	return multierr.Combine(errs...)
}

func names(fns []*ir.Function) []string {
	out := make([]string, len(fns))
	for i, fn := range fns {
		out[i] = fn.Name
	}
	return out
}

// tarjanSCCs returns the strongly connected components of the graph
// described by edges, in an order where a component has no edge to a
// component discovered after it.
func tarjanSCCs(fns []*ir.Function, edges map[*ir.Function]map[*ir.Function]bool) [][]*ir.Function {
	type state struct {
		index, lowlink int
		onStack        bool
	}
	index := 0
	states := make(map[*ir.Function]*state)
	var stack []*ir.Function
	var sccs [][]*ir.Function

	var strongconnect func(v *ir.Function)
	strongconnect = func(v *ir.Function) {
		st := &state{index: index, lowlink: index, onStack: true}
		states[v] = st
		index++
		stack = append(stack, v)

		neighbors := maps.Keys(edges[v])
		for _, w := range neighbors {
			if ws, ok := states[w]; !ok {
				strongconnect(w)
				if states[w].lowlink < st.lowlink {
					st.lowlink = states[w].lowlink
				}
			} else if ws.onStack {
				if ws.index < st.lowlink {
					st.lowlink = ws.index
				}
			}
		}

		if st.lowlink == st.index {
			var scc []*ir.Function
			for {
				n := len(stack) - 1
				w := stack[n]
				stack = stack[:n]
				states[w].onStack = false
				scc = append(scc, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, scc)
		}
	}

	for _, fn := range fns {
		if _, ok := states[fn]; !ok {
			strongconnect(fn)
		}
	}
	return sccs
}
