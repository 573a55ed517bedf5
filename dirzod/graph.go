// SPDX-FileCopyrightText: 2026 The dirzod authors
// SPDX-License-Identifier: MPL-2.0

package dirzod

import (
	"github.com/hashicorp/go-set/v3"
)

// graph is the collection reference graph: an edge A -> B means A's schema
// mentions B's schema, so a cycle means neither file can evaluate the other
// eagerly. Node and edge order is insertion order, keeping every derived
// order deterministic.
type graph struct {
	order []string
	nodes *set.Set[string]
	edges map[string][]string
	seen  *set.Set[string]
}

func newGraph() *graph {
	return &graph{
		nodes: set.New[string](0),
		edges: make(map[string][]string),
		seen:  set.New[string](0),
	}
}

func (g *graph) addNode(n string) {
	if g.nodes.Contains(n) {
		return
	}
	g.nodes.Insert(n)
	g.order = append(g.order, n)
}

// addEdge records a reference. Edges to unknown nodes are dropped; those
// references degrade to key-only schemas and cannot form cycles.
func (g *graph) addEdge(from, to string) {
	if !g.nodes.Contains(from) || !g.nodes.Contains(to) {
		return
	}
	if g.seen.Contains(from + "\x00" + to) {
		return
	}
	g.seen.Insert(from + "\x00" + to)
	g.edges[from] = append(g.edges[from], to)
}

// cyclic returns every node that sits on a cycle, self-loops included.
// Tarjan's strongly-connected-components algorithm, run iteratively with
// an explicit frame stack: a node is on a cycle iff its component has more
// than one member, or it has an edge to itself.
func (g *graph) cyclic() *set.Set[string] {
	result := set.New[string](0)
	index := make(map[string]int, len(g.order))
	low := make(map[string]int, len(g.order))
	onStack := make(map[string]bool, len(g.order))
	var stack []string
	next := 0

	type frame struct {
		node string
		edge int
	}

	for _, root := range g.order {
		if _, visited := index[root]; visited {
			continue
		}
		index[root], low[root] = next, next
		next++
		stack = append(stack, root)
		onStack[root] = true
		frames := []frame{{node: root}}

		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.edge < len(g.edges[f.node]) {
				w := g.edges[f.node][f.edge]
				f.edge++
				if w == f.node {
					result.Insert(w)
					continue
				}
				if _, visited := index[w]; !visited {
					index[w], low[w] = next, next
					next++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, frame{node: w})
				} else if onStack[w] && index[w] < low[f.node] {
					low[f.node] = index[w]
				}
				continue
			}

			n := f.node
			frames = frames[:len(frames)-1]
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if low[n] < low[parent] {
					low[parent] = low[n]
				}
			}
			if low[n] == index[n] {
				var scc []string
				for {
					w := stack[len(stack)-1]
					stack = stack[:len(stack)-1]
					onStack[w] = false
					scc = append(scc, w)
					if w == n {
						break
					}
				}
				if len(scc) > 1 {
					result.InsertSlice(scc)
				}
			}
		}
	}
	return result
}

// sorted returns the nodes dependencies-first (for A -> B, B comes before
// A). Within a cycle the order follows the DFS, which is insertion order.
func (g *graph) sorted() []string {
	out := make([]string, 0, len(g.order))
	done := set.New[string](len(g.order))
	visiting := set.New[string](0)

	type frame struct {
		node string
		edge int
	}

	for _, root := range g.order {
		if done.Contains(root) {
			continue
		}
		frames := []frame{{node: root}}
		visiting.Insert(root)
		for len(frames) > 0 {
			f := &frames[len(frames)-1]
			if f.edge < len(g.edges[f.node]) {
				w := g.edges[f.node][f.edge]
				f.edge++
				if done.Contains(w) || visiting.Contains(w) {
					continue
				}
				visiting.Insert(w)
				frames = append(frames, frame{node: w})
				continue
			}
			frames = frames[:len(frames)-1]
			done.Insert(f.node)
			out = append(out, f.node)
		}
	}
	return out
}
