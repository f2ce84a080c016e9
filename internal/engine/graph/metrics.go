package graph

import "sort"

// NodeMetrics summarizes one block's position in the dependency graph.
type NodeMetrics struct {
	FanIn  int // blocks that reference this one
	FanOut int // blocks this one references
}

// ComputeMetrics returns fan-in/fan-out for every node in order. Edges to
// nodes outside the graph are not counted; the index guarantees there are
// none, but the guard keeps the function total.
func ComputeMetrics(forward map[string][]string, order []string) map[string]NodeMetrics {
	known := make(map[string]bool, len(order))
	for _, id := range order {
		known[id] = true
	}

	fanIn := make(map[string]int, len(order))
	fanOut := make(map[string]int, len(order))
	for _, from := range order {
		for _, to := range forward[from] {
			if !known[to] {
				continue
			}
			fanOut[from]++
			fanIn[to]++
		}
	}

	metrics := make(map[string]NodeMetrics, len(order))
	for _, id := range order {
		metrics[id] = NodeMetrics{FanIn: fanIn[id], FanOut: fanOut[id]}
	}
	return metrics
}

// Components returns the strongly connected components of the forward graph,
// each sorted internally, in discovery order (Tarjan). Like DetectCycles the
// traversal is iterative with an explicit frame stack, so deep reference
// chains cannot exhaust the call stack.
func Components(forward map[string][]string, order []string) [][]string {
	index := 0
	stack := make([]string, 0, len(order))
	onStack := make(map[string]bool, len(order))
	indexByNode := make(map[string]int, len(order))
	lowLink := make(map[string]int, len(order))
	components := make([][]string, 0)

	type frame struct {
		node string
		next int
	}

	visit := func(v string) {
		indexByNode[v] = index
		lowLink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true
	}

	for _, root := range order {
		if _, seen := indexByNode[root]; seen {
			continue
		}
		visit(root)
		frames := []frame{{node: root}}

		for len(frames) > 0 {
			top := &frames[len(frames)-1]
			v := top.node
			neighbors := forward[v]

			if top.next < len(neighbors) {
				w := neighbors[top.next]
				top.next++
				if _, seen := indexByNode[w]; !seen {
					visit(w)
					frames = append(frames, frame{node: w})
				} else if onStack[w] && indexByNode[w] < lowLink[v] {
					lowLink[v] = indexByNode[w]
				}
				continue
			}

			frames = frames[:len(frames)-1]
			// propagate the low link to the parent on the way back up
			if len(frames) > 0 {
				parent := frames[len(frames)-1].node
				if lowLink[v] < lowLink[parent] {
					lowLink[parent] = lowLink[v]
				}
			}

			if lowLink[v] != indexByNode[v] {
				continue
			}
			component := make([]string, 0)
			for {
				last := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[last] = false
				component = append(component, last)
				if last == v {
					break
				}
			}
			sort.Strings(component)
			components = append(components, component)
		}
	}
	return components
}
