// Package graph analyzes block dependency graphs: cycle detection, fan-in and
// fan-out, and strongly connected components.
package graph

// DetectCycles walks the forward graph depth-first and reports every cycle
// it encounters. Traversal is iterative with an explicit frame stack so deep
// reference chains cannot exhaust the call stack. Entry points follow the
// caller-supplied order (the index's insertion order). When a neighbor is
// already on the current path, the cycle is emitted as the path slice from
// that neighbor's first occurrence through the current node, with the start
// repeated at the end; traversal does not descend into it again. A fully
// processed node is never re-entered, so the first cycle found through each
// start node is the one reported. Cycles sharing nodes are not deduplicated.
func DetectCycles(forward map[string][]string, order []string) [][]string {
	var cycles [][]string
	visited := make(map[string]bool, len(forward))
	onPath := make(map[string]bool, len(forward))

	type frame struct {
		node string
		next int
	}

	for _, start := range order {
		if visited[start] {
			continue
		}
		stack := []frame{{node: start}}
		path := []string{start}
		visited[start] = true
		onPath[start] = true

		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			neighbors := forward[top.node]
			if top.next >= len(neighbors) {
				onPath[top.node] = false
				stack = stack[:len(stack)-1]
				path = path[:len(path)-1]
				continue
			}
			next := neighbors[top.next]
			top.next++

			if onPath[next] {
				for i, id := range path {
					if id == next {
						cycle := make([]string, 0, len(path)-i+1)
						cycle = append(cycle, path[i:]...)
						cycle = append(cycle, next)
						cycles = append(cycles, cycle)
						break
					}
				}
				continue
			}
			if visited[next] {
				continue
			}
			visited[next] = true
			onPath[next] = true
			stack = append(stack, frame{node: next})
			path = append(path, next)
		}
	}
	return cycles
}
