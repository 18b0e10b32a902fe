package kst

import "sort"

// PrerequisiteGraph is a directed acyclic graph on a Domain whose edges
// represent direct prerequisites: edge (p, q) means p must be learned
// directly before q.
type PrerequisiteGraph struct {
	domain Domain
	edges  []Edge
	adj    map[string][]string // p -> sorted direct successors
	radj   map[string][]string // q -> sorted direct predecessors
}

// NewPrerequisiteGraph builds a PrerequisiteGraph and validates it: every
// edge endpoint must be in the domain (UnknownItemError), self-loops are
// rejected as a length-1 cycle, and the resulting graph must be acyclic
// (CyclicPrerequisitesError) via a DFS-based topological check.
func NewPrerequisiteGraph(domain Domain, edges []Edge) (PrerequisiteGraph, error) {
	adj := make(map[string][]string)
	radj := make(map[string][]string)
	for _, e := range edges {
		if err := domain.checkIDs(e.From, e.To); err != nil {
			return PrerequisiteGraph{}, err
		}
		if e.From == e.To {
			return PrerequisiteGraph{}, &CyclicPrerequisitesError{Cycle: []string{e.From, e.From}}
		}
		adj[e.From] = append(adj[e.From], e.To)
		radj[e.To] = append(radj[e.To], e.From)
	}
	for _, id := range domain.ItemIDs() {
		sort.Strings(adj[id])
		sort.Strings(radj[id])
	}

	g := PrerequisiteGraph{domain: domain, edges: append([]Edge(nil), edges...), adj: adj, radj: radj}
	if cycle := g.findCycle(); cycle != nil {
		return PrerequisiteGraph{}, &CyclicPrerequisitesError{Cycle: cycle}
	}
	return g, nil
}

// findCycle runs a three-color DFS and returns the item ids along a cycle
// (closed, first == last) if one exists, or nil if the graph is acyclic.
func (g PrerequisiteGraph) findCycle() []string {
	const (
		white = 0
		gray  = 1
		black = 2
	)
	color := make(map[string]int, g.domain.Len())
	var stack []string
	var cycle []string

	var visit func(id string) bool
	visit = func(id string) bool {
		color[id] = gray
		stack = append(stack, id)
		for _, next := range g.adj[id] {
			switch color[next] {
			case white:
				if visit(next) {
					return true
				}
			case gray:
				start := 0
				for i := len(stack) - 1; i >= 0; i-- {
					if stack[i] == next {
						start = i
						break
					}
				}
				cycle = append(append([]string{}, stack[start:]...), next)
				return true
			}
		}
		stack = stack[:len(stack)-1]
		color[id] = black
		return false
	}

	for _, id := range g.domain.ItemIDs() {
		if color[id] == white {
			if visit(id) {
				return cycle
			}
		}
	}
	return nil
}

// Domain returns the underlying domain.
func (g PrerequisiteGraph) Domain() Domain {
	return g.domain
}

// Edges returns the direct-prerequisite edges, sorted by (from, to).
func (g PrerequisiteGraph) Edges() []Edge {
	out := append([]Edge(nil), g.edges...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// DirectPrerequisites returns the direct predecessors of q (parents).
func (g PrerequisiteGraph) DirectPrerequisites(q string) []string {
	return append([]string(nil), g.radj[q]...)
}

// DirectDependents returns the direct successors of q (children).
func (g PrerequisiteGraph) DirectDependents(q string) []string {
	return append([]string(nil), g.adj[q]...)
}

// TopologicalOrders enumerates every topological ordering of the DAG by
// backtracking over the set of nodes with zero remaining in-degree. The
// orders are not produced lazily: the whole list is built before it is
// returned, so its size grows with the number of orderings (|Q|! for a
// domain with no edges). Each prefix of a returned order induces a
// downset of the corresponding surmise relation.
func (g PrerequisiteGraph) TopologicalOrders() [][]string {
	ids := g.domain.ItemIDs()
	indegree := make(map[string]int, len(ids))
	for _, id := range ids {
		indegree[id] = len(g.radj[id])
	}

	var out [][]string
	order := make([]string, 0, len(ids))
	visited := make(map[string]bool, len(ids))

	var backtrack func()
	backtrack = func() {
		if len(order) == len(ids) {
			out = append(out, append([]string(nil), order...))
			return
		}
		for _, id := range ids {
			if visited[id] || indegree[id] != 0 {
				continue
			}
			visited[id] = true
			order = append(order, id)
			for _, next := range g.adj[id] {
				indegree[next]--
			}

			backtrack()

			for _, next := range g.adj[id] {
				indegree[next]++
			}
			order = order[:len(order)-1]
			visited[id] = false
		}
	}
	backtrack()
	return out
}

// ToSurmiseRelation computes the transitive closure of the DAG: a surmise
// relation containing every reflexive pair plus every (p, q) reachable by
// a directed path p →* q.
func (g PrerequisiteGraph) ToSurmiseRelation() (SurmiseRelation, error) {
	ids := g.domain.ItemIDs()
	set := make(map[[2]string]struct{}, len(ids)*len(ids))
	for _, id := range ids {
		set[[2]string{id, id}] = struct{}{}
	}
	for _, src := range ids {
		for _, dst := range g.reachableFrom(src) {
			set[[2]string{src, dst}] = struct{}{}
		}
	}
	return buildSurmiseRelation(g.domain, set), nil
}

// reachableFrom performs a DFS from src over g.adj and returns every node
// strictly reachable from src (src excluded).
func (g PrerequisiteGraph) reachableFrom(src string) []string {
	visited := make(map[string]bool)
	var stack []string
	stack = append(stack, g.adj[src]...)
	var out []string
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if visited[id] {
			continue
		}
		visited[id] = true
		out = append(out, id)
		stack = append(stack, g.adj[id]...)
	}
	sort.Strings(out)
	return out
}

// TransitiveReduction returns the minimum-edge DAG with the same
// reachability as g: an edge (p, q) survives iff there is no other path
// from p to q besides the direct edge.
func (g PrerequisiteGraph) TransitiveReduction() (PrerequisiteGraph, error) {
	rel, err := g.ToSurmiseRelation()
	if err != nil {
		return PrerequisiteGraph{}, err
	}
	var reduced []Edge
	for _, e := range g.edges {
		redundant := false
		for _, mid := range g.adj[e.From] {
			if mid == e.To {
				continue
			}
			if contains(rel.PrerequisitesOf(e.To), mid) && contains(rel.DependentsOf(e.From), mid) {
				redundant = true
				break
			}
		}
		if !redundant {
			reduced = append(reduced, e)
		}
	}
	return NewPrerequisiteGraph(g.domain, reduced)
}

func contains(ss []string, s string) bool {
	for _, x := range ss {
		if x == s {
			return true
		}
	}
	return false
}

// LongestPath returns a witness for the longest directed path in the DAG
// (by edge count) and its length. Isolated items have length 0. Ties are
// broken deterministically by iterating candidates in id order.
func (g PrerequisiteGraph) LongestPath() (path []Item, length int) {
	ids := g.domain.ItemIDs()
	indegree := make(map[string]int, len(ids))
	for _, id := range ids {
		indegree[id] = len(g.radj[id])
	}

	// Kahn's algorithm to get a deterministic topological order.
	var topo []string
	queue := make([]string, 0, len(ids))
	for _, id := range ids {
		if indegree[id] == 0 {
			queue = append(queue, id)
		}
	}
	for len(queue) > 0 {
		sort.Strings(queue)
		id := queue[0]
		queue = queue[1:]
		topo = append(topo, id)
		for _, next := range g.adj[id] {
			indegree[next]--
			if indegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	dist := make(map[string]int, len(ids))
	prev := make(map[string]string, len(ids))
	for _, id := range topo {
		for _, next := range g.adj[id] {
			if dist[id]+1 > dist[next] {
				dist[next] = dist[id] + 1
				prev[next] = id
			}
		}
	}

	best := ""
	bestLen := -1
	for _, id := range ids {
		if dist[id] > bestLen {
			bestLen = dist[id]
			best = id
		}
	}
	if best == "" {
		return nil, 0
	}

	var rev []string
	for cur := best; ; {
		rev = append(rev, cur)
		p, ok := prev[cur]
		if !ok {
			break
		}
		cur = p
	}
	for i := len(rev) - 1; i >= 0; i-- {
		it, _ := g.domain.Item(rev[i])
		path = append(path, it)
	}
	return path, bestLen
}
