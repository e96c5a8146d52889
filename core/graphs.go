// This file contains thin wrappers around the graph module
// for managing the match pointers of the bracket divisions.
package core

import (
	"cmp"
	"errors"
	"fmt"
	"iter"
	"slices"

	"github.com/dominikbraun/graph"
)

var (
	ErrBracketCycle    = errors.New("the bracket pointers form a cycle")
	ErrBracketRoots    = errors.New("a bracket does not converge to exactly one final")
	ErrDanglingPointer = errors.New("a bracket pointer references an unknown match")
)

const (
	edgeKind        = "kind"
	edgeNext        = "next"
	edgeConsolation = "consolation"
)

func getMatchId(match *Match) string {
	return match.ID
}

type DependencyGraph[T any] struct {
	graph.Graph[string, T]
	adjacencyMap map[string]map[string]graph.Edge[string]
}

func (g *DependencyGraph[T]) BreadthSearchIter(start string) iter.Seq2[T, int] {
	iterator := func(yield func(v T, depth int) bool) {
		visitor := func(key string, depth int) bool {
			v, _ := g.Vertex(key)
			return !yield(v, depth)
		}
		graph.BFSWithDepth(g.Graph, start, visitor)
	}
	return iterator
}

// Returns the nodes that are on the outgoing edges of the given
// source node (the dependants).
func (g *DependencyGraph[T]) GetDependants(source string) []T {
	if g.adjacencyMap == nil {
		// The graphs do not change after their initialization
		g.adjacencyMap, _ = g.Graph.AdjacencyMap()
	}

	outEdges := g.adjacencyMap[source]
	dependants := make([]T, 0, len(outEdges))
	for k := range outEdges {
		dependant, _ := g.Vertex(k)
		dependants = append(dependants, dependant)
	}

	return dependants
}

// The BracketGraph has the matches of all bracket divisions of a
// tournament as its nodes. The directed edges follow the NextMatchID
// and ConsolationMatchID pointers, the path that the players take
// towards the finals.
//
// The graph is acyclic. Every bracket division has exactly one match
// without a next pointer, its final.
type BracketGraph struct {
	DependencyGraph[*Match]
	divisions []*Division
}

// NewBracketGraph builds the graph of the tournament's bracket divisions.
// Divisions of the group stage are left out.
func NewBracketGraph(t *Tournament) (*BracketGraph, error) {
	g := DependencyGraph[*Match]{
		Graph: graph.New(getMatchId, graph.Directed(), graph.Acyclic(), graph.PreventCycles()),
	}
	bracketGraph := &BracketGraph{DependencyGraph: g}

	for _, d := range t.Divisions {
		if !d.IsBracket() {
			continue
		}
		bracketGraph.divisions = append(bracketGraph.divisions, d)
		for _, m := range d.Matches {
			if err := bracketGraph.AddVertex(m); err != nil {
				return nil, fmt.Errorf("match %v: %w", m.ID, err)
			}
		}
	}

	for _, d := range bracketGraph.divisions {
		for _, m := range d.Matches {
			if err := bracketGraph.link(m, m.NextMatchID, edgeNext); err != nil {
				return nil, err
			}
			if err := bracketGraph.link(m, m.ConsolationMatchID, edgeConsolation); err != nil {
				return nil, err
			}
		}
	}

	return bracketGraph, nil
}

func (g *BracketGraph) link(source *Match, target, kind string) error {
	if target == "" {
		return nil
	}
	err := g.AddEdge(source.ID, target, graph.EdgeAttribute(edgeKind, kind))
	switch {
	case errors.Is(err, graph.ErrEdgeCreatesCycle):
		return fmt.Errorf("%w: %v -> %v", ErrBracketCycle, source.ID, target)
	case errors.Is(err, graph.ErrVertexNotFound):
		return fmt.Errorf("%w: %v -> %v", ErrDanglingPointer, source.ID, target)
	}
	return err
}

// Validate checks that every bracket division converges to one final.
func (g *BracketGraph) Validate() error {
	for _, d := range g.divisions {
		if len(d.Matches) == 0 {
			continue
		}
		roots := 0
		for _, m := range d.Matches {
			if m.NextMatchID == "" {
				roots += 1
			}
		}
		if roots != 1 {
			return fmt.Errorf("%w: division %v has %d", ErrBracketRoots, d.ID, roots)
		}
	}
	return nil
}

// Dependants returns the matches that the pairs of the given match
// move into next. The next match comes before the consolation match.
func (g *BracketGraph) Dependants(match *Match) []*Match {
	dependants := g.GetDependants(match.ID)
	slices.SortFunc(dependants, func(a, b *Match) int {
		return cmp.Compare(g.edgeRank(match, a), g.edgeRank(match, b))
	})
	return dependants
}

func (g *BracketGraph) edgeRank(source, target *Match) int {
	edge, ok := g.adjacencyMap[source.ID][target.ID]
	if ok && edge.Properties.Attributes[edgeKind] == edgeNext {
		return 0
	}
	return 1
}

// Downstream returns all matches that can be reached from the given
// match ordered by their distance.
func (g *BracketGraph) Downstream(match *Match) []*Match {
	downstream := make([]*Match, 0, 4)
	for m, depth := range g.BreadthSearchIter(match.ID) {
		if depth == 0 {
			continue
		}
		downstream = append(downstream, m)
	}
	return downstream
}

// ValidateBracket builds the bracket graph of the tournament
// and validates it.
func ValidateBracket(t *Tournament) error {
	g, err := NewBracketGraph(t)
	if err != nil {
		return err
	}
	return g.Validate()
}
