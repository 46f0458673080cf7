// Package graph indexes aspect records as a graph of celestial points
package graph

import (
	"github.com/ankek/terraform-provider-astrochart/internal/model"
)

// Node represents a celestial point in the aspect graph
type Node struct {
	Name  string
	Edges []*Edge
}

// Edge represents an aspect between two points
type Edge struct {
	From   *Node
	To     *Node
	Aspect model.Aspect
}

// Graph represents the complete aspect graph of a chart
type Graph struct {
	Nodes map[string]*Node
	Edges []*Edge
}

// edgeExists checks if an aspect of the same kind already links the two points
func (g *Graph) edgeExists(from, to *Node, kind string) bool {
	for _, edge := range from.Edges {
		if edge.To == to && edge.Aspect.Kind == kind {
			return true
		}
	}
	return false
}

// addEdge adds an edge only if it doesn't already exist
func (g *Graph) addEdge(from, to *Node, aspect model.Aspect) {
	if g.edgeExists(from, to, aspect.Kind) {
		return
	}

	edge := &Edge{
		From:   from,
		To:     to,
		Aspect: aspect,
	}

	g.Edges = append(g.Edges, edge)
	from.Edges = append(from.Edges, edge)
}

func (g *Graph) node(name string) *Node {
	if n, ok := g.Nodes[name]; ok {
		return n
	}
	n := &Node{
		Name:  name,
		Edges: make([]*Edge, 0),
	}
	g.Nodes[name] = n
	return n
}

// BuildGraph creates a graph from aspect records. Edges keep the record's direction:
// p1 is the source, p2 the target.
func BuildGraph(aspects []model.Aspect) *Graph {
	g := &Graph{
		Nodes: make(map[string]*Node),
		Edges: make([]*Edge, 0, len(aspects)),
	}

	for _, a := range aspects {
		from := g.node(a.P1Name)
		to := g.node(a.P2Name)
		g.addEdge(from, to, a)
	}

	return g
}

// Directed returns the first aspect recorded from p1 to p2
func (g *Graph) Directed(p1, p2 string) (model.Aspect, bool) {
	from, ok := g.Nodes[p1]
	if !ok {
		return model.Aspect{}, false
	}
	for _, edge := range from.Edges {
		if edge.To.Name == p2 {
			return edge.Aspect, true
		}
	}
	return model.Aspect{}, false
}

// Between returns the first aspect linking the two points in either direction
func (g *Graph) Between(a, b string) (model.Aspect, bool) {
	if aspect, ok := g.Directed(a, b); ok {
		return aspect, true
	}
	return g.Directed(b, a)
}

