// Package agg rebuilds the entity hierarchy from class paths and aggregates
// indicators bottom-up over it.
package agg

import (
	"fmt"
	"math"
	"strings"

	"github.com/huangsam/codequal/schema"
)

// Universe is the ordered set of every prefix of every entity path.
// Order is first discovery.
type Universe struct {
	order    []string
	set      map[string]struct{}
	children map[string][]string // parent path -> direct children in discovery order
}

// NewUniverse collects all prefixes of the given paths. For each path, prefixes are
// visited from longest to shortest and the walk stops at the first prefix already
// present, since every shorter prefix is then present too.
func NewUniverse(paths []string) *Universe {
	u := &Universe{
		set:      make(map[string]struct{}),
		children: make(map[string][]string),
	}
	for _, p := range paths {
		for prefix := p; prefix != ""; prefix = parentOf(prefix) {
			if _, ok := u.set[prefix]; ok {
				break
			}
			u.add(prefix)
		}
	}
	return u
}

func (u *Universe) add(p string) {
	u.set[p] = struct{}{}
	u.order = append(u.order, p)
	parent := parentOf(p)
	u.children[parent] = append(u.children[parent], p)
}

// parentOf drops the last '/' segment. A single segment has the empty parent.
func parentOf(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[:i]
	}
	return ""
}

// Children returns the direct children of a path, in discovery order.
func (u *Universe) Children(parent string) []string {
	return u.children[parent]
}

// Contains reports whether the path is in the universe.
func (u *Universe) Contains(p string) bool {
	_, ok := u.set[p]
	return ok
}

// Paths returns every path in discovery order.
func (u *Universe) Paths() []string {
	return u.order
}

// Len returns the number of paths.
func (u *Universe) Len() int {
	return len(u.order)
}

// RootName names the tree root of a project version.
func RootName(project, version string) string {
	return fmt.Sprintf("%s(%s)", project, version)
}

// buildFrame is one pending node of the post-order walk.
type buildFrame struct {
	node     *schema.HierarchyNode
	children []string
	next     int
}

// Build folds the class table into a tree rooted at {project}({version}). The fold
// starts at the shortName path. A child found in the table is a leaf carrying the
// class indicators; any other child is expanded. Every internal node carries the
// sum of its direct children. The walk uses an explicit stack so deep paths do not
// grow the goroutine stack.
func Build(table *schema.ClassTable, project, version, shortName string) *schema.HierarchyNode {
	u := NewUniverse(table.Paths())
	root := &schema.HierarchyNode{Name: RootName(project, version), Children: []*schema.HierarchyNode{}}

	stack := []*buildFrame{{node: root, children: u.Children(shortName)}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		if top.next == len(top.children) {
			for _, c := range top.node.Children {
				top.node.Add(c.Indicators)
			}
			stack = stack[:len(stack)-1]
			continue
		}

		path := top.children[top.next]
		top.next++
		child := &schema.HierarchyNode{Name: path, Children: []*schema.HierarchyNode{}}
		top.node.Children = append(top.node.Children, child)

		if row, ok := table.Lookup(path); ok {
			child.Indicators = row.Indicators
			continue
		}
		stack = append(stack, &buildFrame{node: child, children: u.Children(path)})
	}
	return root
}

// Walk visits every node in depth-first pre-order with its depth (root = 0).
// Returning false from fn skips the node's children.
func Walk(root *schema.HierarchyNode, fn func(node *schema.HierarchyNode, depth int) bool) {
	type item struct {
		node  *schema.HierarchyNode
		depth int
	}
	stack := []item{{root, 0}}
	for len(stack) > 0 {
		it := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(it.node, it.depth) {
			continue
		}
		for i := len(it.node.Children) - 1; i >= 0; i-- {
			stack = append(stack, item{it.node.Children[i], it.depth + 1})
		}
	}
}

// Round2 rounds to two decimals for chart values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Extract returns a single-indicator copy of the tree for hierarchical charts,
// with values rounded to two decimals.
func Extract(root *schema.HierarchyNode, ind schema.Indicator) schema.ChartNode {
	type pair struct {
		src *schema.HierarchyNode
		dst *schema.ChartNode
	}
	out := schema.ChartNode{}
	stack := []pair{{root, &out}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		p.dst.Name = p.src.Name
		p.dst.Value = Round2(p.src.Get(ind))
		if len(p.src.Children) == 0 {
			continue
		}
		// Children are allocated once so the pointers below stay valid.
		p.dst.Children = make([]schema.ChartNode, len(p.src.Children))
		for i, c := range p.src.Children {
			stack = append(stack, pair{c, &p.dst.Children[i]})
		}
	}
	return out
}

// Count returns the number of nodes and leaves in the tree.
func Count(root *schema.HierarchyNode) (nodes, leaves int) {
	Walk(root, func(n *schema.HierarchyNode, _ int) bool {
		nodes++
		if n.IsLeaf() {
			leaves++
		}
		return true
	})
	return nodes, leaves
}
