// Package codetree builds Huffman code trees from byte frequencies.
//
// The tree is an arena of nodes addressed by index. It only lives long
// enough to read off code lengths; the canonical package derives codewords
// from those lengths alone.
package codetree

import (
	"container/heap"
	"errors"
)

// ErrEmptyAlphabet is returned when every frequency is zero.
var ErrEmptyAlphabet = errors.New("empty alphabet")

// Kind tags a node as a leaf or a branch.
type Kind uint8

const (
	Leaf Kind = iota
	Branch
)

// Node is one arena slot. Leaves use Symbol; branches use Left and Right.
type Node struct {
	Kind   Kind
	Symbol byte
	Left   int32
	Right  int32
	Weight uint64
}

// Tree is a Huffman tree over byte symbols.
type Tree struct {
	nodes []Node
	root  int32
}

// Root returns the index of the root node.
func (t *Tree) Root() int32 { return t.root }

// Node returns the node at index i.
func (t *Tree) Node(i int32) Node { return t.nodes[i] }

// Len returns the number of nodes in the arena.
func (t *Tree) Len() int { return len(t.nodes) }

// Build constructs a Huffman tree from a 256-entry frequency table.
// Zero-frequency symbols are left out. Ties on weight are broken by
// insertion order: leaves in ascending symbol order, then branches in the
// order they are created, so the same input always yields the same tree.
func Build(freqs *[256]uint64) (*Tree, error) {
	t := &Tree{nodes: make([]Node, 0, 2*256-1)}
	q := make(queue, 0, 256)
	for sym, f := range freqs {
		if f == 0 {
			continue
		}
		idx := t.add(Node{Kind: Leaf, Symbol: byte(sym), Weight: f})
		q = append(q, item{weight: f, seq: idx, node: idx})
	}
	if len(q) == 0 {
		return nil, ErrEmptyAlphabet
	}
	heap.Init(&q)

	for q.Len() > 1 {
		a := heap.Pop(&q).(item)
		b := heap.Pop(&q).(item)
		w := a.weight + b.weight
		idx := t.add(Node{Kind: Branch, Left: a.node, Right: b.node, Weight: w})
		heap.Push(&q, item{weight: w, seq: idx, node: idx})
	}
	t.root = heap.Pop(&q).(item).node
	return t, nil
}

func (t *Tree) add(n Node) int32 {
	t.nodes = append(t.nodes, n)
	return int32(len(t.nodes) - 1)
}

// Lengths returns each symbol's leaf depth; absent symbols get 0.
// A tree with a single leaf reports length 1 for that symbol.
func (t *Tree) Lengths() [256]uint8 {
	var lengths [256]uint8
	root := t.nodes[t.root]
	if root.Kind == Leaf {
		lengths[root.Symbol] = 1
		return lengths
	}

	type frame struct {
		node  int32
		depth uint8
	}
	stack := []frame{{node: t.root}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[f.node]
		switch n.Kind {
		case Leaf:
			lengths[n.Symbol] = f.depth
		case Branch:
			stack = append(stack, frame{node: n.Right, depth: f.depth + 1})
			stack = append(stack, frame{node: n.Left, depth: f.depth + 1})
		}
	}
	return lengths
}

type item struct {
	weight uint64
	seq    int32
	node   int32
}

// queue is a min-heap on (weight, seq).
type queue []item

func (q queue) Len() int { return len(q) }
func (q queue) Less(i, j int) bool {
	if q[i].weight != q[j].weight {
		return q[i].weight < q[j].weight
	}
	return q[i].seq < q[j].seq
}
func (q queue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *queue) Push(x any)   { *q = append(*q, x.(item)) }
func (q *queue) Pop() any {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}
