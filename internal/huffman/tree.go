// Copyright (c) Elliot Nunn
// Licensed under the MIT license

package huffman

import (
	"container/heap"
	"fmt"
	"slices"
)

// node is either a leaf (zero == -1) or an internal node with two children.
// Children are indices into the owning tree's arena.
type node struct {
	weight    int
	zero, one int
	sym       rune
}

func (n node) leaf() bool { return n.zero == -1 }

type tree struct {
	nodes []node
	root  int
}

// queue is a min-heap of arena indices ordered by weight alone.
type queue struct {
	t   *tree
	idx []int
}

func (q *queue) Len() int           { return len(q.idx) }
func (q *queue) Less(i, j int) bool { return q.t.nodes[q.idx[i]].weight < q.t.nodes[q.idx[j]].weight }
func (q *queue) Swap(i, j int)      { q.idx[i], q.idx[j] = q.idx[j], q.idx[i] }
func (q *queue) Push(x any)         { q.idx = append(q.idx, x.(int)) }
func (q *queue) Pop() any {
	n := len(q.idx)
	x := q.idx[n-1]
	q.idx = q.idx[:n-1]
	return x
}

// buildTree merges the two lightest nodes until one is left.
// Leaves enter the heap in code point order, so equal tables give equal trees.
func buildTree(freq Frequencies) (*tree, error) {
	if len(freq) == 0 {
		return nil, ErrEmptyInput
	}
	t := &tree{nodes: make([]node, 0, 2*len(freq)-1)}
	q := &queue{t: t, idx: make([]int, 0, len(freq))}
	for _, r := range freq.symbols() {
		n := freq[r]
		if n <= 0 {
			return nil, fmt.Errorf("huffman: frequency of %q is %d", r, n)
		}
		q.idx = append(q.idx, len(t.nodes))
		t.nodes = append(t.nodes, node{weight: n, zero: -1, one: -1, sym: r})
	}
	heap.Init(q)

	for q.Len() > 1 {
		a := heap.Pop(q).(int)
		b := heap.Pop(q).(int)
		t.nodes = append(t.nodes, node{
			weight: t.nodes[a].weight + t.nodes[b].weight,
			zero:   a,
			one:    b,
		})
		heap.Push(q, len(t.nodes)-1)
	}
	t.root = heap.Pop(q).(int)
	return t, nil
}

// depths walks the tree and groups leaves by depth.
// A root that is itself a leaf is given depth 1.
func (t *tree) depths() map[int][]rune {
	groups := make(map[int][]rune)
	if t.nodes[t.root].leaf() {
		groups[1] = []rune{t.nodes[t.root].sym}
		return groups
	}

	type visit struct{ idx, depth int }
	stack := []visit{{t.root, 0}}
	for len(stack) > 0 {
		v := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		n := t.nodes[v.idx]
		if n.leaf() {
			groups[v.depth] = append(groups[v.depth], n.sym)
			continue
		}
		stack = append(stack, visit{n.one, v.depth + 1}, visit{n.zero, v.depth + 1})
	}
	return groups
}

// Lengths builds a Huffman tree for freq and returns its leaf depths as a
// canonical length table.
func Lengths(freq Frequencies) (LengthTable, error) {
	t, err := buildTree(freq)
	if err != nil {
		return nil, err
	}
	groups := t.depths()
	lt := make(LengthTable, 0, len(groups))
	for length, syms := range groups {
		slices.Sort(syms)
		lt = append(lt, Group{Length: length, Symbols: syms})
	}
	slices.SortFunc(lt, func(a, b Group) int { return a.Length - b.Length })
	return lt, nil
}
