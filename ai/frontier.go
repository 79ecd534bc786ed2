package ai

import (
	"container/heap"
	"errors"

	"wormwars/game/types"
)

// ErrEmptyFrontier is returned by Pop on an exhausted frontier.
var ErrEmptyFrontier = errors.New("ai: pop from empty frontier")

// Node is a search candidate. Priority is the straight-line distance from Cell to the food;
// Move is the step that produced it, zero for the search root.
type Node struct {
	Priority float64
	Cell     types.Cell
	Move     types.Move

	id  int // arena index
	seq int // insertion order, breaks exact priority ties
}

// Frontier is a min-priority queue of search nodes.
type Frontier struct {
	items nodeHeap
	seq   int
}

func NewFrontier() *Frontier {
	return &Frontier{}
}

func (f *Frontier) Push(n Node) {
	n.seq = f.seq
	f.seq++
	heap.Push(&f.items, n)
}

func (f *Frontier) PushAll(nodes []Node) {
	for _, n := range nodes {
		f.Push(n)
	}
}

// Pop removes the node with the smallest priority.
func (f *Frontier) Pop() (Node, error) {
	if f.IsEmpty() {
		return Node{}, ErrEmptyFrontier
	}
	return heap.Pop(&f.items).(Node), nil
}

func (f *Frontier) IsEmpty() bool {
	return len(f.items) == 0
}

func (f *Frontier) Len() int {
	return len(f.items)
}

type nodeHeap []Node

func (h nodeHeap) Len() int { return len(h) }

func (h nodeHeap) Less(i, j int) bool {
	if h[i].Priority != h[j].Priority {
		return h[i].Priority < h[j].Priority
	}
	return h[i].seq < h[j].seq
}

func (h nodeHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *nodeHeap) Push(x any) {
	*h = append(*h, x.(Node))
}

func (h *nodeHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
