package ai

import (
	"log/slog"

	"wormwars/game/types"
)

// MaxBacktrack bounds the walk from the goal back to the first step.
const MaxBacktrack = 10_000

const rootID = 0

// PathingBot runs a greedy best-first search toward the food: the frontier is ordered by
// straight-line distance to the food of each candidate, not by accumulated path cost, so
// the path it finds is not necessarily the shortest one.
type PathingBot struct{}

func (PathingBot) Name() string { return "PathingBot" }

func (b PathingBot) Think(self Worm, snap *types.Snapshot, _ []Worm) types.Move {
	tree := newSearchTree(self.Head())
	frontier := NewFrontier()
	frontier.Push(tree.nodes[rootID])

	best := -1
	for !frontier.IsEmpty() {
		cur, err := frontier.Pop()
		if err != nil {
			break
		}
		// The root never counts as reaching the food; a worm standing on it has already eaten.
		if cur.id != rootID && cur.Cell == snap.Food {
			best = cur.id
			break
		}
		for _, m := range types.Moves {
			c := cur.Cell.Add(m)
			if self.IsBadMove(c, snap) || tree.visited(c) {
				continue
			}
			next := tree.add(Node{Priority: c.Distance(snap.Food), Cell: c, Move: m}, cur.id)
			frontier.Push(next)
		}
	}

	if best < 0 {
		if n, ok := tree.firstStep(); ok {
			slog.Debug("food unreachable, taking any safe step", "worm", self.ID(), "move", n.Move)
			return n.Move
		}
		slog.Debug("no safe move left", "worm", self.ID(), "head", self.Head())
		return types.Moves[0]
	}

	n, _ := tree.walkBack(best)
	return n.Move
}

// searchTree is the transient graph built by one decision. Nodes live in an arena and are
// addressed by index; every cell appears at most once, so the visited set and the
// backpointers are keyed by cell.
type searchTree struct {
	nodes    []Node
	index    map[types.Cell]int
	cameFrom map[types.Cell]int
}

func newSearchTree(head types.Cell) *searchTree {
	t := &searchTree{
		index:    make(map[types.Cell]int),
		cameFrom: make(map[types.Cell]int),
	}
	root := Node{Priority: 0, Cell: head, id: rootID}
	t.nodes = append(t.nodes, root)
	t.index[head] = rootID
	return t
}

func (t *searchTree) visited(c types.Cell) bool {
	_, ok := t.index[c]
	return ok
}

// add stores n in the arena with a backpointer to parent and returns it with its id set.
func (t *searchTree) add(n Node, parent int) Node {
	n.id = len(t.nodes)
	t.nodes = append(t.nodes, n)
	t.index[n.Cell] = n.id
	t.cameFrom[n.Cell] = parent
	return n
}

// firstStep returns the earliest explored node expanded directly from the root.
func (t *searchTree) firstStep() (Node, bool) {
	for _, n := range t.nodes[1:] {
		if p, ok := t.cameFrom[n.Cell]; ok && p == rootID {
			return n, true
		}
	}
	return Node{}, false
}

// walkBack follows backpointers from id while the parent's priority is positive. Only the
// root has priority zero, so it stops on the node one step from the root. It also returns
// the number of steps taken.
func (t *searchTree) walkBack(id int) (Node, int) {
	cur := id
	steps := 0
	for steps < MaxBacktrack {
		p, ok := t.cameFrom[t.nodes[cur].Cell]
		if !ok || t.nodes[p].Priority <= 0 {
			break
		}
		cur = p
		steps++
	}
	return t.nodes[cur], steps
}
