package blocks

import (
	"container/heap"
	"time"

	"github.com/dekarrin/shrdlite/internal/planerr"
)

// File search.go implements A* Search: best-first search over world states
// driven by the Heuristic, expanding via the World Successor, terminating
// on goal, on an exhausted frontier, or on a caller-supplied time budget.
// The priority queue is built on container/heap, the standard library's
// binary-heap container - no third-party priority queue is warranted for a
// handful of int comparisons.

// cameFromEdge records, for one state key, the predecessor key and the
// action that produced it - the parent-pointer chain path reconstruction
// walks backward from the goal.
type cameFromEdge struct {
	prev   Key
	action Action
}

// frontierItem is one entry in the open set: a world state, its key, its
// cost-so-far, its f = g+h priority, and an insertion sequence number used
// to break ties deterministically.
type frontierItem struct {
	world *World
	key   Key
	g     int
	f     int
	seq   int
}

type frontier []*frontierItem

func (q frontier) Len() int { return len(q) }

func (q frontier) Less(i, j int) bool {
	if q[i].f != q[j].f {
		return q[i].f < q[j].f
	}
	return q[i].seq < q[j].seq
}

func (q frontier) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *frontier) Push(x interface{}) {
	*q = append(*q, x.(*frontierItem))
}

func (q *frontier) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Search runs A* from start toward goal, returning the ordered primitive
// actions of an optimal plan. budget bounds wall-clock time; exceeding it,
// or exhausting the frontier without reaching the goal, both surface as the
// same "out of time" error, per the error taxonomy.
func Search(start *World, goal Goal, budget time.Duration) ([]Action, error) {
	deadline := time.Now().Add(budget)

	startKey := start.StateKey()
	open := &frontier{{world: start, key: startKey, g: 0, f: HeuristicGoal(goal, start), seq: 0}}
	heap.Init(open)

	seq := 1
	bestG := map[Key]int{startKey: 0}
	cameFrom := map[Key]cameFromEdge{}
	visited := map[Key]bool{}

	for open.Len() > 0 {
		if time.Now().After(deadline) {
			return nil, planerr.New(planerr.MsgNoTimeToFigureOut)
		}

		item := heap.Pop(open).(*frontierItem)
		if visited[item.key] {
			continue
		}

		if IsGoalTrue(goal, item.world) {
			return reconstruct(cameFrom, startKey, item.key), nil
		}
		visited[item.key] = true

		for _, edge := range Successors(item.world) {
			nextKey := edge.Next.StateKey()
			tentativeG := item.g + 1

			if bg, ok := bestG[nextKey]; ok && tentativeG >= bg {
				continue
			}
			bestG[nextKey] = tentativeG
			cameFrom[nextKey] = cameFromEdge{prev: item.key, action: edge.Action}

			h := HeuristicGoal(goal, edge.Next)
			heap.Push(open, &frontierItem{world: edge.Next, key: nextKey, g: tentativeG, f: tentativeG + h, seq: seq})
			seq++
		}
	}

	return nil, planerr.New(planerr.MsgNoTimeToFigureOut)
}

// reconstruct walks cameFrom backward from goalKey to startKey and reverses
// the collected actions into forward order.
func reconstruct(cameFrom map[Key]cameFromEdge, startKey, goalKey Key) []Action {
	var actions []Action
	for cur := goalKey; cur != startKey; {
		edge := cameFrom[cur]
		actions = append(actions, edge.action)
		cur = edge.prev
	}
	for i, j := 0, len(actions)-1; i < j; i, j = i+1, j-1 {
		actions[i], actions[j] = actions[j], actions[i]
	}
	return actions
}
