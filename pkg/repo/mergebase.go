package repo

import (
	"container/list"
	"fmt"

	"github.com/odvcencio/gitlet/pkg/object"
)

type mergeSide uint8

const (
	sideHead mergeSide = iota + 1
	sideOther
)

type splitQueueItem struct {
	hash object.Hash
	side mergeSide
}

// splitStepsLimit bounds FindSplitPoint. Tests may lower it.
var splitStepsLimit = maxTraversalSteps

// FindSplitPoint returns the split point of a and b: the first commit
// reached from both sides by a breadth-first walk seeded with a and b at
// once. Each dequeued commit records the side that reached it first; the
// first commit dequeued by the opposite side is returned. Returns
// (nil, nil) if the two histories share no commit.
//
// The layer order approximates the nearest common ancestor. It is not an
// exact lowest common ancestor for every DAG shape.
func (r *Repo) FindSplitPoint(a, b object.Hash) (*object.CommitObj, error) {
	seen := make(map[object.Hash]mergeSide)
	queued := map[mergeSide]map[object.Hash]bool{
		sideHead:  {a: true},
		sideOther: {b: true},
	}

	queue := list.New()
	queue.PushBack(splitQueueItem{hash: a, side: sideHead})
	queue.PushBack(splitQueueItem{hash: b, side: sideOther})

	for steps := 0; queue.Len() > 0; steps++ {
		if steps >= splitStepsLimit {
			return nil, fmt.Errorf("find split point: traversal exceeded maximum steps (%d)", splitStepsLimit)
		}
		item := queue.Remove(queue.Front()).(splitQueueItem)

		if first, ok := seen[item.hash]; ok {
			if first != item.side {
				return r.ReadCommit(item.hash)
			}
			continue
		}
		seen[item.hash] = item.side

		c, err := r.ReadCommit(item.hash)
		if err != nil {
			return nil, fmt.Errorf("find split point: %w", err)
		}
		for _, p := range c.Parents {
			if queued[item.side][p] {
				continue
			}
			queued[item.side][p] = true
			queue.PushBack(splitQueueItem{hash: p, side: item.side})
		}
	}
	return nil, nil
}
