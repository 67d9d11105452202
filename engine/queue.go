package engine

import (
	"container/heap"

	"github.com/stusiojan/CityWeaver/model"
)

// roadQueueEntry schedules one candidate for evaluation at a tick.
type roadQueueEntry struct {
	tick  int
	attrs model.RoadAttributes
	query model.QueryAttributes
}

// roadQueue is a binary min-heap keyed on tick. Entries with equal tick
// pop in unspecified relative order.
type roadQueue []roadQueueEntry

func (q roadQueue) Len() int           { return len(q) }
func (q roadQueue) Less(i, j int) bool { return q[i].tick < q[j].tick }
func (q roadQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }
func (q *roadQueue) Push(x any)        { *q = append(*q, x.(roadQueueEntry)) }
func (q *roadQueue) Pop() any {
	old := *q
	n := len(old)
	e := old[n-1]
	*q = old[:n-1]
	return e
}

func (q *roadQueue) push(e roadQueueEntry) { heap.Push(q, e) }

func (q *roadQueue) pop() roadQueueEntry { return heap.Pop(q).(roadQueueEntry) }
