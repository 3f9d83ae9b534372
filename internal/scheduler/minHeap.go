package scheduler

import "container/heap"

// PriorityQueue orders tasks by ExecuteAt, earliest first.
type PriorityQueue []*Task

func (pq PriorityQueue) Len() int { return len(pq) }

func (pq PriorityQueue) Less(i, j int) bool {
	return pq[i].ExecuteAt.Before(pq[j].ExecuteAt)
}

func (pq PriorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *PriorityQueue) Push(x any) {
	task := x.(*Task)
	task.index = len(*pq)
	*pq = append(*pq, task)
}

func (pq *PriorityQueue) Pop() any {
	old := *pq
	n := len(old)
	task := old[n-1]
	old[n-1] = nil
	task.index = -1
	*pq = old[0 : n-1]
	return task
}

func (pq *PriorityQueue) Peek() *Task {
	if pq.Len() == 0 {
		return nil
	}
	return (*pq)[0]
}

func BuildMinHeap() *PriorityQueue {
	minHeap := &PriorityQueue{}
	heap.Init(minHeap)
	return minHeap
}
