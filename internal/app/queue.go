package app

import "image"

// pendingRegion is one coalesced refresh window waiting to be processed.
type pendingRegion struct {
	rect      image.Rectangle
	fourLevel bool
}

// regionQueue is the coalescing buffer for dirty windows: an ordered FIFO of
// not-yet-processed regions plus a drain-in-progress flag.
//
// The queue is owned by the engine goroutine; the flag transitions are
// evaluated synchronously, so at most one drain pass is ever pending or
// running per queue.
type regionQueue struct {
	pending  []pendingRegion
	draining bool
}

// push appends a region to the tail. It returns true when the queue was idle
// immediately before the call, meaning the caller must schedule exactly one
// drain pass. Pushes while a drain is pending or running only grow the tail.
func (q *regionQueue) push(r pendingRegion) bool {
	q.pending = append(q.pending, r)
	if q.draining {
		return false
	}
	q.draining = true
	return true
}

// pop removes and returns the head of the queue. When the queue is empty it
// returns false and the queue transitions back to idle.
func (q *regionQueue) pop() (pendingRegion, bool) {
	if len(q.pending) == 0 {
		q.draining = false
		return pendingRegion{}, false
	}
	head := q.pending[0]
	q.pending = q.pending[1:]
	return head, true
}

// clear empties the queue and cancels any pending drain. Called when a full
// refresh begins, since a full-screen repaint subsumes all pending partial
// updates.
func (q *regionQueue) clear() {
	q.pending = q.pending[:0]
	q.draining = false
}

// idle reports whether the queue is empty with no drain pending.
func (q *regionQueue) idle() bool {
	return !q.draining && len(q.pending) == 0
}

// size returns the number of queued regions.
func (q *regionQueue) size() int {
	return len(q.pending)
}
