package app

import (
	"image"
	"testing"
)

func TestRegionQueue_PushSchedulesOnce(t *testing.T) {
	var q regionQueue

	if !q.push(pendingRegion{rect: image.Rect(0, 0, 32, 10)}) {
		t.Error("first push = false, want true (drain must be scheduled)")
	}
	if q.push(pendingRegion{rect: image.Rect(32, 0, 64, 10)}) {
		t.Error("second push = true, want false (drain already pending)")
	}
	if q.size() != 2 {
		t.Errorf("size = %d, want 2", q.size())
	}
}

func TestRegionQueue_PopFIFO(t *testing.T) {
	var q regionQueue
	a := pendingRegion{rect: image.Rect(0, 0, 32, 10)}
	b := pendingRegion{rect: image.Rect(32, 0, 64, 10), fourLevel: true}
	q.push(a)
	q.push(b)

	got, ok := q.pop()
	if !ok || got != a {
		t.Errorf("pop = %v, %v; want %v, true", got, ok, a)
	}
	got, ok = q.pop()
	if !ok || got != b {
		t.Errorf("pop = %v, %v; want %v, true", got, ok, b)
	}

	if _, ok := q.pop(); ok {
		t.Error("pop on empty queue = true, want false")
	}
	if !q.idle() {
		t.Error("queue not idle after draining to empty")
	}
}

func TestRegionQueue_PushDuringDrain(t *testing.T) {
	var q regionQueue
	q.push(pendingRegion{rect: image.Rect(0, 0, 32, 10)})
	q.pop()

	// Queue is empty but still draining; new pushes must not schedule a
	// second pass.
	if q.push(pendingRegion{rect: image.Rect(64, 0, 96, 10)}) {
		t.Error("push during drain = true, want false")
	}
}

func TestRegionQueue_Clear(t *testing.T) {
	var q regionQueue
	q.push(pendingRegion{rect: image.Rect(0, 0, 32, 10)})
	q.push(pendingRegion{rect: image.Rect(32, 0, 64, 10)})

	q.clear()

	if !q.idle() {
		t.Error("queue not idle after clear")
	}
	if !q.push(pendingRegion{rect: image.Rect(0, 0, 32, 10)}) {
		t.Error("push after clear = false, want true (queue was idle)")
	}
}
