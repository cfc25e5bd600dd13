package queue

import "testing"

func TestQueuePushPop(t *testing.T) {
	q := New[int](4)
	q.Push(1)
	q.Push(2)

	v, sentinel, ok := q.Pop()
	if !ok || sentinel || v != 1 {
		t.Fatalf("Pop() = (%v, %v, %v), want (1, false, true)", v, sentinel, ok)
	}
	v, sentinel, ok = q.Pop()
	if !ok || sentinel || v != 2 {
		t.Fatalf("Pop() = (%v, %v, %v), want (2, false, true)", v, sentinel, ok)
	}
}

func TestQueuePopTimesOut(t *testing.T) {
	q := New[int](1)
	_, sentinel, ok := q.Pop()
	if ok || sentinel {
		t.Fatalf("Pop() on empty queue = (_, %v, %v), want (_, false, false)", sentinel, ok)
	}
}

func TestQueueSentinel(t *testing.T) {
	q := New[string](1)
	q.PostSentinel()
	_, sentinel, ok := q.Pop()
	if !ok || !sentinel {
		t.Fatalf("Pop() after PostSentinel() = (_, %v, %v), want (_, true, true)", sentinel, ok)
	}
}

func TestQueueDrain(t *testing.T) {
	q := New[int](4)
	q.Push(1)
	q.Push(2)
	q.Push(3)
	if got := q.Len(); got != 3 {
		t.Fatalf("Len() = %d, want 3", got)
	}
	q.Drain()
	if got := q.Len(); got != 0 {
		t.Fatalf("Len() after Drain() = %d, want 0", got)
	}
}
