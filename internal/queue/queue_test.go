package queue

import (
	"testing"

	"github.com/ppriyankuu/replicated-log/internal/logentry"
)

func TestFIFOOrder(t *testing.T) {
	q := New()
	q.Push(logentry.Entry{Seq: 1, Payload: "a"})
	q.Push(logentry.Entry{Seq: 2, Payload: "b"})

	head, ok := q.Peek()
	if !ok || head.Seq != 1 {
		t.Fatalf("Peek() = %+v, ok=%v; want seq 1", head, ok)
	}

	q.Pop()
	head, ok = q.Peek()
	if !ok || head.Seq != 2 {
		t.Fatalf("Peek() after pop = %+v, ok=%v; want seq 2", head, ok)
	}

	q.Pop()
	if _, ok := q.Peek(); ok {
		t.Fatalf("Peek() on drained queue returned ok=true")
	}
}

func TestPopOnEmptyIsNoop(t *testing.T) {
	q := New()
	q.Pop()
	if q.Len() != 0 {
		t.Fatalf("Len() = %d, want 0", q.Len())
	}
}
