package queue

import (
	"sync"
	"testing"
)

func TestPushPopOrder(t *testing.T) {
	q := New[int](4)

	for i := 0; i < 4; i++ {
		if !q.TryPush(i) {
			t.Fatalf("push %d should have succeeded", i)
		}
	}
	if q.TryPush(99) {
		t.Fatal("expected push to fail once the queue is full")
	}

	for i := 0; i < 4; i++ {
		v, ok := q.TryPop()
		if !ok {
			t.Fatalf("pop %d should have succeeded", i)
		}
		if v != i {
			t.Fatalf("pop order broken: got %d, want %d", v, i)
		}
	}
	if _, ok := q.TryPop(); ok {
		t.Fatal("expected pop to fail on an empty queue")
	}
}

func TestCapacityRoundsUpToPowerOfTwo(t *testing.T) {
	q := New[int](5)
	if q.Cap() != 8 {
		t.Fatalf("Cap() = %d, want 8", q.Cap())
	}
}

func TestConcurrentSingleProducerSingleConsumer(t *testing.T) {
	const n = 100000
	q := New[int](256)

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for !q.TryPush(i) {
			}
		}
	}()

	go func() {
		defer wg.Done()
		for i := 0; i < n; i++ {
			for {
				v, ok := q.TryPop()
				if ok {
					if v != i {
						t.Errorf("out of order: got %d, want %d", v, i)
					}
					break
				}
			}
		}
	}()

	wg.Wait()
}
