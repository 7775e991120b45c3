package queue

import (
	"context"
	"testing"
	"time"

	"github.com/okian/echochamber/internal/domain/model"
)

func newJob(index int, reply chan model.Result) model.Job {
	return model.Job{BatchID: "batch", Index: index, Input: []any{1.0, 2.0}, Reply: reply}
}

func TestInMemoryQueue_BasicOperations(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()
	reply := make(chan model.Result, 1)

	// Test empty queue
	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}

	// Test enqueue
	if !q.Enqueue(ctx, newJob(7, reply)) {
		t.Error("expected enqueue to succeed")
	}

	if l := q.Len(ctx); l != 1 {
		t.Errorf("expected length 1, got %d", l)
	}

	// Test dequeue
	job := <-q.Dequeue(ctx)
	if job.Index != 7 || job.BatchID != "batch" {
		t.Errorf("expected job 7 of batch, got %+v", job)
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected length 0, got %d", l)
	}
}

func TestInMemoryQueue_Capacity(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx := context.Background()
	reply := make(chan model.Result, 3)

	if !q.Enqueue(ctx, newJob(0, reply)) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, newJob(1, reply)) {
		t.Error("expected enqueue to succeed")
	}

	// Try to enqueue when full
	if q.Enqueue(ctx, newJob(2, reply)) {
		t.Error("expected enqueue to fail when full")
	}

	if l := q.Len(ctx); l != 2 {
		t.Errorf("expected length 2, got %d", l)
	}
}

func TestInMemoryQueue_CancelledContext(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(2))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if q.Enqueue(ctx, newJob(0, make(chan model.Result, 1))) {
		t.Error("expected enqueue to fail with a cancelled context")
	}
}

func TestInMemoryQueue_ConcurrentAccess(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(100))
	ctx := context.Background()
	numProducers := 10
	numJobs := 100
	reply := make(chan model.Result, numProducers*numJobs)

	done := make(chan bool, numProducers)
	for i := 0; i < numProducers; i++ {
		go func(id int) {
			for j := 0; j < numJobs; j++ {
				for !q.Enqueue(ctx, newJob(id*numJobs+j, reply)) {
					time.Sleep(time.Millisecond)
				}
			}
			done <- true
		}(i)
	}

	consumed := make(chan int, numProducers*numJobs)
	for i := 0; i < numProducers; i++ {
		go func() {
			for job := range q.Dequeue(ctx) {
				consumed <- job.Index
			}
		}()
	}

	for i := 0; i < numProducers; i++ {
		<-done
	}

	seen := make(map[int]bool)
	timeout := time.After(5 * time.Second)
	for len(seen) < numProducers*numJobs {
		select {
		case idx := <-consumed:
			if seen[idx] {
				t.Fatalf("job %d delivered twice", idx)
			}
			seen[idx] = true
		case <-timeout:
			t.Fatalf("expected %d jobs, consumed %d", numProducers*numJobs, len(seen))
		}
	}

	if l := q.Len(ctx); l != 0 {
		t.Errorf("expected final length 0, got %d", l)
	}
	_ = q.Close()
}

func TestInMemoryQueue_GracefulShutdown(t *testing.T) {
	q := NewInMemoryQueue(WithCapacity(10))
	ctx := context.Background()
	reply := make(chan model.Result, 3)

	if !q.Enqueue(ctx, newJob(0, reply)) {
		t.Error("expected enqueue to succeed")
	}
	if !q.Enqueue(ctx, newJob(1, reply)) {
		t.Error("expected enqueue to succeed")
	}

	if q.IsClosed() {
		t.Error("expected queue to be open initially")
	}

	if err := q.Close(); err != nil {
		t.Errorf("expected close to succeed, got error: %v", err)
	}

	if !q.IsClosed() {
		t.Error("expected queue to be closed after Close()")
	}

	// Try to enqueue after closing (should fail)
	if q.Enqueue(ctx, newJob(2, reply)) {
		t.Error("expected enqueue to fail after closing")
	}

	// Queued jobs are still delivered, then the channel closes
	var delivered int
	jobs := q.Dequeue(ctx)
	timeout := time.After(time.Second)
	for {
		select {
		case _, ok := <-jobs:
			if !ok {
				if delivered != 2 {
					t.Errorf("expected 2 drained jobs, got %d", delivered)
				}
				goto channelClosed
			}
			delivered++
		case <-timeout:
			t.Error("expected dequeue channel to be closed within timeout")
			return
		}
	}
channelClosed:

	// Close again should not error
	if err := q.Close(); err != nil {
		t.Errorf("expected second close to succeed, got error: %v", err)
	}
}
