package queue

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnbounded_SendsNeverBlockWithoutReceiver(t *testing.T) {
	// Given: a queue nobody is reading from
	q := New[int](context.Background())

	// When: sending many items
	done := make(chan struct{})
	go func() {
		for i := 0; i < 10000; i++ {
			q.In() <- i
		}
		close(done)
	}()

	// Then: all sends complete
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("sends blocked without a receiver")
	}

	q.Close()
	count := 0
	for range q.Out() {
		count++
	}
	assert.Equal(t, 10000, count)
}

func TestUnbounded_PreservesFIFOForSingleProducer(t *testing.T) {
	q := New[int](context.Background())
	for i := 0; i < 100; i++ {
		q.In() <- i
	}
	q.Close()

	var got []int
	for v := range q.Out() {
		got = append(got, v)
	}
	require.Len(t, got, 100)
	for i, v := range got {
		assert.Equal(t, i, v)
	}
}

func TestUnbounded_MultiProducerMultiConsumer(t *testing.T) {
	q := New[int](context.Background())

	var producers sync.WaitGroup
	for p := 0; p < 4; p++ {
		producers.Add(1)
		go func(p int) {
			defer producers.Done()
			for i := 0; i < 250; i++ {
				q.In() <- p*1000 + i
			}
		}(p)
	}

	var (
		mu        sync.Mutex
		received  []int
		consumers sync.WaitGroup
	)
	for c := 0; c < 3; c++ {
		consumers.Add(1)
		go func() {
			defer consumers.Done()
			for v := range q.Out() {
				mu.Lock()
				received = append(received, v)
				mu.Unlock()
			}
		}()
	}

	producers.Wait()
	q.Close()
	consumers.Wait()

	require.Len(t, received, 1000)
	sort.Ints(received)
	assert.Equal(t, 0, received[0])
	assert.Equal(t, 3249, received[len(received)-1])
}

func TestUnbounded_OutClosesAfterDrain(t *testing.T) {
	q := New[string](context.Background())
	q.In() <- "a"
	q.Close()

	v, ok := <-q.Out()
	require.True(t, ok)
	assert.Equal(t, "a", v)

	_, ok = <-q.Out()
	assert.False(t, ok)
}

func TestUnbounded_CancelDiscards(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	q := New[int](ctx)

	q.In() <- 1
	cancel()

	// Sends after cancellation are accepted and dropped.
	for i := 0; i < 100; i++ {
		q.In() <- i
	}
	q.Close()

	deadline := time.After(5 * time.Second)
	for {
		select {
		case _, ok := <-q.Out():
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("Out was not closed after cancellation")
		}
	}
}
