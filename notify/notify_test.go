package notify

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestPublishOrderSingleProducer(t *testing.T) {
	c := NewChannel()
	const n = 50
	for i := 0; i < n; i++ {
		c.Publish(Status{Message: fmt.Sprintf("m%d", i)})
	}

	for i := 0; i < n; i++ {
		select {
		case ev := <-c.Events():
			st, ok := ev.(Status)
			if !ok {
				t.Fatalf("event %d: got %T, want Status", i, ev)
			}
			if want := fmt.Sprintf("m%d", i); st.Message != want {
				t.Fatalf("event %d: got %q, want %q", i, st.Message, want)
			}
		case <-time.After(time.Second):
			t.Fatalf("timed out waiting for event %d", i)
		}
	}
}

func TestConcurrentPublishers(t *testing.T) {
	c := NewChannel()
	const producers = 8
	const perProducer = 20

	received := make(map[string]bool)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < producers*perProducer; i++ {
			ev := <-c.Events()
			received[ev.(Status).Message] = true
		}
	}()

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				c.Publish(Status{Message: fmt.Sprintf("%d/%d", p, i)})
			}
		}(p)
	}
	wg.Wait()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out draining events")
	}
	if len(received) != producers*perProducer {
		t.Errorf("received %d distinct events, want %d", len(received), producers*perProducer)
	}
}
