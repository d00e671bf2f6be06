package cache

import (
	"testing"
	"time"
)

func TestManagerSweepsRegisteredCaches(t *testing.T) {
	m := NewManager()
	c := NewLRUCache[int](10, 5*time.Millisecond)
	m.Register(c)

	c.Set("a", 1)
	c.Set("b", 2)

	m.StartCleanup(10 * time.Millisecond)
	defer m.Stop()

	deadline := time.After(time.Second)
	for c.Size() > 0 {
		select {
		case <-deadline:
			t.Fatalf("Size() = %d, expired entries never swept", c.Size())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestManagerStopEndsSweep(t *testing.T) {
	m := NewManager()
	m.Register(NewLRUCache[int](10, time.Minute))
	m.StartCleanup(time.Millisecond)

	done := make(chan struct{})
	go func() {
		m.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() did not return")
	}
}
