package session

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

func TestSessionAddAndGetMessages(t *testing.T) {
	s := New(20)

	s.Add("user", "hola")
	s.Add("assistant", "hola amor")

	msgs := s.Messages()
	if len(msgs) != 2 {
		t.Fatalf("expected 2 messages, got %d", len(msgs))
	}

	if msgs[0].Role != "user" || msgs[0].Content != "hola" {
		t.Errorf("first message mismatch: %+v", msgs[0])
	}

	if msgs[1].Role != "assistant" || msgs[1].Content != "hola amor" {
		t.Errorf("second message mismatch: %+v", msgs[1])
	}
}

func TestSessionEvictsOldestWhenFull(t *testing.T) {
	s := New(3)

	for i := range 5 {
		s.Add("user", fmt.Sprintf("mensaje %d", i))
	}

	msgs := s.Messages()
	if len(msgs) != 3 {
		t.Fatalf("expected window of 3, got %d", len(msgs))
	}

	if msgs[0].Content != "mensaje 2" {
		t.Errorf("oldest surviving message should be 'mensaje 2', got %q", msgs[0].Content)
	}

	if msgs[2].Content != "mensaje 4" {
		t.Errorf("newest message should be 'mensaje 4', got %q", msgs[2].Content)
	}
}

func TestSessionMessagesIsCopy(t *testing.T) {
	s := New(20)
	s.Add("user", "hola")

	msgs := s.Messages()
	msgs[0].Content = "modified"

	// original should be unchanged
	original := s.Messages()
	if original[0].Content != "hola" {
		t.Error("Messages() should return a copy, not the original slice")
	}
}

func TestSessionClear(t *testing.T) {
	s := New(20)
	s.Add("user", "hola")
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("expected empty window after Clear, got %d", s.Len())
	}
}

func TestSessionDefaultCapacity(t *testing.T) {
	s := New(0)

	for i := range 30 {
		s.Add("user", fmt.Sprintf("m%d", i))
	}

	if s.Len() != DefaultWindowSize {
		t.Errorf("expected default capacity %d, got %d", DefaultWindowSize, s.Len())
	}
}

func TestSessionTryAcquireAndRelease(t *testing.T) {
	s := New(20)

	// first acquire should succeed
	if !s.TryAcquire() {
		t.Error("first TryAcquire should succeed")
	}

	// second acquire should fail (already processing)
	if s.TryAcquire() {
		t.Error("second TryAcquire should fail")
	}

	// release and try again
	s.Release()

	if !s.TryAcquire() {
		t.Error("TryAcquire after Release should succeed")
	}
	s.Release()
}

func TestSessionAcquireBlocksWhileHeld(t *testing.T) {
	s := New(20)

	if !s.TryAcquire() {
		t.Fatal("lock should start free")
	}

	done := make(chan struct{})
	go func() {
		s.Acquire()
		s.Release()
		close(done)
	}()

	select {
	case <-done:
		t.Fatal("Acquire must block while the lock is held")
	case <-time.After(50 * time.Millisecond):
	}

	s.Release()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Acquire never proceeded after Release")
	}
}

func TestSessionConcurrentAccess(t *testing.T) {
	s := New(200)
	var wg sync.WaitGroup

	// concurrent message adds
	for range 100 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s.Add("user", "mensaje")
		}()
	}

	wg.Wait()

	if s.Len() != 100 {
		t.Errorf("expected 100 messages, got %d", s.Len())
	}
}

func TestSessionIDsAreUnique(t *testing.T) {
	if New(1).ID() == New(1).ID() {
		t.Error("sessions should get distinct IDs")
	}
}
