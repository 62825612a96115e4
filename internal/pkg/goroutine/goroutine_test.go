package goroutine

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestManager_CollectsErrors(t *testing.T) {
	// Arrange
	m := NewManager(4)
	want := errors.New("consumer stopped")

	// Act
	m.Go(context.Background(), func(context.Context) error { return nil })
	m.Go(context.Background(), func(context.Context) error { return want })
	err := m.Wait()

	// Assert
	if !errors.Is(err, want) {
		t.Fatalf("Wait() error = %v, want %v", err, want)
	}
}

func TestManager_RecoversPanic(t *testing.T) {
	m := NewManager(1)
	m.Go(context.Background(), func(context.Context) error { panic("boom") })

	if err := m.Wait(); err != nil {
		t.Fatalf("panic should not surface as error, got %v", err)
	}
	if m.Running() != 0 {
		t.Fatalf("Running() = %d after Wait", m.Running())
	}
}

func TestManager_LimitAndClosed(t *testing.T) {
	// Arrange
	m := NewManager(1)
	release := make(chan struct{})
	started := make(chan struct{})
	ran := make(chan struct{}, 1)

	m.Go(context.Background(), func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started

	// Act
	m.Go(context.Background(), func(context.Context) error {
		ran <- struct{}{}
		return nil
	})
	close(release)
	_ = m.Wait()
	m.Go(context.Background(), func(context.Context) error {
		ran <- struct{}{}
		return nil
	})

	// Assert
	select {
	case <-ran:
		t.Fatalf("task should have been dropped")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_CanceledContext(t *testing.T) {
	m := NewManager(1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	m.Go(ctx, func(context.Context) error {
		called = true
		return nil
	})
	_ = m.Wait()

	if called {
		t.Fatalf("task should not run with canceled context")
	}
}
