package loop

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestLoop_RunsInOrder(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	var got []int
	for i := 0; i < 100; i++ {
		i := i
		l.Post(func() { got = append(got, i) })
	}
	if err := l.Call(ctx, func() {}); err != nil {
		t.Fatal(err)
	}
	if len(got) != 100 {
		t.Fatalf("ran %d functions, want 100", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("got[%d] = %d, out of order", i, v)
		}
	}
}

func TestLoop_PostBeforeRun(t *testing.T) {
	l := New()
	ran := make(chan struct{})
	l.Post(func() { close(ran) })

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("queued function never ran")
	}
}

func TestLoop_ConcurrentPosters(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go l.Run(ctx)

	count := 0
	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				l.Post(func() { count++ })
			}
		}()
	}
	wg.Wait()
	if err := l.Call(ctx, func() {}); err != nil {
		t.Fatal(err)
	}
	if count != 400 {
		t.Errorf("count = %d, want 400", count)
	}
}

func TestLoop_CallAfterStop(t *testing.T) {
	l := New()
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		l.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	err := l.Call(context.Background(), func() {})
	if !errors.Is(err, ErrStopped) {
		t.Errorf("Call() error = %v, want ErrStopped", err)
	}
}

func TestLoop_CallThatStopsTheLoopSucceeds(t *testing.T) {
	for i := 0; i < 50; i++ {
		l := New()
		ctx, cancel := context.WithCancel(context.Background())
		go l.Run(ctx)

		if err := l.Call(context.Background(), cancel); err != nil {
			t.Fatalf("iteration %d: Call = %v, want nil", i, err)
		}
		<-l.stopped
	}
}
