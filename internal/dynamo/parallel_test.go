package dynamo

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"go.uber.org/goleak"
)

func TestRunAllPreservesOrder(t *testing.T) {
	defer goleak.VerifyNone(t)

	got, err := RunAll(context.Background(), 20, 4, func(ctx context.Context, idx int) (int, error) {
		return idx * idx, nil
	})
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	for i, v := range got {
		if v != i*i {
			t.Errorf("result[%d] = %d, want %d", i, v, i*i)
		}
	}
}

func TestRunAllLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	var inFlight, peak int32
	_, err := RunAll(context.Background(), 32, 3, func(ctx context.Context, idx int) (struct{}, error) {
		n := atomic.AddInt32(&inFlight, 1)
		for {
			p := atomic.LoadInt32(&peak)
			if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
				break
			}
		}
		atomic.AddInt32(&inFlight, -1)
		return struct{}{}, nil
	})
	if err != nil {
		t.Fatalf("RunAll failed: %v", err)
	}
	if peak > 3 {
		t.Errorf("expected at most 3 concurrent calls, saw %d", peak)
	}
}

func TestRunAllError(t *testing.T) {
	defer goleak.VerifyNone(t)

	boom := errors.New("boom")
	_, err := RunAll(context.Background(), 10, 2, func(ctx context.Context, idx int) (int, error) {
		if idx == 5 {
			return 0, boom
		}
		return idx, nil
	})
	if !errors.Is(err, boom) {
		t.Errorf("expected boom, got %v", err)
	}
}

func TestRunAllEmpty(t *testing.T) {
	got, err := RunAll(context.Background(), 0, 0, func(ctx context.Context, idx int) (int, error) {
		t.Error("fn should not be called")
		return 0, nil
	})
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty result, got %v, %v", got, err)
	}
}
