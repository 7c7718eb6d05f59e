package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"
)

func TestStartRunsEnabledJobs(t *testing.T) {
	var runs atomic.Int32
	s, err := Start(context.Background(), time.UTC,
		Job{Name: "tick", Interval: 20 * time.Millisecond, Run: func(context.Context) { runs.Add(1) }},
		Job{Name: "resync", Interval: 0, Run: func(context.Context) { t.Error("disabled job ran") }},
	)
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = s.Shutdown() }()

	if names := s.JobNames(); len(names) != 1 || names[0] != "tick" {
		t.Fatalf("unexpected jobs: %v", names)
	}

	deadline := time.Now().Add(2 * time.Second)
	for runs.Load() < 2 {
		if time.Now().After(deadline) {
			t.Fatalf("job ran %d times", runs.Load())
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestJobReceivesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "root")
	seen := make(chan interface{}, 1)

	s, err := Start(ctx, nil, Job{Name: "probe", Interval: 10 * time.Millisecond, Run: func(ctx context.Context) {
		select {
		case seen <- ctx.Value(key{}):
		default:
		}
	}})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	defer func() { _ = s.Shutdown() }()

	select {
	case v := <-seen:
		if v != "root" {
			t.Fatalf("unexpected context value %v", v)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("job never ran")
	}
}
