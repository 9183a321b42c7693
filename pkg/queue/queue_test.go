package queue_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/kipngetich-lab/TukoShop-App/pkg/queue"
)

var (
	echoCalls atomic.Int32
	failCalls atomic.Int32
)

type echoJob struct {
	Val string `json:"val"`
}

func (j *echoJob) Handle(context.Context) error {
	echoCalls.Add(1)
	return nil
}

type failJob struct{}

func (j *failJob) Handle(context.Context) error {
	failCalls.Add(1)
	return errors.New("always fails")
}

func init() {
	queue.Register("*queue_test.echoJob", func() queue.Job { return &echoJob{} })
	queue.Register("*queue_test.failJob", func() queue.Job { return &failJob{} })
	queue.StartWorkers(context.Background(), 2)
}

func waitFor(t *testing.T, timeout time.Duration, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatal("condition not met before timeout")
}

func TestDispatchAndProcess(t *testing.T) {
	before := echoCalls.Load()
	if err := queue.Dispatch(&echoJob{Val: "hello"}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}
	waitFor(t, 2*time.Second, func() bool { return echoCalls.Load() > before })
}

func TestFailedJobLandsInFailedList(t *testing.T) {
	queue.SetMaxRetry(1)
	defer queue.SetMaxRetry(3)

	before := len(queue.FailedJobs())
	if err := queue.Dispatch(&failJob{}); err != nil {
		t.Fatalf("dispatch failed: %v", err)
	}

	waitFor(t, 5*time.Second, func() bool { return len(queue.FailedJobs()) > before })

	failed := queue.FailedJobs()
	last := failed[len(failed)-1]
	if last.Err == nil {
		t.Error("expected failure error to be recorded")
	}
	if last.Attempts != 1 {
		t.Errorf("expected 1 attempt, got %d", last.Attempts)
	}
}

func TestPayloadRoundTrip(t *testing.T) {
	d := queue.NewMemoryDriver()

	if err := d.Push([]byte(`{"type":"x","payload":{}}`)); err != nil {
		t.Fatalf("push: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	raw, err := d.Pop(ctx)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if string(raw) != `{"type":"x","payload":{}}` {
		t.Errorf("unexpected payload: %s", raw)
	}
}
