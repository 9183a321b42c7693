package queue

import (
	"context"
	"errors"
)

// memoryBuffer bounds the in-process queue. Dispatch fails fast when the
// buffer is full rather than blocking a request handler.
const memoryBuffer = 1000

// ErrQueueFull is returned by MemoryDriver.Push when the buffer is at
// capacity.
var ErrQueueFull = errors.New("queue: memory buffer full")

// MemoryDriver is an in-process, channel-backed queue driver. It is the
// default for single-process deployments and is not durable across restarts;
// use the Redis driver when jobs must survive one.
type MemoryDriver struct {
	ch chan []byte
}

func NewMemoryDriver() *MemoryDriver {
	return &MemoryDriver{ch: make(chan []byte, memoryBuffer)}
}

func (d *MemoryDriver) Push(payload []byte) error {
	select {
	case d.ch <- payload:
		return nil
	default:
		return ErrQueueFull
	}
}

func (d *MemoryDriver) Pop(ctx context.Context) ([]byte, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case payload := <-d.ch:
		return payload, nil
	}
}
