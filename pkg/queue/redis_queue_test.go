package queue

import (
	"context"
	"errors"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestQueue(t *testing.T) (*RedisQueue, context.Context) {
	t.Helper()

	redisSrv := miniredis.RunT(t)
	q, err := NewRedisQueue(RedisQueueConfig{
		Addr:     redisSrv.Addr(),
		Stream:   "test:exports",
		Group:    "test-group",
		Consumer: "consumer-1",
	})
	if err != nil {
		t.Fatalf("new queue: %v", err)
	}
	ctx := context.Background()
	q.ensureGroup(ctx)
	return q, ctx
}

func readOne(t *testing.T, q *RedisQueue, ctx context.Context) redis.XMessage {
	t.Helper()
	streams, err := q.client.XReadGroup(ctx, &redis.XReadGroupArgs{
		Group:    q.group,
		Consumer: "consumer-1",
		Streams:  []string{q.stream, ">"},
		Count:    1,
		Block:    0,
	}).Result()
	if err != nil {
		t.Fatalf("read group: %v", err)
	}
	if len(streams) != 1 || len(streams[0].Messages) != 1 {
		t.Fatalf("expected one message, got %+v", streams)
	}
	return streams[0].Messages[0]
}

func TestRedisQueueEnqueueCarriesJobID(t *testing.T) {
	q, ctx := newTestQueue(t)

	if err := q.Enqueue(ctx, 42); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	msg := readOne(t, q, ctx)
	if msg.Values["job_id"] != "42" {
		t.Fatalf("job_id = %v, want 42", msg.Values["job_id"])
	}
}

func TestRedisQueueEnqueueRejectsZeroID(t *testing.T) {
	q, ctx := newTestQueue(t)
	if err := q.Enqueue(ctx, 0); err == nil {
		t.Fatalf("expected error for zero job id")
	}
}

func TestRedisQueueHandlerSuccessAcksMessage(t *testing.T) {
	q, ctx := newTestQueue(t)
	if err := q.Enqueue(ctx, 7); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	msg := readOne(t, q, ctx)

	var handled int64
	q.handleMessage(ctx, msg, func(_ context.Context, jobID int64) error {
		handled = jobID
		return nil
	})
	if handled != 7 {
		t.Fatalf("handled job = %d, want 7", handled)
	}

	pending, err := q.client.XPending(ctx, q.stream, q.group).Result()
	if err != nil {
		t.Fatalf("xpending: %v", err)
	}
	if pending.Count != 0 {
		t.Fatalf("pending = %d, want 0 after ack", pending.Count)
	}
}

func TestRedisQueueHandlerFailureStillAcks(t *testing.T) {
	q, ctx := newTestQueue(t)
	if err := q.Enqueue(ctx, 8); err != nil {
		t.Fatalf("enqueue: %v", err)
	}
	msg := readOne(t, q, ctx)

	q.handleMessage(ctx, msg, func(context.Context, int64) error {
		return errors.New("boom")
	})

	// No retry: the message is gone, the job stays in whatever state the
	// processor last persisted.
	pending, err := q.client.XPending(ctx, q.stream, q.group).Result()
	if err != nil {
		t.Fatalf("xpending: %v", err)
	}
	if pending.Count != 0 {
		t.Fatalf("pending = %d, want 0 after failed handler ack", pending.Count)
	}
	streamLen, err := q.client.XLen(ctx, q.stream).Result()
	if err != nil {
		t.Fatalf("xlen: %v", err)
	}
	if streamLen != 0 {
		t.Fatalf("stream len = %d, want 0", streamLen)
	}
}

func TestRedisQueueMalformedMessageDiscarded(t *testing.T) {
	q, ctx := newTestQueue(t)
	if err := q.client.XAdd(ctx, &redis.XAddArgs{
		Stream: q.stream,
		Values: map[string]any{"job_id": "not-a-number"},
	}).Err(); err != nil {
		t.Fatalf("xadd: %v", err)
	}
	msg := readOne(t, q, ctx)

	called := false
	q.handleMessage(ctx, msg, func(context.Context, int64) error {
		called = true
		return nil
	})
	if called {
		t.Fatalf("handler invoked for malformed message")
	}
	streamLen, _ := q.client.XLen(ctx, q.stream).Result()
	if streamLen != 0 {
		t.Fatalf("stream len = %d, want 0 after discard", streamLen)
	}
}
