package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sessionbook-backend/internal/models"
)

const paymentQueueKey = "queue:payments"

// Queue carries payment jobs from the booking service to the pool.
// Dequeue returns (nil, nil) when nothing arrived before timeout.
type Queue interface {
	Enqueue(ctx context.Context, job models.PaymentJob) error
	Dequeue(ctx context.Context, timeout time.Duration) (*models.PaymentJob, error)
}

type MemoryQueue struct {
	jobs chan models.PaymentJob
}

func NewMemoryQueue(size int) *MemoryQueue {
	return &MemoryQueue{jobs: make(chan models.PaymentJob, size)}
}

func (q *MemoryQueue) Enqueue(ctx context.Context, job models.PaymentJob) error {
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (q *MemoryQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.PaymentJob, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case job := <-q.jobs:
		return &job, nil
	case <-timer.C:
		return nil, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type RedisQueue struct {
	client *redis.Client
}

func NewRedisQueue(client *redis.Client) *RedisQueue {
	return &RedisQueue{client: client}
}

func (q *RedisQueue) Enqueue(ctx context.Context, job models.PaymentJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("failed to encode payment job: %w", err)
	}
	if err := q.client.RPush(ctx, paymentQueueKey, data).Err(); err != nil {
		return fmt.Errorf("failed to enqueue payment job: %w", err)
	}
	return nil
}

func (q *RedisQueue) Dequeue(ctx context.Context, timeout time.Duration) (*models.PaymentJob, error) {
	result, err := q.client.BLPop(ctx, timeout, paymentQueueKey).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if len(result) < 2 {
		return nil, nil
	}

	var job models.PaymentJob
	if err := json.Unmarshal([]byte(result[1]), &job); err != nil {
		return nil, fmt.Errorf("failed to parse payment job: %w", err)
	}
	return &job, nil
}
