package records

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const exampleQueueKey = "minigo:training:examples"

// Example is one training triple serialized for the queue.
type Example struct {
	GameID  string    `json:"game_id"`
	Ply     int       `json:"ply"`
	Board   string    `json:"board"`
	Policy  []float64 `json:"policy"`
	Outcome int8      `json:"outcome"`
}

// ExampleQueue buffers training examples in Redis until a trainer drains them.
type ExampleQueue struct {
	rdb *redis.Client
}

func NewExampleQueue(redisURL string) (*ExampleQueue, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &ExampleQueue{rdb: rdb}, nil
}

// NewExampleQueueFromClient wires an existing client, used by tests.
func NewExampleQueueFromClient(rdb *redis.Client) *ExampleQueue {
	return &ExampleQueue{rdb: rdb}
}

func (q *ExampleQueue) Close() error {
	if q == nil || q.rdb == nil {
		return nil
	}
	return q.rdb.Close()
}

// Push appends examples to the tail of the queue.
func (q *ExampleQueue) Push(ctx context.Context, examples ...Example) error {
	if len(examples) == 0 {
		return nil
	}
	vals := make([]interface{}, 0, len(examples))
	for _, ex := range examples {
		b, err := json.Marshal(ex)
		if err != nil {
			return fmt.Errorf("marshal example: %w", err)
		}
		vals = append(vals, b)
	}
	if err := q.rdb.RPush(ctx, exampleQueueKey, vals...).Err(); err != nil {
		return fmt.Errorf("push examples: %w", err)
	}
	return nil
}

// Pop removes and returns the oldest example. ok is false on an empty queue.
func (q *ExampleQueue) Pop(ctx context.Context) (Example, bool, error) {
	raw, err := q.rdb.LPop(ctx, exampleQueueKey).Result()
	if err == redis.Nil {
		return Example{}, false, nil
	}
	if err != nil {
		return Example{}, false, fmt.Errorf("pop example: %w", err)
	}
	var ex Example
	if err := json.Unmarshal([]byte(raw), &ex); err != nil {
		return Example{}, false, fmt.Errorf("decode example: %w", err)
	}
	return ex, true, nil
}

// Len reports the number of queued examples.
func (q *ExampleQueue) Len(ctx context.Context) (int64, error) {
	return q.rdb.LLen(ctx, exampleQueueKey).Result()
}
