// Package cache wraps the optional Redis client used as the game action
// historian. When no Redis address is configured, Rdb stays nil and all
// publishing is silently skipped.
package cache

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Rdb is the shared Redis client, nil when the historian is disabled.
var Rdb *redis.Client

// InitRedis connects the historian to the given address and verifies the
// connection with a ping.
func InitRedis(ctx context.Context, addr string) error {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping %s: %w", addr, err)
	}
	Rdb = client
	return nil
}

// GameActionRecord is one entry in a game's action history list.
type GameActionRecord struct {
	GameID        uuid.UUID              `json:"game_id"`
	GameName      string                 `json:"game_name"`
	ActionIndex   int                    `json:"action_index"`
	Actor         string                 `json:"actor,omitempty"`
	ActionType    string                 `json:"action_type"`
	ActionPayload map[string]interface{} `json:"payload,omitempty"`
	Timestamp     int64                  `json:"ts"`
}

// historyKey returns the Redis list key holding a game's action history.
func historyKey(gameID uuid.UUID) string {
	return fmt.Sprintf("gandalf:game:%s:actions", gameID)
}

// PublishGameAction appends the record to the game's history list.
func PublishGameAction(ctx context.Context, rec GameActionRecord) error {
	if Rdb == nil {
		return nil
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("marshal action record: %w", err)
	}
	if err := Rdb.RPush(ctx, historyKey(rec.GameID), data).Err(); err != nil {
		return fmt.Errorf("rpush action record: %w", err)
	}
	return nil
}
