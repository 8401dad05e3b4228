package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// GameViewCache keeps assembled game views (game + ordered rounds + missing
// labels) in Redis so public game pages do not hit the database on every
// request. A nil cache or nil client disables caching entirely.
type GameViewCache struct {
	client *redis.Client
}

func NewGameViewCache(client *redis.Client) *GameViewCache {
	return &GameViewCache{client: client}
}

const gameViewTTL = 2 * time.Hour

func gameViewKey(gameID uint) string {
	return fmt.Sprintf("game:view:%d", gameID)
}

func (c *GameViewCache) Get(gameID uint) (*GameView, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	data, err := c.client.Get(context.Background(), gameViewKey(gameID)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Redis error getting game view %d: %v", gameID, err)
		}
		return nil, false
	}

	var view GameView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		log.Printf("Failed to decode cached game view %d: %v", gameID, err)
		return nil, false
	}

	return &view, true
}

func (c *GameViewCache) Set(gameID uint, view *GameView) {
	if c == nil || c.client == nil {
		return
	}

	data, err := json.Marshal(view)
	if err != nil {
		log.Printf("Failed to encode game view %d for cache: %v", gameID, err)
		return
	}

	if err := c.client.Set(context.Background(), gameViewKey(gameID), data, gameViewTTL).Err(); err != nil {
		log.Printf("Failed to store game view %d in Redis: %v", gameID, err)
	}
}

func (c *GameViewCache) Invalidate(gameID uint) {
	if c == nil || c.client == nil {
		return
	}

	if err := c.client.Del(context.Background(), gameViewKey(gameID)).Err(); err != nil {
		log.Printf("Failed to invalidate game view %d in Redis: %v", gameID, err)
	}
}
