package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// SettledUpdate é o payload padrão do canal de broadcast
type SettledUpdate struct {
	UserID  string      `json:"userId"`
	WagerID string      `json:"wagerId"`
	Payload interface{} `json:"payload"`
}

// RedisBroadcaster publica as liquidações via Redis Pub/Sub para gateways em tempo real
type RedisBroadcaster struct {
	r       redis.UniversalClient
	channel string
}

func NewRedisBroadcaster(r redis.UniversalClient, channel string) *RedisBroadcaster {
	return &RedisBroadcaster{r: r, channel: channel}
}

func (b *RedisBroadcaster) OnSettled(ctx context.Context, w domain.Wager, passID string) error {
	msg := SettledUpdate{UserID: w.UserID, WagerID: w.ID, Payload: NewEvent(w, passID)}
	raw, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshal broadcast: %w", err)
	}
	if err := b.r.Publish(ctx, b.channel, raw).Err(); err != nil {
		return fmt.Errorf("redis publish %s: %w", b.channel, err)
	}
	return nil
}
