package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/shared/kafka"
)

// KafkaPublisher publica BetSettled no tópico de liquidações, chaveado pelo usuário
type KafkaPublisher struct {
	Writer kafka.MessageWriter
	Topic  string
}

func NewKafkaPublisher(w kafka.MessageWriter, topic string) *KafkaPublisher {
	return &KafkaPublisher{Writer: w, Topic: topic}
}

func (p *KafkaPublisher) OnSettled(ctx context.Context, w domain.Wager, passID string) error {
	b, err := json.Marshal(NewEvent(w, passID))
	if err != nil {
		return fmt.Errorf("marshal bet_settled: %w", err)
	}
	if err := kafka.WriteJSON(ctx, p.Writer, w.UserID, b); err != nil {
		return fmt.Errorf("publish %s: %w", p.Topic, err)
	}
	return nil
}
