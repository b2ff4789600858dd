package repo

import (
	"time"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
)

// AuditEntry registra cada transição feita pela liquidação
type AuditEntry struct {
	ID        string
	WagerID   string
	UserID    string
	Previous  domain.Result
	Result    domain.Result
	Reason    string
	Source    string // "batch", "api", "cascade"
	PassID    string
	CreatedAt time.Time
}
