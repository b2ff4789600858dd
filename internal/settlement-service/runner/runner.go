// Package runner executa a liquidação em lote: busca as apostas pending,
// decide cada uma, grava a transição, audita, notifica e propaga para a parlay pai.
package runner

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/radieske/bet-settlement-engine/internal/settlement-service/domain"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/engine"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/notify"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/repo"
	"github.com/radieske/bet-settlement-engine/internal/settlement-service/userstats"
)

var ErrPassRunning = errors.New("settlement pass already running")

// Store é a persistência usada pelo runner (implementada por repo.Postgres)
type Store interface {
	FindPending(ctx context.Context, now time.Time) ([]domain.Wager, error)
	FindByID(ctx context.Context, id string) (domain.Wager, error)
	SaveResult(ctx context.Context, id string, result domain.Result, at time.Time) (bool, error)
	AppendAudit(ctx context.Context, e repo.AuditEntry) error
	RecomputeUserStats(ctx context.Context, userID string) (userstats.Stats, error)
}

// Settler decide o resultado de uma aposta (implementado por engine.Engine)
type Settler interface {
	Settle(ctx context.Context, w *domain.Wager) (engine.Decision, error)
}

// Detail é o resultado de uma aposta dentro da execução
type Detail struct {
	WagerID string        `json:"wagerId"`
	UserID  string        `json:"userId"`
	Market  string        `json:"market"`
	Result  domain.Result `json:"result"`
	Reason  string        `json:"reason,omitempty"`
	Error   string        `json:"error,omitempty"`
	Cascade bool          `json:"cascade,omitempty"` // parlay liquidada a partir de uma perna
}

// Summary é o retorno de uma execução
type Summary struct {
	PassID    string        `json:"passId"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`
	Settled   int           `json:"settled"`
	Pending   int           `json:"pending"`
	Errors    int           `json:"errors"`
	Skipped   int           `json:"skipped"` // já liquidadas por outra execução
	Details   []Detail      `json:"details"`
}

type Config struct {
	Workers       int
	NotifyTimeout time.Duration
}

type Runner struct {
	store    Store
	settler  Settler
	notifier notify.Notifier
	metrics  *Metrics
	log      *zap.Logger
	cfg      Config

	now     func() time.Time
	running sync.Mutex
}

func New(store Store, settler Settler, notifier notify.Notifier, metrics *Metrics, log *zap.Logger, cfg Config) *Runner {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.NotifyTimeout <= 0 {
		cfg.NotifyTimeout = 2 * time.Second
	}
	if notifier == nil {
		notifier = notify.Nop{}
	}
	return &Runner{
		store:    store,
		settler:  settler,
		notifier: notifier,
		metrics:  metrics,
		log:      log,
		cfg:      cfg,
		now:      time.Now,
	}
}

// pass acumula o resultado de uma execução; compartilhado pelos workers
type pass struct {
	id      string
	mu      sync.Mutex
	sum     Summary
	touched map[string]struct{}
}

func (p *pass) add(d Detail, touch bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.sum.Details = append(p.sum.Details, d)
	if touch {
		p.touched[d.UserID] = struct{}{}
	}
}

// RunPass processa todas as apostas pending já iniciadas.
// Só retorna erro quando não consegue listar as apostas ou se outra execução está em curso.
func (r *Runner) RunPass(ctx context.Context) (Summary, error) {
	if !r.running.TryLock() {
		return Summary{}, ErrPassRunning
	}
	defer r.running.Unlock()

	start := r.now()
	p := &pass{
		id:      uuid.NewString(),
		touched: make(map[string]struct{}),
	}
	p.sum.PassID = p.id
	p.sum.StartedAt = start
	log := r.log.With(zap.String("passId", p.id))

	wagers, err := r.store.FindPending(ctx, start)
	if err != nil {
		r.metrics.onError("find_pending")
		return Summary{}, fmt.Errorf("find pending: %w", err)
	}
	log.Info("settlement pass started", zap.Int("candidates", len(wagers)))

	var g errgroup.Group
	g.SetLimit(r.cfg.Workers)
	for i := range wagers {
		w := wagers[i]
		g.Go(func() error {
			r.process(ctx, p, w, false)
			return nil
		})
	}
	_ = g.Wait()

	r.recomputeStats(ctx, p, log)

	sum := p.sum
	sort.SliceStable(sum.Details, func(i, j int) bool { return sum.Details[i].WagerID < sum.Details[j].WagerID })
	for _, d := range sum.Details {
		switch {
		case d.Error != "":
			sum.Errors++
		case d.Result == domain.ResultPending:
			sum.Pending++
		case d.Reason == reasonAlreadySettled:
			sum.Skipped++
		default:
			sum.Settled++
		}
	}
	end := r.now()
	sum.Duration = end.Sub(start)
	r.metrics.onPass(sum.Duration, end)

	log.Info("settlement pass finished",
		zap.Int("settled", sum.Settled),
		zap.Int("pending", sum.Pending),
		zap.Int("errors", sum.Errors),
		zap.Int("skipped", sum.Skipped),
		zap.Duration("took", sum.Duration),
	)
	return sum, nil
}

const reasonAlreadySettled = "already settled by another pass"

// process decide e grava uma aposta; panics e erros ficam restritos à aposta
func (r *Runner) process(ctx context.Context, p *pass, w domain.Wager, cascade bool) {
	detail := Detail{WagerID: w.ID, UserID: w.UserID, Market: string(w.MarketType), Cascade: cascade}

	var committed bool
	defer func() {
		rec := recover()
		if rec == nil {
			return
		}
		r.log.Error("panic settling wager", zap.String("wagerId", w.ID), zap.Any("panic", rec))
		r.metrics.onError("panic")
		if committed {
			// a perna já está no resumo; a falha pertence à parlay pai
			p.add(Detail{WagerID: w.ParlayID, UserID: w.UserID, Market: string(domain.MarketParlay), Result: domain.ResultPending, Error: fmt.Sprintf("panic: %v", rec), Cascade: true}, false)
			return
		}
		detail.Result = domain.ResultPending
		detail.Error = fmt.Sprintf("panic: %v", rec)
		p.add(detail, false)
	}()

	d, err := r.settler.Settle(ctx, &w)
	if err != nil {
		r.log.Error("settle failed", zap.String("wagerId", w.ID), zap.Error(err))
		r.metrics.onError("settle")
		detail.Result = domain.ResultPending
		detail.Error = err.Error()
		p.add(detail, false)
		return
	}

	detail.Result, detail.Reason = d.Result, d.Reason
	if d.Result == domain.ResultPending {
		r.metrics.onPending(string(w.MarketType))
		p.add(detail, false)
		return
	}

	source := "batch"
	if cascade {
		source = "cascade"
	}
	transitioned, err := r.commit(ctx, w, d, p.id, source)
	if err != nil {
		r.log.Error("persist result failed", zap.String("wagerId", w.ID), zap.Error(err))
		r.metrics.onError("save")
		detail.Result = domain.ResultPending
		detail.Error = err.Error()
		p.add(detail, false)
		return
	}
	if !transitioned {
		detail.Reason = reasonAlreadySettled
		p.add(detail, false)
		return
	}
	p.add(detail, true)
	committed = true

	// a escrita da perna já terminou aqui, então a parlay lê o estado atualizado
	if w.IsLeg() {
		r.cascade(ctx, p, w.ParlayID)
	}
}

// cascade reavalia a parlay pai depois que uma perna foi gravada
func (r *Runner) cascade(ctx context.Context, p *pass, parlayID string) {
	parent, err := r.store.FindByID(ctx, parlayID)
	if err != nil {
		r.log.Error("load parent parlay failed", zap.String("parlayId", parlayID), zap.Error(err))
		r.metrics.onError("cascade")
		p.add(Detail{WagerID: parlayID, Market: string(domain.MarketParlay), Result: domain.ResultPending, Error: err.Error(), Cascade: true}, false)
		return
	}
	if parent.Settled() {
		return
	}
	r.process(ctx, p, parent, true)
}

// commit grava a transição; auditoria e notificação só acontecem se esta chamada fez a transição
func (r *Runner) commit(ctx context.Context, w domain.Wager, d engine.Decision, passID, source string) (bool, error) {
	at := r.now().UTC()
	ok, err := r.store.SaveResult(ctx, w.ID, d.Result, at)
	if err != nil || !ok {
		return false, err
	}
	r.metrics.onSettled(string(w.MarketType), string(d.Result))

	previous := w.Result
	w.Result = d.Result
	w.SettledAt = &at

	err = r.store.AppendAudit(ctx, repo.AuditEntry{
		WagerID:   w.ID,
		UserID:    w.UserID,
		Previous:  previous,
		Result:    d.Result,
		Reason:    d.Reason,
		Source:    source,
		PassID:    passID,
		CreatedAt: at,
	})
	if err != nil {
		r.log.Error("audit append failed", zap.String("wagerId", w.ID), zap.Error(err))
		r.metrics.onError("audit")
	}

	nctx, cancel := context.WithTimeout(ctx, r.cfg.NotifyTimeout)
	defer cancel()
	if err := r.notifier.OnSettled(nctx, w, passID); err != nil {
		r.log.Warn("settlement notification failed", zap.String("wagerId", w.ID), zap.Error(err))
		r.metrics.onError("notify")
	}

	r.log.Info("wager settled",
		zap.String("wagerId", w.ID),
		zap.String("market", string(w.MarketType)),
		zap.String("result", string(d.Result)),
		zap.String("source", source),
	)
	return true, nil
}

func (r *Runner) recomputeStats(ctx context.Context, p *pass, log *zap.Logger) {
	users := make([]string, 0, len(p.touched))
	for u := range p.touched {
		users = append(users, u)
	}
	sort.Strings(users)

	for _, u := range users {
		st, err := r.store.RecomputeUserStats(ctx, u)
		if err != nil {
			log.Error("recompute user stats failed", zap.String("userId", u), zap.Error(err))
			r.metrics.onError("user_stats")
			continue
		}
		if st.Invalid > 0 {
			log.Warn("user stats skipped invalid wagers", zap.String("userId", u), zap.Int("count", st.Invalid))
		}
	}
}

// Preview calcula a decisão de uma aposta sem gravar nada
func (r *Runner) Preview(ctx context.Context, id string) (domain.Wager, engine.Decision, error) {
	w, err := r.store.FindByID(ctx, id)
	if err != nil {
		return domain.Wager{}, engine.Decision{}, err
	}
	d, err := r.settler.Settle(ctx, &w)
	if err != nil {
		return w, engine.Decision{}, err
	}
	return w, d, nil
}
