package worker

// alerta_worker.go
// Processes low-stock alert jobs from QueueAlertaEstoque. A job is enqueued
// after every stock decrement; the worker re-reads the product and, when the
// level crossed its minimum, emails the configured recipient. SMTP goes
// through the circuit breaker with exponential backoff (max 3 attempts);
// exhausted jobs land in the DLQ.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tiagok38-hash/iStorePro/internal/infra"
	"github.com/tiagok38-hash/iStorePro/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// AlertaEstoqueJobPayload is the job envelope sent to QueueAlertaEstoque.
type AlertaEstoqueJobPayload struct {
	ProdutoID string `json:"produto_id"`
}

type AlertaEstoqueWorker struct {
	produtoRepo  repository.ProdutoRepository
	mailer       *infra.Mailer
	cb           *infra.CircuitBreaker
	rdb          *redis.Client
	destinatario string
}

func NewAlertaEstoqueWorker(
	produtoRepo repository.ProdutoRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	destinatario string,
) *AlertaEstoqueWorker {
	return &AlertaEstoqueWorker{
		produtoRepo:  produtoRepo,
		mailer:       mailer,
		cb:           cb,
		rdb:          rdb,
		destinatario: destinatario,
	}
}

// Process handles a single alert job:
//  1. Parse AlertaEstoqueJobPayload
//  2. Re-read the product (the stock may have changed since enqueue)
//  3. Skip products without a minimum or still above it
//  4. Send the email through the circuit breaker with backoff
//  5. Exhausted retries → DLQ
func (w *AlertaEstoqueWorker) Process(ctx context.Context, raw json.RawMessage) {
	if w.destinatario == "" {
		return // alerting disabled
	}

	var payload AlertaEstoqueJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("alerta_worker: invalid payload")
		return
	}
	produtoID, err := uuid.Parse(payload.ProdutoID)
	if err != nil {
		log.Error().Str("produto_id", payload.ProdutoID).Msg("alerta_worker: invalid produto_id")
		return
	}

	produto, err := w.produtoRepo.FindByID(ctx, produtoID)
	if err != nil {
		log.Error().Err(err).Str("produto_id", payload.ProdutoID).Msg("alerta_worker: produto not found")
		return
	}
	if produto.EstoqueMinimo == nil || produto.Estoque > *produto.EstoqueMinimo {
		return
	}

	assunto := fmt.Sprintf("Estoque baixo: %s", produto.Descricao())
	corpo := fmt.Sprintf(
		"O produto %s atingiu o estoque mínimo.\nEstoque atual: %d (mínimo: %d)\nLocal: %s",
		produto.Descricao(), produto.Estoque, *produto.EstoqueMinimo, produto.LocalEstoque,
	)

	sendErr := withRetry(ctx, 3, func(attempt int) error {
		return w.cb.Execute(func() error {
			err := w.mailer.SendAlerta(w.destinatario, assunto, corpo)
			if err != nil {
				log.Warn().
					Err(err).
					Int("attempt", attempt+1).
					Str("produto_id", payload.ProdutoID).
					Msg("alerta_worker: SMTP attempt failed, retrying")
			}
			return err
		})
	})

	if sendErr != nil {
		log.Error().Err(sendErr).Str("produto_id", payload.ProdutoID).Msg("alerta_worker: alert failed after all retries")
		SendToDLQ(ctx, w.rdb, QueueAlertaEstoque, "alerta_estoque", raw, sendErr.Error(), 3)
		return
	}
	log.Info().Str("produto_id", payload.ProdutoID).Int("estoque", produto.Estoque).Msg("alerta_worker: alert sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
// Returns nil if any attempt succeeds; last error otherwise.
func withRetry(ctx context.Context, maxAttempts int, fn func(attempt int) error) error {
	var lastErr error
	for i := 0; i < maxAttempts; i++ {
		if i > 0 {
			wait := time.Duration(1<<uint(i-1)) * time.Second
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(wait):
			}
		}
		if err := fn(i); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	return lastErr
}
