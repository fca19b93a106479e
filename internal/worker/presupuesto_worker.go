package worker

// presupuesto_worker.go
// Processes quote delivery jobs from QueuePresupuestos: renders the quote
// PDF and mails it to the customer through the SMTP circuit breaker.

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vibesind/vibes-gestion/internal/infra"
	"github.com/vibesind/vibes-gestion/internal/repository"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEnvioAttempts = 3

// PresupuestoJobPayload is the job envelope sent to QueuePresupuestos.
type PresupuestoJobPayload struct {
	PresupuestoID string `json:"presupuesto_id"`
	Email         string `json:"email"`
}

type PresupuestoWorker struct {
	repo           repository.PresupuestoRepository
	mailer         *infra.Mailer
	cb             *infra.CircuitBreaker
	rdb            *redis.Client
	pdfStoragePath string
	negocioNombre  string
}

func NewPresupuestoWorker(
	repo repository.PresupuestoRepository,
	mailer *infra.Mailer,
	cb *infra.CircuitBreaker,
	rdb *redis.Client,
	pdfStoragePath string,
	negocioNombre string,
) *PresupuestoWorker {
	return &PresupuestoWorker{
		repo:           repo,
		mailer:         mailer,
		cb:             cb,
		rdb:            rdb,
		pdfStoragePath: pdfStoragePath,
		negocioNombre:  negocioNombre,
	}
}

// Process renders the quote PDF and sends it by email. The SMTP send is
// retried with exponential backoff; exhausted jobs land in the DLQ.
func (w *PresupuestoWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload PresupuestoJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("presupuesto_worker: invalid payload")
		return
	}
	if payload.Email == "" {
		log.Warn().Msg("presupuesto_worker: empty email — skipping")
		return
	}

	id, err := uuid.Parse(payload.PresupuestoID)
	if err != nil {
		log.Error().Str("presupuesto_id", payload.PresupuestoID).Msg("presupuesto_worker: invalid presupuesto_id")
		return
	}

	presupuesto, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("presupuesto_id", payload.PresupuestoID).Msg("presupuesto_worker: presupuesto not found")
		return
	}

	pdfPath, err := infra.GeneratePresupuestoPDF(presupuesto, w.pdfStoragePath, w.negocioNombre)
	if err != nil {
		log.Error().Err(err).Str("presupuesto_id", payload.PresupuestoID).Msg("presupuesto_worker: PDF generation failed")
		return
	}

	ref := payload.PresupuestoID[len(payload.PresupuestoID)-8:]
	subject := fmt.Sprintf("Presupuesto #%s — %s", ref, w.negocioNombre)
	body := fmt.Sprintf(
		"Hola %s,\n\nAdjunto encontrarás el presupuesto solicitado.\nTotal: $%s\nVálido hasta: %s\n\nSaludos,\n%s",
		presupuesto.ClienteNombre,
		presupuesto.Total.StringFixed(2),
		presupuesto.ValidoHasta.Format("02/01/2006"),
		w.negocioNombre,
	)

	sendErr := withRetry(ctx, maxEnvioAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			return w.mailer.SendPresupuesto(payload.Email, subject, body, pdfPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.Email).Msg("presupuesto_worker: send failed after retries")
		SendToDLQ(ctx, w.rdb, QueuePresupuestos, "presupuesto_email", raw, sendErr.Error(), maxEnvioAttempts)
		return
	}
	log.Info().Str("to", payload.Email).Str("presupuesto_id", payload.PresupuestoID).Msg("presupuesto_worker: presupuesto sent")
}

// withRetry calls fn up to maxAttempts times with exponential backoff.
// Backoff schedule: attempt 1 = immediate, 2 = 1s, 3 = 2s.
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
