package worker

// email_worker.go
// Processes email jobs from QueueEmail. SMTP sends go through the circuit
// breaker with bounded retry; jobs that still fail land in the DLQ.

import (
	"context"
	"encoding/json"
	"time"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/infra"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const maxEmailAttempts = 3

// EmailJobPayload is the job envelope sent to QueueEmail.
// Tipo "comprobante" attaches a PDF; "credenciales" mails a generated password.
type EmailJobPayload struct {
	Tipo     string `json:"tipo"`
	ToEmail  string `json:"email"`
	Subject  string `json:"subject,omitempty"`
	Body     string `json:"body,omitempty"`
	PDFPath  string `json:"pdf_path,omitempty"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}

type EmailWorker struct {
	mailer *infra.Mailer
	cb     *infra.CircuitBreaker
	rdb    *redis.Client
}

func NewEmailWorker(mailer *infra.Mailer, cb *infra.CircuitBreaker, rdb *redis.Client) *EmailWorker {
	return &EmailWorker{mailer: mailer, cb: cb, rdb: rdb}
}

func (w *EmailWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload EmailJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("email_worker: invalid payload")
		return
	}
	if payload.ToEmail == "" {
		log.Warn().Msg("email_worker: empty email — skipping")
		return
	}

	sendErr := withRetry(ctx, maxEmailAttempts, func(attempt int) error {
		return w.cb.Execute(func() error {
			if payload.Tipo == "credenciales" {
				return w.mailer.SendCredenciales(payload.ToEmail, payload.Username, payload.Password)
			}
			return w.mailer.SendComprobante(payload.ToEmail, payload.Subject, payload.Body, payload.PDFPath)
		})
	})
	if sendErr != nil {
		log.Error().Err(sendErr).Str("to", payload.ToEmail).Msg("email_worker: failed to send email")
		SendToDLQ(ctx, w.rdb, QueueEmail, payload.Tipo, raw, sendErr.Error(), maxEmailAttempts)
		return
	}
	log.Info().Str("to", payload.ToEmail).Str("tipo", payload.Tipo).Msg("email_worker: sent successfully")
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
