package worker

// Processes email jobs from QueueEmail. SMTP calls go through a circuit breaker
// and are retried with exponential backoff before the job is dead-lettered.

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"time"

	"investigacion/internal/infra"

	"github.com/rs/zerolog/log"
)

//go:embed templates/*.html
var plantillas embed.FS

var recuperacionTmpl = template.Must(template.ParseFS(plantillas, "templates/recuperacion.html"))

const asuntoRecuperacion = "Reestablecer contraseña"

// RecuperacionPayload is the body of a JobRecuperacion job.
type RecuperacionPayload struct {
	Email string `json:"email"`
	Link  string `json:"link"`
}

// Sender is the subset of *infra.Mailer the worker needs.
type Sender interface {
	SendHTML(to, subject, html, text string) error
}

// EmailWorker renders and sends transactional mails.
type EmailWorker struct {
	mailer      Sender
	breaker     *infra.CircuitBreaker
	maxAttempts int
	backoff     time.Duration
}

func NewEmailWorker(mailer Sender, breaker *infra.CircuitBreaker) *EmailWorker {
	return &EmailWorker{mailer: mailer, breaker: breaker, maxAttempts: 3, backoff: time.Second}
}

// ProcessRecuperacion is the Handler for JobRecuperacion.
func (w *EmailWorker) ProcessRecuperacion(ctx context.Context, raw json.RawMessage) error {
	var payload RecuperacionPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return fmt.Errorf("email_worker: payload inválido: %w", err)
	}
	if payload.Email == "" || payload.Link == "" {
		return errors.New("email_worker: email y link son obligatorios")
	}

	var body bytes.Buffer
	if err := recuperacionTmpl.Execute(&body, payload); err != nil {
		return fmt.Errorf("email_worker: plantilla: %w", err)
	}
	text := "Para restablecer tu contraseña abre el siguiente enlace: " + payload.Link

	err := withRetry(ctx, w.maxAttempts, w.backoff, func(attempt int) error {
		sendErr := w.breaker.Execute(func() error {
			return w.mailer.SendHTML(payload.Email, asuntoRecuperacion, body.String(), text)
		})
		if sendErr != nil {
			log.Warn().Err(sendErr).Int("attempt", attempt).Str("to", payload.Email).Msg("email_worker: envío fallido")
		}
		return sendErr
	})
	if err != nil {
		return err
	}
	log.Info().Str("to", payload.Email).Msg("email_worker: correo de recuperación enviado")
	return nil
}
