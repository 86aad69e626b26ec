package worker

import (
	"context"
	"encoding/json"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/infra"

	"github.com/rs/zerolog/log"
)

// EmailJobPayload es el sobre de los trabajos en QueueEmail.
type EmailJobPayload struct {
	ToEmail string `json:"to_email"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
	PDFPath string `json:"pdf_path"`
}

// EmailWorker envía por correo el comprobante en PDF al cliente.
type EmailWorker struct {
	mailer *infra.Mailer
}

func NewEmailWorker(mailer *infra.Mailer) *EmailWorker {
	return &EmailWorker{mailer: mailer}
}

func (w *EmailWorker) Process(_ context.Context, raw json.RawMessage) {
	var p EmailJobPayload
	if err := json.Unmarshal(raw, &p); err != nil {
		log.Error().Err(err).Msg("email_worker: payload inválido")
		return
	}
	if p.ToEmail == "" {
		// Ventas sin email de cliente encolan igual; aquí se filtran.
		log.Warn().Msg("email_worker: job sin destinatario")
		return
	}

	if err := w.mailer.SendComprobante(p.ToEmail, p.Subject, p.Body, p.PDFPath); err != nil {
		log.Error().Err(err).Str("to", p.ToEmail).Msg("email_worker: envío fallido")
		return
	}
	log.Info().Str("to", p.ToEmail).Msg("email_worker: comprobante enviado")
}
