package worker

// comprobante_worker.go
// Processes receipt jobs from QueueComprobante: loads the venta, renders the
// PDF and, when the cliente has an email, chains an email job. Everything here
// is best-effort and happens after the sale's transaction committed — a
// failure is logged, never propagated back to the sale.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Spartan-876/Acuamont-System-sub000/internal/infra"
	"github.com/Spartan-876/Acuamont-System-sub000/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobante.
type ComprobanteJobPayload struct {
	VentaID      string `json:"venta_id"`
	ClienteEmail string `json:"cliente_email,omitempty"`
}

type ComprobanteWorker struct {
	ventas         repository.VentaRepository
	dispatcher     *Dispatcher
	pdfStoragePath string
}

func NewComprobanteWorker(ventas repository.VentaRepository, dispatcher *Dispatcher, pdfStoragePath string) *ComprobanteWorker {
	return &ComprobanteWorker{
		ventas:         ventas,
		dispatcher:     dispatcher,
		pdfStoragePath: pdfStoragePath,
	}
}

func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	ventaID, err := uuid.Parse(payload.VentaID)
	if err != nil {
		log.Error().Str("venta_id", payload.VentaID).Msg("comprobante_worker: invalid venta_id")
		return
	}

	venta, err := w.ventas.FindByID(ctx, ventaID)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: venta not found")
		return
	}

	pdfPath, err := infra.GenerateComprobantePDF(venta, w.pdfStoragePath)
	if err != nil {
		log.Error().Err(err).Str("venta_id", payload.VentaID).Msg("comprobante_worker: pdf generation failed")
		return
	}
	log.Info().Str("venta_id", payload.VentaID).Str("pdf", pdfPath).Msg("comprobante generado")

	if payload.ClienteEmail == "" {
		return
	}

	serie := ""
	if venta.Serie != nil {
		serie = venta.Serie.Serie
	}
	emailJob := EmailJobPayload{
		ToEmail: payload.ClienteEmail,
		Subject: fmt.Sprintf("Comprobante %s-%d", serie, venta.Correlativo),
		Body:    "Adjuntamos el comprobante de su compra. ¡Gracias por su preferencia!",
		PDFPath: pdfPath,
	}
	if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
		log.Error().Err(err).Str("to", payload.ClienteEmail).Msg("comprobante_worker: enqueue email failed")
	}
}
