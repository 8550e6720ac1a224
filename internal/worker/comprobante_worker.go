package worker

// comprobante_worker.go
// Processes jobs from QueueComprobantes: renders the PDF of a freshly issued
// comprobante and, when the customer left an email, enqueues the send.
// The issuing request never waits for any of this.

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/infra"
	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ComprobanteJobPayload is the job envelope sent to QueueComprobantes.
type ComprobanteJobPayload struct {
	ComprobanteID string  `json:"comprobante_id"`
	ClienteEmail  *string `json:"cliente_email,omitempty"`
}

type ComprobanteWorker struct {
	repo           repository.ComprobanteRepository
	dispatcher     *Dispatcher
	empresaNombre  string
	empresaRUC     string
	pdfStoragePath string
}

func NewComprobanteWorker(
	repo repository.ComprobanteRepository,
	dispatcher *Dispatcher,
	empresaNombre, empresaRUC, pdfStoragePath string,
) *ComprobanteWorker {
	return &ComprobanteWorker{
		repo:           repo,
		dispatcher:     dispatcher,
		empresaNombre:  empresaNombre,
		empresaRUC:     empresaRUC,
		pdfStoragePath: pdfStoragePath,
	}
}

// Process handles a single comprobante job:
//  1. Fetch the comprobante (with detalles and cliente) from DB
//  2. Render the PDF ticket and persist its path
//  3. Optionally enqueue the email with the PDF attached
func (w *ComprobanteWorker) Process(ctx context.Context, raw json.RawMessage) {
	var payload ComprobanteJobPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		log.Error().Err(err).Msg("comprobante_worker: invalid payload")
		return
	}

	id, err := uuid.Parse(payload.ComprobanteID)
	if err != nil {
		log.Error().Str("comprobante_id", payload.ComprobanteID).Msg("comprobante_worker: invalid comprobante_id")
		return
	}

	comp, err := w.repo.FindByID(ctx, id)
	if err != nil {
		log.Error().Err(err).Str("comprobante_id", payload.ComprobanteID).Msg("comprobante_worker: comprobante not found")
		return
	}

	pdfPath, err := infra.GenerateComprobantePDF(comp, w.empresaNombre, w.empresaRUC, w.pdfStoragePath)
	if err != nil {
		log.Warn().Err(err).Str("numero", comp.NumeroComprobante).Msg("comprobante_worker: PDF generation failed")
		return
	}
	if err := w.repo.UpdatePDFPath(ctx, id, pdfPath); err != nil {
		log.Warn().Err(err).Str("numero", comp.NumeroComprobante).Msg("comprobante_worker: failed to persist pdf_path")
	}
	log.Info().Str("pdf", pdfPath).Str("numero", comp.NumeroComprobante).Msg("comprobante_worker: PDF generated")

	if payload.ClienteEmail != nil && *payload.ClienteEmail != "" {
		emailJob := EmailJobPayload{
			Tipo:    "comprobante",
			ToEmail: *payload.ClienteEmail,
			Subject: fmt.Sprintf("Tu comprobante %s", comp.NumeroComprobante),
			Body:    fmt.Sprintf("Adjunto encontrarás tu comprobante de compra.\nTotal: S/ %s", comp.TotalPagar.StringFixed(2)),
			PDFPath: pdfPath,
		}
		if err := w.dispatcher.EnqueueEmail(ctx, emailJob); err != nil {
			log.Warn().Err(err).Str("email", *payload.ClienteEmail).Msg("comprobante_worker: failed to enqueue email")
		}
	}
}
