package quoting

import (
	"context"
	"fmt"

	"github.com/manilapatagonia/cotizador-api/internal/domain"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/pricing"
	"github.com/manilapatagonia/cotizador-api/internal/domain/repository"
)

// PDFMode variante del documento a generar.
type PDFMode string

const (
	// PDFModeClient hoja para el cliente: precio, producto, validez y
	// condiciones. Sin desglose de costos.
	PDFModeClient PDFMode = "client"
	// PDFModeInternal hoja de costos interna: desglose por capa, rendimiento,
	// comisión y margen. No se entrega al cliente.
	PDFModeInternal PDFMode = "internal"
)

// QuotePDFGenerator puerto del renderizador de PDFs de cotización.
type QuotePDFGenerator interface {
	GenerateQuotePDF(ctx context.Context, quote *entity.Quote, result *pricing.Result, mode PDFMode) ([]byte, error)
}

// PDFUseCase genera los documentos PDF de una cotización.
type PDFUseCase struct {
	quoteRepo repository.QuoteRepository
	generator QuotePDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(quoteRepo repository.QuoteRepository, generator QuotePDFGenerator) *PDFUseCase {
	return &PDFUseCase{quoteRepo: quoteRepo, generator: generator}
}

// DownloadQuotePDF carga la cotización, recomputa los derivados y genera el
// documento pedido. Devuelve los bytes y un nombre de archivo sugerido.
func (uc *PDFUseCase) DownloadQuotePDF(ctx context.Context, id string, mode PDFMode) ([]byte, string, error) {
	if mode == "" {
		mode = PDFModeClient
	}
	if mode != PDFModeClient && mode != PDFModeInternal {
		return nil, "", domain.ErrInvalidInput
	}

	q, err := uc.quoteRepo.GetByID(id)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: obtener cotización: %w", err)
	}
	if q == nil {
		return nil, "", domain.ErrNotFound
	}

	q.CostLayers = EnsureMandatoryItems(q.CostLayers, q.Type)
	res := pricing.Recompute(engineInput(q))

	pdfBytes, err := uc.generator.GenerateQuotePDF(ctx, q, &res, mode)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}

	prefix := "cotizacion"
	if mode == PDFModeInternal {
		prefix = "costos"
	}
	return pdfBytes, fmt.Sprintf("%s_%s.pdf", prefix, q.QuoteNumber), nil
}
