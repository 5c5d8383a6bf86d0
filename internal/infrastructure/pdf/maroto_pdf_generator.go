// Package pdf implementa los documentos PDF de una cotización.
//
// Hay dos variantes sobre la misma página A4:
//
//	client   — hoja comercial para el cliente: producto, precio, validez y
//	           condiciones. Nunca muestra costos ni margen.
//	internal — hoja de costos: desglose por capa e ítem, rendimiento
//	           efectivo, comisión, margen y nota de tipo de cambio.
package pdf

import (
	"context"
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/manilapatagonia/cotizador-api/internal/application/quoting"
	"github.com/manilapatagonia/cotizador-api/internal/domain/entity"
	"github.com/manilapatagonia/cotizador-api/internal/domain/pricing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 12, Green: 74, Blue: 110}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// esAR imprime números con separadores de es-AR (1.234,56).
var esAR = message.NewPrinter(language.MustParse("es-AR"))

// ── Generator ─────────────────────────────────────────────────────────────────

var _ quoting.QuotePDFGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa quoting.QuotePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador. companyName encabeza ambos documentos.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	if companyName == "" {
		companyName = "Manila Patagonia"
	}
	return &MarotoPDFGenerator{companyName: companyName}
}

// GenerateQuotePDF genera el documento pedido y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateQuotePDF(
	_ context.Context,
	quote *entity.Quote,
	result *pricing.Result,
	mode quoting.PDFMode,
) ([]byte, error) {
	title := "Cotización " + quote.QuoteNumber
	if mode == quoting.PDFModeInternal {
		title = "Hoja de costos " + quote.QuoteNumber
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(title, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(quote, mode))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	if mode == quoting.PDFModeInternal {
		g.addInternalSheet(m, quote, result)
	} else {
		g.addClientPage(m, quote)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones comunes ─────────────────────────────────────────────────────────

// headerRow: empresa (izq) y número + fecha (der).
func (g *MarotoPDFGenerator) headerRow(quote *entity.Quote, mode quoting.PDFMode) core.Row {
	docLabel := "COTIZACIÓN"
	if mode == quoting.PDFModeInternal {
		docLabel = "HOJA DE COSTOS — USO INTERNO"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Piscicultura y procesamiento de truchas", props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(docLabel, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(quote.QuoteNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+quote.CreatedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func sectionTitle(label string) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2,
		}),
	))
}

func labelValueRow(label, value string) core.Row {
	return row.New(5).Add(
		col.New(4).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(8).Add(text.New(value, props.Text{Size: 8, Top: 1})),
	)
}

// ── Hoja cliente ──────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) addClientPage(m core.Maroto, quote *entity.Quote) {
	currency := string(quote.Type.SettlementCurrency())

	m.AddRows(sectionTitle("CLIENTE"))
	m.AddRows(labelValueRow("Nombre:", nonEmpty(quote.Client.Name, "—")))
	if quote.Client.Company != "" {
		m.AddRows(labelValueRow("Empresa:", quote.Client.Company))
	}
	if quote.Client.Country != "" {
		m.AddRows(labelValueRow("País:", quote.Client.Country))
	}

	m.AddRows(sectionTitle("PRODUCTO"))
	m.AddRows(labelValueRow("Producto:", nonEmpty(quote.Product.Name, "—")))
	if quote.Product.Presentation != "" {
		m.AddRows(labelValueRow("Presentación:", quote.Product.Presentation))
	}
	if quote.Product.Specs.Species != "" {
		m.AddRows(labelValueRow("Especie:", quote.Product.Specs.Species))
	}
	if quote.Product.Specs.Caliber != "" {
		m.AddRows(labelValueRow("Calibre:", quote.Product.Specs.Caliber))
	}
	if quote.Product.Conservation != "" {
		m.AddRows(labelValueRow("Conservación:", quote.Product.Conservation))
	}
	m.AddRows(labelValueRow("Volumen:", fmtNum(quote.VolumeKg)+" kg"))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	// Bloque de precio, protagonista de la hoja.
	priceRows := []core.Row{
		row.New(16).Add(
			col.New(6).Add(text.New("PRECIO", props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 2,
			})),
			col.New(6).Add(
				text.New(currency+" "+fmtNum(quote.PricePerKg)+" / kg", props.Text{
					Style: fontstyle.Bold, Size: 14, Align: align.Right,
					Color: colorPrimary, Top: 2,
				}),
			),
		),
	}
	if quote.Type == entity.QuoteTypeExport {
		priceRows = append(priceRows, row.New(5).Add(
			col.New(12).Add(text.New(currency+" "+fmtNum(quote.PricePerLb)+" / lb", props.Text{
				Size: 9, Align: align.Right, Color: colorGray,
			})),
		))
	}
	m.AddRows(priceRows...)

	m.AddRows(sectionTitle("CONDICIONES"))
	m.AddRows(labelValueRow("Término:", tradeTermLabel(quote.TradeTerm)))
	if quote.PaymentTerm != "" {
		m.AddRows(labelValueRow("Pago:", quote.PaymentTerm))
	}
	if quote.TransportType != "" {
		m.AddRows(labelValueRow("Transporte:", quote.TransportType))
	}
	m.AddRows(labelValueRow("Válida hasta:", quote.ValidUntil.Format("02/01/2006")))

	if quote.Notes != "" {
		m.AddRows(sectionTitle("NOTAS"))
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New(quote.Notes, props.Text{Size: 8, Top: 1, Color: colorGray}),
		)))
	}
}

// ── Hoja de costos interna ────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) addInternalSheet(m core.Maroto, quote *entity.Quote, result *pricing.Result) {
	currency := string(quote.Type.SettlementCurrency())

	m.AddRows(labelValueRow("Cliente:", nonEmpty(quote.Client.Name, "—")))
	m.AddRows(labelValueRow("Producto:", nonEmpty(quote.Product.Name, "—")))
	m.AddRows(labelValueRow("Volumen:", fmt.Sprintf("%s kg en %d envío(s)", fmtNum(quote.VolumeKg), quote.NumShipments)))
	m.AddRows(labelValueRow("Término:", tradeTermLabel(quote.TradeTerm)))

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(costTableHeaderRow(currency))

	for _, layer := range result.Layers {
		if len(layer.Items) == 0 && layer.TotalPerKg.IsZero() {
			continue
		}
		m.AddRows(layerTitleRow(layer, currency))
		for _, item := range layer.Items {
			m.AddRows(itemRow(item, currency))
		}
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	summary := func(label, value string, bold bool) core.Row {
		style := fontstyle.Normal
		size := 8.5
		if bold {
			style = fontstyle.Bold
			size = 10
		}
		return row.New(5).Add(
			col.New(4),
			col.New(5).Add(text.New(label, props.Text{
				Style: fontstyle.Bold, Size: size - 1, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(value, props.Text{
				Style: style, Size: size, Align: align.Right, Right: 1, Color: colorPrimary,
			})),
		)
	}

	m.AddRows(summary("Costo salida planta:", currency+" "+fmtNum(result.PlantExitPerKg)+" /kg", false))
	m.AddRows(summary("Costo total ("+tradeTermLabel(quote.TradeTerm)+"):", currency+" "+fmtNum(result.TotalCostPerKg)+" /kg", false))
	m.AddRows(summary("Comisión:", currency+" "+fmtNum(result.CommPerKg)+" /kg", false))
	m.AddRows(summary("Margen:", fmtNum(result.MarginPct)+" %", false))
	m.AddRows(summary("PRECIO:", currency+" "+fmtNum(result.PricePerKg)+" /kg", true))
	if quote.Type == entity.QuoteTypeExport {
		m.AddRows(summary("", currency+" "+fmtNum(result.PricePerLb)+" /lb", false))
	}

	// Notas técnicas al pie.
	m.AddRows(line.NewRow(2))
	notes := []string{}
	if pricing.HasDefinedYield(result.Layers) {
		notes = append(notes, fmt.Sprintf(
			"Rendimiento efectivo del proceso: %s%% — la materia prima se ajusta por este factor.",
			fmtNum(result.EffectiveYield.Mul(decimal.NewFromInt(100)))))
	}
	if quote.ExchangeRate.IsPositive() {
		notes = append(notes, fmt.Sprintf(
			"Tipo de cambio aplicado: 1 USD = %s ARS. Ítems en otra moneda se convierten a %s.",
			fmtNum(quote.ExchangeRate), currency))
	}
	for _, w := range result.Warnings {
		notes = append(notes, "Aviso: "+w.Message)
	}
	for _, n := range notes {
		m.AddRows(row.New(4).Add(col.New(12).Add(
			text.New(n, props.Text{Size: 7, Color: colorGray, Top: 1}),
		)))
	}
}

func costTableHeaderRow(currency string) core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Ítem", 6, align.Left),
		h("Valor", 2, align.Right),
		h("Unidad", 2, align.Center),
		h(currency+" /kg", 2, align.Right),
	)
}

func layerTitleRow(layer entity.CostLayer, currency string) core.Row {
	return row.New(6).Add(
		col.New(9).Add(text.New(layer.LayerName, props.Text{
			Style: fontstyle.Bold, Size: 8, Top: 1,
		})),
		col.New(3).Add(text.New(currency+" "+fmtNum(layer.TotalPerKg)+" /kg", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

func itemRow(item entity.CostItem, currency string) core.Row {
	value := "—"
	if item.HasValue() {
		value = fmtNum(item.VariableValue)
	}
	return row.New(5).Add(
		col.New(6).Add(text.New(item.Name, props.Text{
			Size: 8, Top: 1, Left: 3,
		})),
		col.New(2).Add(text.New(value, props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
		col.New(2).Add(text.New(string(item.VariableUnit), props.Text{
			Size: 8, Align: align.Center, Top: 1, Color: colorGray,
		})),
		col.New(2).Add(text.New(fmtNum(item.CostPerKgCalc), props.Text{
			Size: 8, Align: align.Right, Top: 1, Right: 1,
		})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// fmtNum imprime un decimal con dos decimales y separadores es-AR.
// Ej: 1234.5 → "1.234,50"
func fmtNum(d decimal.Decimal) string {
	f, _ := d.Round(2).Float64()
	return esAR.Sprintf("%.2f", f)
}

// tradeTermLabel etiqueta legible del término comercial.
func tradeTermLabel(t entity.TradeTerm) string {
	labels := map[entity.TradeTerm]string{
		entity.TermRetiroPlanta:    "Retiro en planta",
		entity.TermPuestoBHC:       "Puesto en Bahía Blanca",
		entity.TermPuestoNQN:       "Puesto en Neuquén",
		entity.TermPuestoCABA:      "Puesto en CABA",
		entity.TermPuestoInterior:  "Puesto en interior",
		entity.TermEntregaDeposito: "Entrega en depósito",
	}
	if label, ok := labels[t]; ok {
		return label
	}
	if t == "" {
		return "—"
	}
	return string(t)
}
