// Package pdf genera la representación en PDF de una factura con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│                          INVOICE                            │
//	│  Invoice Number / Date / Due Date                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Bill To: nombre, empresa?, dirección, email, teléfono?     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Description | Qty | Unit Price | Total              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: Subtotal / Tax (x.x%) / Total                     │
//	│                                           Page n of m       │
//	└─────────────────────────────────────────────────────────────┘
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

	"github.com/jhoicas/Invoicer-api/internal/domain"
	"github.com/jhoicas/Invoicer-api/internal/domain/entity"
	"github.com/jhoicas/Invoicer-api/pkg/money"
)

// dateLayout formato de fechas en el documento.
const dateLayout = "Jan 2, 2006"

// Anchos de columna de la tabla (grilla de 12).
const (
	colDescription = 6
	colQty         = 2
	colUnitPrice   = 2
	colTotal       = 2
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Renderer ──────────────────────────────────────────────────────────────────

// MarotoInvoiceRenderer implementa billing.InvoiceRenderer usando Maroto v2.
type MarotoInvoiceRenderer struct {
	compression bool
	format      *money.Formatter
}

// Option configura el renderer.
type Option func(*MarotoInvoiceRenderer)

// WithCompression activa o desactiva la compresión de los streams del PDF.
func WithCompression(on bool) Option {
	return func(r *MarotoInvoiceRenderer) { r.compression = on }
}

// WithFormatter reemplaza el formateador de montos (símbolo y locale).
func WithFormatter(f *money.Formatter) Option {
	return func(r *MarotoInvoiceRenderer) {
		if f != nil {
			r.format = f
		}
	}
}

// NewMarotoInvoiceRenderer construye el renderer: comprimido, en-US, símbolo "$".
func NewMarotoInvoiceRenderer(opts ...Option) *MarotoInvoiceRenderer {
	r := &MarotoInvoiceRenderer{
		compression: true,
		format:      money.NewFormatter("en-US", "$"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render genera el PDF completo y devuelve sus bytes ya cerrados.
func (r *MarotoInvoiceRenderer) Render(_ context.Context, invoice *entity.Invoice) ([]byte, error) {
	if invoice == nil {
		return nil, fmt.Errorf("%w: factura nil", domain.ErrRender)
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Invoice "+invoice.InvoiceNumber, true).
		WithAuthor(invoice.Customer.Name, true).
		WithCreationDate(invoice.CreatedAt).
		WithCompression(r.compression).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    8,
			Color:   colorGray,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRows(titleRow())
	m.AddRows(metadataRows(invoice)...)
	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.4}))
	m.AddRows(billToRows(invoice.Customer)...)
	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(r.tableItemRows(invoice.LineItems)...)

	m.AddRows(line.NewRow(4, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(r.summaryRows(invoice)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("%w: generar documento %s: %w", domain.ErrRender, invoice.InvoiceNumber, err)
	}
	out := doc.GetBytes()
	if len(out) == 0 {
		return nil, fmt.Errorf("%w: documento vacío %s", domain.ErrRender, invoice.InvoiceNumber)
	}
	return out, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func titleRow() core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("INVOICE", props.Text{
			Style: fontstyle.Bold, Size: 24, Align: align.Center, Color: colorPrimary,
		}),
	))
}

func metadataRows(invoice *entity.Invoice) []core.Row {
	return []core.Row{
		textRow(6, "Invoice Number: "+invoice.InvoiceNumber, props.Text{Size: 11, Style: fontstyle.Bold}),
		textRow(6, "Date: "+invoice.CreatedAt.Format(dateLayout), props.Text{Size: 11}),
		textRow(6, "Due Date: "+invoice.DueDate.Format(dateLayout), props.Text{Size: 11}),
	}
}

// billToRows: empresa y teléfono solo aparecen si vienen informados.
func billToRows(c entity.CustomerDetails) []core.Row {
	rows := []core.Row{
		textRow(8, "Bill To:", props.Text{Style: fontstyle.Bold, Size: 13, Color: colorPrimary}),
		textRow(6, c.Name, props.Text{Size: 11}),
	}
	if c.Company != "" {
		rows = append(rows, textRow(6, c.Company, props.Text{Size: 11}))
	}
	rows = append(rows,
		textRow(6, c.Address, props.Text{Size: 11}),
		textRow(6, "Email: "+c.Email, props.Text{Size: 11}),
	)
	if c.Phone != "" {
		rows = append(rows, textRow(6, "Phone: "+c.Phone, props.Text{Size: 11}))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: a, Color: colorPrimary, Top: 1,
		}))
	}
	return row.New(8).Add(
		h("Description", colDescription, align.Left),
		h("Qty", colQty, align.Right),
		h("Unit Price", colUnitPrice, align.Right),
		h("Total", colTotal, align.Right),
	)
}

// tableItemRows: una fila por línea, en el orden en que se capturaron.
func (r *MarotoInvoiceRenderer) tableItemRows(items []entity.LineItem) []core.Row {
	cell := props.Text{Size: 10, Align: align.Right, Top: 1}
	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(7).Add(
			col.New(colDescription).Add(text.New(it.Description, props.Text{Size: 10, Top: 1})),
			col.New(colQty).Add(text.New(r.format.Quantity(it.Quantity), cell)),
			col.New(colUnitPrice).Add(text.New(r.format.Amount(it.UnitPrice), cell)),
			col.New(colTotal).Add(text.New(r.format.Amount(it.Total), cell)),
		))
	}
	return rows
}

// summaryRows: etiquetas bajo Unit Price y montos bajo Total.
func (r *MarotoInvoiceRenderer) summaryRows(invoice *entity.Invoice) []core.Row {
	sumRow := func(label, value string, size float64, bold bool) core.Row {
		p := props.Text{Size: size, Align: align.Right, Top: 1}
		if bold {
			p.Style = fontstyle.Bold
			p.Color = colorPrimary
		}
		return row.New(7).Add(
			col.New(colDescription+colQty),
			col.New(colUnitPrice).Add(text.New(label, p)),
			col.New(colTotal).Add(text.New(value, p)),
		)
	}
	return []core.Row{
		sumRow("Subtotal:", r.format.Amount(invoice.Subtotal), 10, false),
		sumRow(fmt.Sprintf("Tax (%s):", r.format.Percent(invoice.TaxRate)), r.format.Amount(invoice.TaxAmount), 10, false),
		sumRow("Total:", r.format.Amount(invoice.Total), 12, true),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func textRow(height float64, s string, p props.Text) core.Row {
	return row.New(height).Add(col.New(12).Add(text.New(s, p)))
}
