package infra

// pdf.go — quote document generation using go-pdf/fpdf.
// Generates an A4 presupuesto with business header, customer block,
// item table, discount line and total, plus the validity footer.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/vibesind/vibes-gestion/internal/model"

	"github.com/go-pdf/fpdf"
)

// GeneratePresupuestoPDF renders the quote into storagePath (created if
// needed) and returns the absolute path of the written file.
func GeneratePresupuestoPDF(p *model.Presupuesto, storagePath, negocio string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	id := p.ID.String()
	ref := id[len(id)-8:]
	filePath := filepath.Join(storagePath, fmt.Sprintf("presupuesto_%s.pdf", ref))

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 30

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(contentW, 10, negocio, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	pdf.CellFormat(contentW, 6, fmt.Sprintf("Presupuesto #%s", ref), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, "Fecha: "+p.CreatedAt.Format("02/01/2006"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Customer block ───────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(contentW, 6, "Cliente", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, p.ClienteNombre, "", 1, "L", false, 0, "")
	if p.ClienteTelefono != nil && *p.ClienteTelefono != "" {
		pdf.CellFormat(contentW, 5, "Tel: "+*p.ClienteTelefono, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	// ── Item table ───────────────────────────────────────────────────────────
	col1 := contentW * 0.46 // product
	col2 := contentW * 0.14 // qty
	col3 := contentW * 0.20 // unit price
	col4 := contentW * 0.20 // line total

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1, 7, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 7, "Cant.", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 7, "Precio Unit.", "B", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 7, "Subtotal", "B", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, item := range p.Items {
		nombre := ""
		if item.Producto != nil {
			nombre = item.Producto.Nombre
			if item.Producto.Talle != "" || item.Producto.Color != "" {
				nombre += fmt.Sprintf(" (%s/%s)", item.Producto.Talle, item.Producto.Color)
			}
		}
		if len(nombre) > 40 {
			nombre = nombre[:39] + "…"
		}
		pdf.CellFormat(col1, 6, nombre, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 6, fmt.Sprintf("x%d", item.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 6, "$"+item.PrecioUnitario.StringFixed(2), "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "$"+item.PrecioTotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(15, pdf.GetY(), pageW-15, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(col1+col2+col3, 6, "Subtotal:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 6, "$"+p.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	if !p.Descuento.IsZero() {
		pdf.CellFormat(col1+col2+col3, 6, "Descuento:", "", 0, "R", false, 0, "")
		pdf.CellFormat(col4, 6, "-$"+p.Descuento.StringFixed(2), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(col1+col2+col3, 8, "TOTAL:", "", 0, "R", false, 0, "")
	pdf.CellFormat(col4, 8, "$"+p.Total.StringFixed(2), "", 1, "R", false, 0, "")

	// ── Footer ───────────────────────────────────────────────────────────────
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "I", 9)
	pdf.CellFormat(contentW, 5, "Presupuesto válido hasta el "+p.ValidoHasta.Format("02/01/2006"), "", 1, "L", false, 0, "")
	if p.Notas != nil && *p.Notas != "" {
		pdf.Ln(2)
		pdf.SetFont("Helvetica", "", 9)
		pdf.MultiCell(contentW, 5, "Notas: "+*p.Notas, "", "L", false)
	}

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
