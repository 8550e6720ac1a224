package infra

// pdf.go — PDF rendering of comprobantes using go-pdf/fpdf.
// Generates A7-size thermal receipt-style tickets with:
//   - Business name and RUC header
//   - Document type and number (BOL000123 / FAC000045)
//   - Item table (model, quantity, subtotal)
//   - Subtotal / IGV / bold total
//
// The output file is saved to storagePath/comprobante_{numero}.pdf.

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/JosiasEnriquezQ19/iphone-store-management-system/internal/model"

	"github.com/go-pdf/fpdf"
)

// GenerateComprobantePDF renders a Comprobante to PDF and returns the path of
// the generated file. storagePath is created if needed.
func GenerateComprobantePDF(c *model.Comprobante, empresaNombre, empresaRUC, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}

	fileName := fmt.Sprintf("comprobante_%s.pdf", c.NumeroComprobante)
	filePath := filepath.Join(storagePath, fileName)

	// A7 ≈ 74mm × 105mm — close to thermal receipt paper (custom size, "A7" is not in fpdf's named list)
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: 74, Ht: 105},
	})
	pdf.SetMargins(4, 4, 4)
	pdf.AddPage()

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 8 // total margins = 8mm

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentW, 7, empresaNombre, "", 1, "C", false, 0, "")

	pdf.SetFont("Helvetica", "", 7)
	if empresaRUC != "" {
		pdf.CellFormat(contentW, 4, "RUC "+empresaRUC, "", 1, "C", false, 0, "")
	}

	tipo := "Boleta de Venta"
	if c.TipoComprobante == model.ComprobanteFactura {
		tipo = "Factura de Venta"
	}
	pdf.SetFont("Helvetica", "B", 8)
	pdf.CellFormat(contentW, 5, tipo, "", 1, "C", false, 0, "")
	pdf.CellFormat(contentW, 5, c.NumeroComprobante, "", 1, "C", false, 0, "")
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, c.FechaEmision.Format("02/01/2006  15:04"), "", 1, "C", false, 0, "")
	pdf.Ln(2)

	if c.Cliente != nil {
		pdf.CellFormat(contentW, 4, "Cliente: "+c.Cliente.Nombre, "", 1, "L", false, 0, "")
		pdf.CellFormat(contentW, 4, c.Cliente.TipoDoc+" "+c.Cliente.NumDoc, "", 1, "L", false, 0, "")
		pdf.Ln(1)
	}

	// ── Separator ────────────────────────────────────────────────────────────
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Items header ──────────────────────────────────────────────────────────
	col1 := contentW * 0.52 // model
	col2 := contentW * 0.16 // qty
	col3 := contentW * 0.32 // subtotal

	pdf.SetFont("Helvetica", "B", 7)
	pdf.CellFormat(col1, 5, "Producto", "B", 0, "L", false, 0, "")
	pdf.CellFormat(col2, 5, "Cant", "B", 0, "C", false, 0, "")
	pdf.CellFormat(col3, 5, "Subtotal", "B", 1, "R", false, 0, "")

	// ── Item rows ─────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	for _, d := range c.Detalles {
		modelo := ""
		if d.Producto != nil {
			modelo = d.Producto.Modelo
		}
		if len(modelo) > 22 {
			modelo = modelo[:21] + "…"
		}
		pdf.CellFormat(col1, 5, modelo, "", 0, "L", false, 0, "")
		pdf.CellFormat(col2, 5, fmt.Sprintf("x%d", d.Cantidad), "", 0, "C", false, 0, "")
		pdf.CellFormat(col3, 5, "S/ "+d.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	}

	pdf.Ln(2)
	pdf.Line(4, pdf.GetY(), pageW-4, pdf.GetY())
	pdf.Ln(2)

	// ── Totals ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(col1+col2, 4, "Subtotal:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "S/ "+c.Subtotal.StringFixed(2), "", 1, "R", false, 0, "")
	pdf.CellFormat(col1+col2, 4, "IGV (18%):", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 4, "S/ "+c.IGV.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(col1+col2, 6, "TOTAL:", "", 0, "L", false, 0, "")
	pdf.CellFormat(col3, 6, "S/ "+c.TotalPagar.StringFixed(2), "", 1, "R", false, 0, "")

	pdf.Ln(1)
	pdf.SetFont("Helvetica", "", 7)
	pdf.CellFormat(contentW, 4, "Pago: "+c.TipoPago, "", 1, "L", false, 0, "")

	// ── Footer ────────────────────────────────────────────────────────────────
	pdf.Ln(3)
	pdf.SetFont("Helvetica", "I", 7)
	pdf.CellFormat(contentW, 4, "¡Gracias por su compra!", "", 1, "C", false, 0, "")

	if err := pdf.OutputFileAndClose(filePath); err != nil {
		return "", fmt.Errorf("pdf: write file: %w", err)
	}

	return filePath, nil
}
