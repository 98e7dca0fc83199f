package render

import (
	"bytes"

	"github.com/jung-kurt/gofpdf"
)

// Page geometry in millimeters. One fixed A4 portrait page with absolute
// positioning; the item table spans the content width at 50/15/20/15.
const (
	pageMargin   = 15.0
	contentWidth = 210.0 - 2*pageMargin

	colName  = contentWidth * 0.50
	colQty   = contentWidth * 0.15
	colPrice = contentWidth * 0.20
	colTotal = contentWidth * 0.15

	rowHeight = 8.0
)

type pdfRenderer struct{}

// NewPDFRenderer creates the fixed-layout PDF renderer.
func NewPDFRenderer() PDFRenderer {
	return &pdfRenderer{}
}

func (r *pdfRenderer) RenderPDF(input RenderInput) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AddPage()

	r.drawHeader(pdf, input)
	r.drawMetadata(pdf, input)
	r.drawBillTo(pdf, input)
	r.drawItemTable(pdf, input)
	r.drawSummary(pdf, input)
	r.drawNotes(pdf, input)
	r.drawFooter(pdf)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (r *pdfRenderer) drawHeader(pdf *gofpdf.Fpdf, input RenderInput) {
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetXY(pageMargin, pageMargin)
	pdf.CellFormat(contentWidth/2, 10, "INVOICE", "", 0, "L", false, 0, "")

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(contentWidth/2, 6, input.Company.Name, "", 1, "R", false, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	for _, line := range noteLines(input.Company.Address) {
		pdf.CellFormat(contentWidth, 4.5, line, "", 1, "R", false, 0, "")
	}

	pdf.SetDrawColor(17, 24, 39)
	pdf.SetLineWidth(0.6)
	y := pdf.GetY() + 3
	pdf.Line(pageMargin, y, pageMargin+contentWidth, y)
	pdf.SetY(y + 4)
}

func (r *pdfRenderer) drawMetadata(pdf *gofpdf.Fpdf, input RenderInput) {
	rows := [][2]string{
		{"Invoice Number", input.Invoice.Number},
		{"Status", input.Invoice.Status},
		{"Invoice Date", formatDate(input.Invoice.InvoiceDate, input.Company)},
		{"Due Date", formatDate(input.Invoice.DueDate, input.Company)},
	}
	for _, row := range rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(35, 5, row[0], "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(contentWidth-35, 5, row[1], "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *pdfRenderer) drawBillTo(pdf *gofpdf.Fpdf, input RenderInput) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentWidth, 5, "Bill To", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentWidth, 5, customerName(input.Customer), "", 1, "L", false, 0, "")
	if input.Customer.Resolved {
		for _, line := range noteLines(input.Customer.Address) {
			pdf.CellFormat(contentWidth, 4.5, line, "", 1, "L", false, 0, "")
		}
	}
	pdf.Ln(4)
}

func (r *pdfRenderer) drawItemTable(pdf *gofpdf.Fpdf, input RenderInput) {
	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(243, 244, 246)
	pdf.CellFormat(colName, rowHeight, "Item", "1", 0, "L", true, 0, "")
	pdf.CellFormat(colQty, rowHeight, "Qty", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colPrice, rowHeight, "Unit Price", "1", 0, "R", true, 0, "")
	pdf.CellFormat(colTotal, rowHeight, "Total", "1", 1, "R", true, 0, "")

	pdf.SetFont("Helvetica", "", 9)
	printer := newAmountPrinter(input)
	for _, item := range input.Items {
		name := item.Name
		if name == "" {
			name = unresolvedLabel
		}
		pdf.CellFormat(colName, rowHeight, name, "1", 0, "L", false, 0, "")
		pdf.CellFormat(colQty, rowHeight, printer.quantity(item.Quantity), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colPrice, rowHeight, printer.amount(item.UnitPrice), "1", 0, "R", false, 0, "")
		pdf.CellFormat(colTotal, rowHeight, printer.amount(item.Total), "1", 1, "R", false, 0, "")
	}
	pdf.Ln(3)
}

func (r *pdfRenderer) drawSummary(pdf *gofpdf.Fpdf, input RenderInput) {
	printer := newAmountPrinter(input)
	labelWidth := colPrice
	valueWidth := colTotal
	indent := pageMargin + contentWidth - labelWidth - valueWidth

	line := func(label, value string, bold bool) {
		style := ""
		if bold {
			style = "B"
		}
		pdf.SetFont("Helvetica", style, 9)
		pdf.SetX(indent)
		pdf.CellFormat(labelWidth, 6, label, "", 0, "L", false, 0, "")
		pdf.CellFormat(valueWidth, 6, value, "", 1, "R", false, 0, "")
	}

	line("Subtotal", printer.amount(input.Invoice.Subtotal), false)
	line(formatTaxLabel(input.Invoice.TaxPercent), printer.amount(input.Invoice.TaxAmount), false)
	if input.Invoice.DiscountValue > 0 {
		line("Discount", "-"+printer.amount(input.Invoice.DiscountValue), false)
	}
	if input.Invoice.UnderpaymentValue > 0 {
		line("Underpayment", printer.amount(input.Invoice.UnderpaymentValue), false)
	}

	y := pdf.GetY() + 1
	pdf.SetLineWidth(0.3)
	pdf.Line(indent, y, pageMargin+contentWidth, y)
	pdf.SetY(y + 1)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetX(indent)
	pdf.CellFormat(labelWidth, 7, "Total", "", 0, "L", false, 0, "")
	pdf.CellFormat(valueWidth, 7, printer.amount(input.Invoice.Total), "", 1, "R", false, 0, "")
	pdf.Ln(4)
}

func (r *pdfRenderer) drawNotes(pdf *gofpdf.Fpdf, input RenderInput) {
	lines := noteLines(input.Invoice.Notes)
	if len(lines) == 0 {
		return
	}
	pdf.SetFont("Helvetica", "B", 9)
	pdf.CellFormat(contentWidth, 5, "Notes", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 9)
	for _, line := range lines {
		pdf.CellFormat(contentWidth, 4.5, line, "", 1, "L", false, 0, "")
	}
}

func (r *pdfRenderer) drawFooter(pdf *gofpdf.Fpdf) {
	pdf.SetY(-30)
	pdf.SetFont("Helvetica", "I", 10)
	pdf.CellFormat(contentWidth, 6, "Thank you for your business!", "", 1, "C", false, 0, "")
}

// amountPrinter binds the company formatting context once per render.
type amountPrinter struct {
	company CompanyView
}

func newAmountPrinter(input RenderInput) amountPrinter {
	return amountPrinter{company: input.Company}
}

func (p amountPrinter) amount(value int64) string {
	return formatAmount(value, p.company)
}

func (p amountPrinter) quantity(value int64) string {
	return formatAmount(value, CompanyView{Language: p.company.Language})
}
