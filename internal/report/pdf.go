package report

import (
	"fmt"
	"io"
	"time"

	"github.com/jung-kurt/gofpdf"
)

const (
	pageW    = 210.0
	pageH    = 297.0
	marginL  = 20.0
	marginR  = 20.0
	marginT  = 20.0
	contentW = pageW - marginL - marginR
)

var (
	cBrand  = [3]int{22, 78, 99}
	cInk90  = [3]int{30, 30, 30}
	cInk50  = [3]int{110, 110, 110}
	cRule   = [3]int{220, 224, 228}
	cHighBg = [3]int{232, 244, 238}
)

func setFill(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetFillColor(c[0], c[1], c[2]) }
func setText(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetTextColor(c[0], c[1], c[2]) }
func setDraw(pdf *gofpdf.Fpdf, c [3]int) { pdf.SetDrawColor(c[0], c[1], c[2]) }

// ensureSpace adds a page when fewer than needed mm remain.
func ensureSpace(pdf *gofpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pageH-25 {
		pdf.AddPage()
		pdf.SetY(marginT + 5)
	}
}

// Scrivi renders p as an A4 PDF.
func Scrivi(w io.Writer, p Prospetto, generato time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginL, 15, marginR)
	pdf.SetAutoPageBreak(false, 20)
	pdf.SetTitle(transliterate(p.Titolo), false)

	pdf.SetFooterFunc(func() {
		pdf.SetY(-14)
		setDraw(pdf, cRule)
		pdf.SetLineWidth(0.3)
		pdf.Line(marginL, pdf.GetY(), pageW-marginR, pdf.GetY())
		pdf.SetY(-11)
		pdf.SetFont("Helvetica", "", 6.5)
		setText(pdf, cInk50)
		pdf.SetX(marginL)
		pdf.CellFormat(contentW/2, 8, transliterate("Generato il "+generato.Format("02/01/2006 15:04")), "", 0, "L", false, 0, "")
		pdf.CellFormat(contentW/2, 8, fmt.Sprintf("%d", pdf.PageNo()), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	setFill(pdf, cBrand)
	pdf.Rect(0, 0, pageW, 32, "F")
	pdf.SetXY(marginL, 11)
	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(contentW, 9, transliterate(p.Titolo), "", 1, "L", false, 0, "")
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", "", 9)
	pdf.CellFormat(contentW, 5, fmt.Sprintf("Parametri fiscali %d", p.AnnoFiscale), "", 1, "L", false, 0, "")
	pdf.SetY(40)

	for _, s := range p.Sezioni {
		if len(s.Righe) == 0 {
			continue
		}
		ensureSpace(pdf, 12+float64(len(s.Righe))*7)
		pdf.SetX(marginL)
		pdf.SetFont("Helvetica", "B", 11)
		setText(pdf, cBrand)
		pdf.CellFormat(contentW, 7, transliterate(s.Titolo), "", 1, "L", false, 0, "")
		setDraw(pdf, cRule)
		pdf.SetLineWidth(0.2)
		pdf.Line(marginL, pdf.GetY(), pageW-marginR, pdf.GetY())
		pdf.Ln(1.5)

		for _, r := range s.Righe {
			drawRiga(pdf, r)
		}
		pdf.Ln(4)
	}

	if len(p.Note) > 0 {
		ensureSpace(pdf, float64(len(p.Note))*8)
		pdf.SetFont("Helvetica", "I", 7.5)
		setText(pdf, cInk50)
		for _, n := range p.Note {
			if n == "" {
				continue
			}
			pdf.SetX(marginL)
			pdf.MultiCell(contentW, 4, transliterate(n), "", "L", false)
		}
	}

	return pdf.Output(w)
}

func drawRiga(pdf *gofpdf.Fpdf, r Riga) {
	style := ""
	if r.Evidenza {
		style = "B"
		setFill(pdf, cHighBg)
	}
	pdf.SetX(marginL)
	pdf.SetFont("Helvetica", style, 9.5)
	setText(pdf, cInk90)
	pdf.CellFormat(contentW*0.65, 6.5, transliterate(r.Voce), "", 0, "L", r.Evidenza, 0, "")
	pdf.CellFormat(contentW*0.35, 6.5, transliterate(r.Valore), "", 1, "R", r.Evidenza, 0, "")
}
