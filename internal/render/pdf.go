// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package render

import (
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/pdiddy/keep-export/internal/keep"
	"github.com/pdiddy/keep-export/pkg/types"
)

// Page geometry in points.
const (
	inch      = 72.0
	margin    = 1 * inch
	maxImageW = 5 * inch
	maxImageH = 4 * inch
)

const fontFamily = "Helvetica"

// imageExts lists attachment extensions embedded as images.
var imageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// compressPDF controls page stream compression; tests turn it off to read
// the drawn text.
var compressPDF = true

// PDFRenderer lays out a note as a Letter-size PDF. Image attachments are
// resolved against ImportDir.
type PDFRenderer struct {
	ImportDir string
}

func (r PDFRenderer) Name() string { return "pdf" }

func (r PDFRenderer) Ext() string { return ".pdf" }

// Render builds the PDF for note and writes it to w. Nothing is written
// when composing the document fails.
func (r PDFRenderer) Render(note types.Note, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetCompression(compressPDF)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)
	pdf.SetTitle(keep.DisplayTitle(note), true)
	pdf.AddPage()

	doc := &pdfDoc{Fpdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}

	doc.paragraph(keep.DisplayTitle(note), "B", 16, "C")
	doc.Ln(0.25 * inch)

	doc.italic(fmt.Sprintf("Created: %s", note.CreatedAt.Format(keep.TitleTimeFormat)))
	doc.Ln(0.25 * inch)

	if note.Text != "" {
		for _, line := range strings.Split(note.Text, "\n") {
			if strings.TrimSpace(line) == "" {
				doc.Ln(0.1 * inch)
				continue
			}
			doc.paragraph(line, "", 12, "L")
			doc.Ln(12)
		}
	}

	for _, a := range note.Attachments {
		r.attachment(doc, a)
	}

	if len(note.Labels) > 0 {
		doc.Ln(0.25 * inch)
		doc.SetTextColor(128, 128, 128)
		doc.paragraph("Labels: "+strings.Join(note.Labels, ", "), "I", 10, "L")
		doc.SetTextColor(0, 0, 0)
	}

	if err := pdf.Error(); err != nil {
		return fmt.Errorf("composing PDF: %w", err)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("writing PDF: %w", err)
	}
	return nil
}

func (r PDFRenderer) attachment(doc *pdfDoc, attachment string) {
	name := attachmentName(attachment)
	if !imageExts[strings.ToLower(filepath.Ext(attachment))] {
		doc.italic("Attachment (non-image): " + name)
		return
	}

	src := filepath.Join(r.ImportDir, filepath.FromSlash(attachment))
	if _, err := os.Stat(src); err != nil {
		doc.italic("Missing image: " + name)
		return
	}

	info := doc.RegisterImageOptions(src, fpdf.ImageOptions{ReadDpi: true})
	if err := doc.Error(); err != nil {
		doc.ClearError()
		doc.italic(fmt.Sprintf("Error including attachment %s: %v", attachment, err))
		return
	}

	w, h := fitImage(info.Width(), info.Height())
	doc.ImageOptions(src, -1, 0, w, h, true, fpdf.ImageOptions{ReadDpi: true}, 0, "")
	doc.Ln(0.1 * inch)
	doc.italic("Attachment: " + name)
}

// fitImage scales w×h to fit the image box, keeping the aspect ratio.
func fitImage(w, h float64) (float64, float64) {
	if w <= 0 || h <= 0 {
		return maxImageW, maxImageH
	}
	scale := math.Min(maxImageW/w, maxImageH/h)
	return w * scale, h * scale
}

// pdfDoc wraps fpdf with the paragraph styles used for notes.
type pdfDoc struct {
	*fpdf.Fpdf
	tr func(string) string
}

func (d *pdfDoc) paragraph(text, style string, size float64, align string) {
	d.SetFont(fontFamily, style, size)
	d.MultiCell(0, size*1.2, d.tr(text), "", align, false)
}

func (d *pdfDoc) italic(text string) {
	d.paragraph(text, "I", 12, "L")
}
