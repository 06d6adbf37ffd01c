package pdf

import "github.com/phpdave11/gofpdf"

// RightTextX X que usa rightText para s, junto al ancho de s en cp1252 y en UTF-8 crudo.
func RightTextX(right float64, s string) (x, cp1252Width, rawWidth float64) {
	doc := gofpdf.New("P", "pt", "A4", "")
	doc.AddPage()
	doc.SetFont("Helvetica", "", 10)
	tr := doc.UnicodeTranslatorFromDescriptor("")
	x = rightText(doc, tr, right, 100, s)
	return x, doc.GetStringWidth(tr(s)), doc.GetStringWidth(s)
}
