package docgen

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/go-pdf/fpdf"
)

// PageLayout describes how report text is placed on the page. Units are points.
type PageLayout struct {
	Margin     float64
	FontFamily string
	FontSize   float64
	LineHeight float64
	WrapWidth  int
	PageHeight float64
}

// A4Layout: A4 portrait, 40pt margin, Helvetica 12/16, 95-character lines.
var A4Layout = PageLayout{
	Margin:     40,
	FontFamily: "Helvetica",
	FontSize:   12,
	LineHeight: 16,
	WrapWidth:  95,
	PageHeight: 841.89,
}

// PlacedLine is one line of output at baseline Y (from the top of the page).
type PlacedLine struct {
	Text string
	Y    float64
}

// Paginate wraps every input line and assigns it a page and baseline.
// Blank input lines produce no output.
func (l PageLayout) Paginate(text string) [][]PlacedLine {
	var pages [][]PlacedLine
	var cur []PlacedLine
	y := l.Margin
	for _, line := range strings.Split(text, "\n") {
		for _, w := range WrapLine(line, l.WrapWidth) {
			if y >= l.PageHeight-l.Margin {
				pages = append(pages, cur)
				cur = nil
				y = l.Margin
			}
			cur = append(cur, PlacedLine{Text: w, Y: y})
			y += l.LineHeight
		}
	}
	if len(cur) > 0 {
		pages = append(pages, cur)
	}
	return pages
}

// WrapLine greedily packs words into lines of at most width runes. Words
// longer than width are split.
func WrapLine(line string, width int) []string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return nil
	}
	if width <= 0 {
		return []string{strings.Join(words, " ")}
	}
	var out []string
	cur := ""
	curLen := 0
	for _, w := range words {
		for utf8.RuneCountInString(w) > width {
			if curLen > 0 {
				out = append(out, cur)
				cur, curLen = "", 0
			}
			head, tail := splitRunes(w, width)
			out = append(out, head)
			w = tail
		}
		n := utf8.RuneCountInString(w)
		switch {
		case n == 0:
		case curLen == 0:
			cur, curLen = w, n
		case curLen+1+n <= width:
			cur += " " + w
			curLen += 1 + n
		default:
			out = append(out, cur)
			cur, curLen = w, n
		}
	}
	if curLen > 0 {
		out = append(out, cur)
	}
	return out
}

func splitRunes(s string, n int) (string, string) {
	i := 0
	for pos := range s {
		if i == n {
			return s[:pos], s[pos:]
		}
		i++
	}
	return s, ""
}

// RenderPDF writes text as a paginated PDF. An empty text still yields a
// single blank page.
func RenderPDF(w io.Writer, text string) error {
	return A4Layout.RenderPDF(w, text)
}

func (l PageLayout) RenderPDF(w io.Writer, text string) error {
	if err := l.document(text).Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func (l PageLayout) document(text string) *fpdf.Fpdf {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(l.Margin, l.Margin, l.Margin)
	doc.SetTitle("Progress Report", true)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	pages := l.Paginate(text)
	if len(pages) == 0 {
		pages = [][]PlacedLine{nil}
	}
	for _, page := range pages {
		doc.AddPage()
		doc.SetFont(l.FontFamily, "", l.FontSize)
		for _, pl := range page {
			doc.Text(l.Margin, pl.Y, tr(pl.Text))
		}
	}
	return doc
}
