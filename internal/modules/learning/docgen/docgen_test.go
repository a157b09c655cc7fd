package docgen

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
)

func TestRenderReportMarkdown(t *testing.T) {
	md := RenderReportMarkdown(map[string]any{
		"technical_knowledge":  "Solid grasp of slices.",
		"communication_skills": "",
		"strengths":            []any{"Concise", nil, "Curious"},
		"overall_analysis":     "```\nKeep going.\n```",
	})
	for _, want := range []string{
		"# User Progress Report\n",
		"## 1) Technical Knowledge\nSolid grasp of slices.\n",
		"## 2) Communication Skills\nNo content available.\n",
		"## 3) Strengths\nConcise Curious\n",
		"## 4) Areas Of Improvement\nNo content available.\n",
		"## 5) Overall Analysis\nKeep going.\n",
	} {
		if !strings.Contains(md, want) {
			t.Fatalf("markdown missing %q:\n%s", want, md)
		}
	}
	if strings.Index(md, "## 1)") > strings.Index(md, "## 5)") {
		t.Fatalf("sections out of order")
	}
}

func TestWrapLine(t *testing.T) {
	if got := WrapLine("   ", 95); len(got) != 0 {
		t.Fatalf("blank line should produce nothing, got %q", got)
	}
	got := WrapLine("aaa bbb ccc ddd", 7)
	if strings.Join(got, "|") != "aaa bbb|ccc ddd" {
		t.Fatalf("got %q", got)
	}
	got = WrapLine("abcdefghij xy", 4)
	if strings.Join(got, "|") != "abcd|efgh|ij|xy" {
		t.Fatalf("long word split: got %q", got)
	}
	long := strings.Repeat("word ", 60)
	for _, l := range WrapLine(long, 95) {
		if len(l) > 95 {
			t.Fatalf("line exceeds width: %d", len(l))
		}
	}
}

func TestPaginate(t *testing.T) {
	var lines []string
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("line %d", i))
		lines = append(lines, "")
	}
	pages := A4Layout.Paginate(strings.Join(lines, "\n"))
	if len(pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(pages))
	}
	if len(pages[0]) != 48 || len(pages[1]) != 48 || len(pages[2]) != 4 {
		t.Fatalf("unexpected page sizes %d/%d/%d", len(pages[0]), len(pages[1]), len(pages[2]))
	}
	if pages[0][0].Y != 40 || pages[1][0].Y != 40 || pages[0][1].Y != 56 {
		t.Fatalf("unexpected baselines")
	}
	last := pages[0][len(pages[0])-1]
	if last.Y >= A4Layout.PageHeight-A4Layout.Margin {
		t.Fatalf("line placed inside bottom margin at %v", last.Y)
	}
	if pages[2][3].Text != "line 99" {
		t.Fatalf("unexpected last line %q", pages[2][3].Text)
	}
	if got := A4Layout.Paginate("\n\n  \n"); len(got) != 0 {
		t.Fatalf("blank text should produce no pages, got %d", len(got))
	}
}

func TestRenderPDF(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, RenderReportMarkdown(map[string]any{"strengths": "Résumé-ready ✓"})); err != nil {
		t.Fatalf("RenderPDF: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")) {
		t.Fatalf("output is not a pdf")
	}

	if got := A4Layout.document(strings.Repeat("x\n", 200)).PageCount(); got != 5 {
		t.Fatalf("expected 5 pages, got %d", got)
	}
	if got := A4Layout.document("").PageCount(); got != 1 {
		t.Fatalf("empty report should still have one page, got %d", got)
	}
}
