package docgen

import (
	"fmt"
	"strings"
)

const NoContent = "No content available."

type reportSection struct {
	Key     string
	Heading string
}

var reportSections = []reportSection{
	{Key: "technical_knowledge", Heading: "## 1) Technical Knowledge"},
	{Key: "communication_skills", Heading: "## 2) Communication Skills"},
	{Key: "strengths", Heading: "## 3) Strengths"},
	{Key: "areas_of_improvement", Heading: "## 4) Areas Of Improvement"},
	{Key: "overall_analysis", Heading: "## 5) Overall Analysis"},
}

// RenderReportMarkdown lays the five assessment fields out under fixed headings.
func RenderReportMarkdown(fields map[string]any) string {
	var b strings.Builder
	b.WriteString("# User Progress Report\n")
	for _, s := range reportSections {
		b.WriteString("\n")
		b.WriteString(s.Heading)
		b.WriteString("\n")
		b.WriteString(reportValue(fields[s.Key]))
		b.WriteString("\n")
	}
	return b.String()
}

func reportValue(v any) string {
	var s string
	switch t := v.(type) {
	case nil:
		return NoContent
	case string:
		s = t
	case []any:
		parts := make([]string, 0, len(t))
		for _, p := range t {
			if p == nil {
				continue
			}
			if ps := strings.TrimSpace(fmt.Sprint(p)); ps != "" {
				parts = append(parts, ps)
			}
		}
		s = strings.Join(parts, " ")
	case []string:
		s = strings.Join(t, " ")
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") && strings.HasSuffix(s, "```") {
		lines := strings.Split(s, "\n")
		if len(lines) >= 2 {
			s = strings.TrimSpace(strings.Join(lines[1:len(lines)-1], "\n"))
		} else {
			s = ""
		}
	}
	if s == "" {
		return NoContent
	}
	return s
}
