package content

import (
	"encoding/json"
	"errors"
)

// ReportFields are the five keys the report prompt asks for. Values may be a
// string or a list of strings.
var ReportFields = []string{
	"technical_knowledge",
	"communication_skills",
	"strengths",
	"areas_of_improvement",
	"overall_analysis",
}

var ErrNoReportJSON = errors.New("no JSON object in report reply")

// ParseReport decodes the first JSON object in reply.
func ParseReport(reply string) (map[string]any, error) {
	obj, ok := FirstJSONObject(reply)
	if !ok {
		return nil, ErrNoReportJSON
	}
	var out map[string]any
	if err := json.Unmarshal([]byte(obj), &out); err != nil {
		return nil, err
	}
	return out, nil
}
