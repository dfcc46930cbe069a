// Package seed holds the catalog templates loaded by cmd/seed and by the
// memory store at startup.
package seed

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/oksasatya/data-labeling-backend/internal/domain/entity"
)

// templateNamespace keeps template ids stable across repeated seeding.
var templateNamespace = uuid.MustParse("6f1c2a9e-3d6b-4c58-9a0e-52d7f0b8e1a4")

// TemplateID derives the id of the template with the given number.
func TemplateID(no int) string {
	return uuid.NewSHA1(templateNamespace, []byte(strconv.Itoa(no))).String()
}

type templateFile struct {
	TemplateNo int    `json:"templateNo"`
	Template   string `json:"template"`
}

// DefaultTemplates is the built-in catalog.
func DefaultTemplates() []*entity.Template {
	return build([]templateFile{
		{TemplateNo: 1, Template: "Classify the sentiment of the text as positive, negative or neutral."},
		{TemplateNo: 2, Template: "Select every label that applies to the sample."},
		{TemplateNo: 3, Template: "Mark the span of the text that answers the question."},
		{TemplateNo: 4, Template: "Rate the quality of the response from 1 to 5."},
	})
}

// LoadTemplates reads a JSON array of {templateNo, template} objects.
func LoadTemplates(path string) ([]*entity.Template, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}
	var raw []templateFile
	if err := json.Unmarshal(b, &raw); err != nil {
		return nil, fmt.Errorf("decode templates: %w", err)
	}
	seen := make(map[int]bool, len(raw))
	for _, t := range raw {
		if seen[t.TemplateNo] {
			return nil, fmt.Errorf("duplicate templateNo %d", t.TemplateNo)
		}
		seen[t.TemplateNo] = true
	}
	return build(raw), nil
}

func build(raw []templateFile) []*entity.Template {
	sort.Slice(raw, func(i, j int) bool { return raw[i].TemplateNo < raw[j].TemplateNo })
	out := make([]*entity.Template, 0, len(raw))
	for _, t := range raw {
		out = append(out, &entity.Template{
			ID:         TemplateID(t.TemplateNo),
			TemplateNo: t.TemplateNo,
			Content:    t.Template,
		})
	}
	return out
}
