package parse

import (
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

// ExtractModel builds the model documented under "### <label>" at or after start. The
// heading must appear before the next "## " entry heading; otherwise the model is empty.
func (p *Parser) ExtractModel(lines []string, start int, label, name string) model.Model {
	m := model.Model{Name: name, Fields: []model.Field{}}

	heading := sectionHeading(label)
	i, ok := findLine(lines, start, func(line string) bool {
		return strings.Contains(line, heading)
	}, isEntryHeading)
	if !ok {
		p.logger.Debug().Str("model", name).Str("section", label).Msg("section not documented")
		return m
	}

	if fields, ok := p.parseFieldTable(lines, i+1); ok {
		m.Fields = fields
	}
	return m
}

// parseFieldTable parses the first table at or after start, resolving the nested fields of
// any object-typed row. ok is false when a heading comes before any table.
func (p *Parser) parseFieldTable(lines []string, start int) ([]model.Field, bool) {
	header, ok := findLine(lines, start, isTableLine, isAnyHeading)
	if !ok {
		return nil, false
	}

	fields := []model.Field{}
	for _, idx := range tableBody(lines, header) {
		f, _ := ParseRow(SplitRow(lines[idx]), RowOrdinary)
		if f == nil {
			p.logger.Debug().Str("row", strings.TrimSpace(lines[idx])).Msg("skipping table row")
			continue
		}
		if f.FieldType == model.FieldTypeObject {
			f.NestedFields = p.extractNestedFields(lines, idx+1, f.Name)
		}
		fields = append(fields, *f)
	}
	return fields, true
}

// extractNestedFields looks a bounded distance past an object field's row for the
// "`name` ... 内容如下" sentence and parses the table that follows it.
func (p *Parser) extractNestedFields(lines []string, start int, name string) []model.Field {
	marker := "`" + name + "`"
	for i := start; i < len(lines) && i-start < nestedLookahead; i++ {
		line := strings.TrimSpace(lines[i])
		if strings.Contains(line, marker) && strings.Contains(line, nestedFieldsPhrase) {
			fields, ok := p.parseFieldTable(lines, i+1)
			if !ok || len(fields) == 0 {
				return nil
			}
			return fields
		}
		if isAnyHeading(line) {
			return nil
		}
	}
	return nil
}
