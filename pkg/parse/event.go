package parse

import (
	"regexp"
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

var eventHeadingRegex = regexp.MustCompile(`^##\s+(.+?)$`)

// ExtractEvents returns one event per "## " heading that is followed by an event data
// table. Index headings and headings without a table are skipped.
func (p *Parser) ExtractEvents(content string) []model.EventModel {
	lines := splitLines(content)
	events := []model.EventModel{}

	for i, line := range lines {
		m := eventHeadingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := strings.TrimSpace(m[1])
		if strings.HasPrefix(name, "#") || strings.Contains(name, tocMarker) {
			continue
		}

		fields, ok := p.extractEventFields(lines, i+1)
		if !ok {
			p.logger.Debug().Str("heading", name).Msg("skipping heading without event data table")
			continue
		}

		types := DeriveEventTypes(fields)
		events = append(events, model.EventModel{
			Name:        name,
			Fields:      fields,
			PostType:    types.PostType,
			EventType:   types.EventType,
			SubType:     types.SubType,
			Description: name,
		})
	}

	p.logger.Debug().Int("count", len(events)).Msg("extracted events")
	return events
}

func (p *Parser) extractEventFields(lines []string, start int) ([]model.Field, bool) {
	for i := start; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		switch {
		case strings.Contains(line, sectionHeading(LabelEventData)),
			strings.Contains(line, sectionHeading(LabelReportData)):
			return p.parseFieldTable(lines, i+1)
		case strings.HasPrefix(line, "|") && strings.Contains(line, headerFieldName):
			return p.parseFieldTable(lines, i)
		case isEntryHeading(line):
			return nil, false
		}
	}
	return nil, false
}

type EventTypes struct {
	PostType  string
	EventType string
	SubType   string
}

var eventTypeFields = map[string]bool{
	"message_type":    true,
	"notice_type":     true,
	"request_type":    true,
	"meta_event_type": true,
}

// DeriveEventTypes reads the well-known type fields of an event's field list. post_type
// counts only when it documents a single value; sub_type keeps every value, comma-joined.
func DeriveEventTypes(fields []model.Field) EventTypes {
	var types EventTypes
	for _, f := range fields {
		if len(f.PossibleValues) == 0 {
			continue
		}
		switch {
		case f.Name == "post_type":
			if len(f.PossibleValues) == 1 {
				types.PostType = f.PossibleValues[0]
			}
		case eventTypeFields[f.Name]:
			types.EventType = f.PossibleValues[0]
		case f.Name == "sub_type":
			types.SubType = strings.Join(f.PossibleValues, ",")
		}
	}
	return types
}
