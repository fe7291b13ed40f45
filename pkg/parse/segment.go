package parse

import (
	"regexp"
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

var (
	badgeRegex       = regexp.MustCompile(`</?Badge[^>]*>`)
	badgeTextRegex   = regexp.MustCompile(`<Badge[^>]*\btext="([^"]*)"`)
	segmentTypeRegex = regexp.MustCompile(`"type":\s*"(\w+)"`)
)

// ExtractMessageSegments returns one segment per "## " heading whose span embeds a JSON
// example with a "type" key.
func (p *Parser) ExtractMessageSegments(content string) []model.MessageSegment {
	lines := splitLines(content)
	segments := []model.MessageSegment{}

	for i := 0; i < len(lines); {
		if !strings.HasPrefix(lines[i], "## ") {
			i++
			continue
		}
		rawTitle := strings.TrimSpace(lines[i][3:])
		title := strings.TrimSpace(badgeRegex.ReplaceAllString(rawTitle, ""))
		if title == "" || strings.HasPrefix(title, "#") {
			i++
			continue
		}

		end := spanEnd(lines, i+1)
		segmentType, ok := findSegmentType(lines[i:end])
		if !ok {
			p.logger.Debug().Str("heading", title).Msg("skipping heading without segment type")
			i = end
			continue
		}

		fields, observed := p.parseCapabilityTable(lines, i, end)
		badge, hasBadge := badgeCapability(rawTitle)
		capability := resolveCapability(badge, hasBadge, observed)

		segments = append(segments, model.MessageSegment{
			SegmentType: segmentType,
			Fields:      fields,
			Description: title,
			CanSend:     capability.Send,
			CanReceive:  capability.Receive,
		})
		i = end
	}

	p.logger.Debug().Int("count", len(segments)).Msg("extracted message segments")
	return segments
}

// spanEnd returns the index of the next "## " heading at or after start, or len(lines).
func spanEnd(lines []string, start int) int {
	for j := start; j < len(lines); j++ {
		if strings.HasPrefix(lines[j], "## ") {
			return j
		}
	}
	return len(lines)
}

func findSegmentType(span []string) (string, bool) {
	for _, line := range span {
		if m := segmentTypeRegex.FindStringSubmatch(line); m != nil {
			return m[1], true
		}
	}
	return "", false
}

// parseCapabilityTable parses the first parameter table in [start, end) and rolls up the
// per-row receive/send marks.
func (p *Parser) parseCapabilityTable(lines []string, start, end int) ([]model.Field, Capability) {
	fields := []model.Field{}
	var observed Capability

	for j := start; j < end; j++ {
		line := strings.TrimSpace(lines[j])
		if !strings.Contains(line, "|") ||
			!(strings.Contains(line, headerParamName) || strings.Contains(line, headerFieldName)) {
			continue
		}

		j++
		if j < end && isSeparatorRow(lines[j]) {
			j++
		}
		for ; j < end; j++ {
			row := strings.TrimSpace(lines[j])
			if row == "" || !strings.HasPrefix(row, "|") {
				break
			}
			f, c := ParseRow(SplitRow(row), RowMessageSegment)
			if f == nil {
				continue
			}
			fields = append(fields, *f)
			observed.Receive = observed.Receive || c.Receive
			observed.Send = observed.Send || c.Send
		}
		break
	}
	return fields, observed
}

// badgeCapability reads a send-only or receive-only badge from a raw heading, e.g.
// `<Badge text="发" vertical="middle" />`.
func badgeCapability(rawTitle string) (Capability, bool) {
	for _, m := range badgeTextRegex.FindAllStringSubmatch(rawTitle, -1) {
		text := strings.ToLower(strings.TrimSpace(m[1]))
		switch {
		case strings.HasPrefix(text, "发") || strings.Contains(text, "send"):
			return Capability{Send: true}, true
		case strings.HasPrefix(text, "收") || strings.Contains(text, "receive"):
			return Capability{Receive: true}, true
		}
	}
	return Capability{}, false
}

// resolveCapability applies badge > table marks > both.
func resolveCapability(badge Capability, hasBadge bool, observed Capability) Capability {
	if hasBadge {
		return badge
	}
	if observed.any() {
		return observed
	}
	return Capability{Receive: true, Send: true}
}
