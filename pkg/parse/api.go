package parse

import (
	"regexp"
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

var apiHeadingRegex = regexp.MustCompile("^##\\s+`(\\w+)`\\s+(.+?)$")

// ExtractAPIs finds every "## `api_name` description" heading and pairs it with its
// parameter and response tables. Both models are always present, possibly empty.
func (p *Parser) ExtractAPIs(content string) []model.APIDefinition {
	lines := splitLines(content)
	apis := []model.APIDefinition{}

	for i, line := range lines {
		m := apiHeadingRegex.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name, description := m[1], strings.TrimSpace(m[2])

		apis = append(apis, model.APIDefinition{
			Name:        name,
			Description: description,
			Request:     p.ExtractModel(lines, i+1, LabelParameters, name+"_req"),
			Response:    p.ExtractModel(lines, i+1, LabelResponse, name+"_resp"),
		})
	}

	p.logger.Debug().Int("count", len(apis)).Msg("extracted apis")
	return apis
}
