package parse

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

// Parser extracts definitions from OneBot Markdown documentation. A Parser holds no state
// between calls and may be shared between goroutines.
type Parser struct {
	logger zerolog.Logger
}

func NewParser(logger zerolog.Logger) *Parser {
	return &Parser{logger: logger}
}

var defaultParser = NewParser(zerolog.Nop())

func ExtractAPIs(content string) []model.APIDefinition {
	return defaultParser.ExtractAPIs(content)
}

func ExtractEvents(content string) []model.EventModel {
	return defaultParser.ExtractEvents(content)
}

func ExtractMessageSegments(content string) []model.MessageSegment {
	return defaultParser.ExtractMessageSegments(content)
}

func (p *Parser) ParseAPIFile(path string) ([]model.APIDefinition, error) {
	content, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return p.ExtractAPIs(content), nil
}

func (p *Parser) ParseEventFile(path string) ([]model.EventModel, error) {
	content, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return p.ExtractEvents(content), nil
}

func (p *Parser) ParseMessageSegmentFile(path string) ([]model.MessageSegment, error) {
	content, err := readDocument(path)
	if err != nil {
		return nil, err
	}
	return p.ExtractMessageSegments(content), nil
}

func readDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("problem reading document '%s': %w", path, err)
	}
	return string(data), nil
}
