package parse

import (
	"strings"
	"unicode"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/typemap"
)

type RowContext int

const (
	// RowOrdinary rows read {name, type, [default or possible values], description}.
	RowOrdinary RowContext = iota
	// RowMessageSegment rows read {name, receive, send, [possible values], description}.
	RowMessageSegment
)

// Capability is what a message segment table row says about receiving and sending.
type Capability struct {
	Receive bool
	Send    bool
}

func (c Capability) any() bool {
	return c.Receive || c.Send
}

var (
	checkGlyphs          = []string{"✓", "✔", "√"}
	alternativeSeparator = []string{" 或 ", " or "}
	valueListReplacer    = strings.NewReplacer("、", ",", "，", ",")
)

// SplitRow splits a pipe-delimited table row into trimmed cells, dropping the empty cells
// produced by the leading and trailing pipes. A row without any content has no cells.
func SplitRow(line string) []string {
	cells := strings.Split(strings.TrimSpace(line), "|")
	blank := true
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
		blank = blank && cells[i] == ""
	}
	if blank {
		return nil
	}
	if len(cells) > 0 && cells[0] == "" {
		cells = cells[1:]
	}
	if len(cells) > 0 && cells[len(cells)-1] == "" {
		cells = cells[:len(cells)-1]
	}
	return cells
}

// ParseRow turns the cells of one table row into a field. A nil field means the row is a
// header, a separator or otherwise malformed and should be skipped.
func ParseRow(cells []string, ctx RowContext) (*model.Field, Capability) {
	if ctx == RowMessageSegment {
		return parseSegmentRow(cells)
	}
	return parseOrdinaryRow(cells), Capability{}
}

func parseOrdinaryRow(cells []string) *model.Field {
	if len(cells) < 3 {
		return nil
	}
	name, ok := cleanFieldName(cells[0])
	if !ok {
		return nil
	}

	var (
		defaultValue   *string
		possibleValues []string
	)
	if len(cells) >= 4 {
		middle := cells[2]
		if looksLikeValueList(middle) {
			possibleValues = ParsePossibleValues(middle)
		} else if middle != "" && middle != "-" {
			v := strings.Trim(middle, "`")
			defaultValue = &v
		}
	}

	dataType := strings.Trim(cells[1], "`")
	fieldType, goType := typemap.Classify(dataType)
	required := typemap.IsRequired(defaultValue)

	f := &model.Field{
		Name:           name,
		GoName:         typemap.ToExportedCase(name),
		DataType:       dataType,
		FieldType:      fieldType,
		GoType:         goType,
		Description:    cells[len(cells)-1],
		Required:       required,
		DefaultValue:   defaultValue,
		PossibleValues: possibleValues,
	}
	f.IsOptional = !required || f.HasDefault()
	if fieldType == model.FieldTypeMessage {
		f.MessageVariants = typemap.MessageVariants()
	}
	return f
}

func parseSegmentRow(cells []string) (*model.Field, Capability) {
	if len(cells) < 4 {
		return nil, Capability{}
	}
	name, ok := cleanFieldName(cells[0])
	if !ok {
		return nil, Capability{}
	}

	description := cells[3]
	var possibleValues []string
	if len(cells) > 4 {
		possibleValues = ParsePossibleValues(cells[3])
		description = cells[4]
	}

	// Segment parameters travel as strings on the wire.
	const dataType = "string"
	fieldType, goType := typemap.Classify(dataType)

	f := &model.Field{
		Name:           name,
		GoName:         typemap.ToExportedCase(name),
		DataType:       dataType,
		FieldType:      fieldType,
		GoType:         goType,
		Description:    description,
		PossibleValues: possibleValues,
		IsOptional:     true,
	}
	return f, Capability{
		Receive: hasCheckGlyph(cells[1]),
		Send:    hasCheckGlyph(cells[2]),
	}
}

// ParsePossibleValues splits an enumeration cell such as "`friend`、`group`、`other`" into
// its values, in order.
func ParsePossibleValues(cell string) []string {
	if cell == "" || cell == "-" {
		return nil
	}
	var values []string
	for _, v := range strings.Split(valueListReplacer.Replace(cell), ",") {
		v = strings.TrimSpace(strings.Trim(strings.TrimSpace(v), "`"))
		if v == "" || v == "-" {
			continue
		}
		values = append(values, v)
	}
	return values
}

// looksLikeValueList decides whether a middle cell enumerates values rather than giving a
// default: locale list separators or at least one backtick-quoted token.
func looksLikeValueList(cell string) bool {
	return strings.Contains(cell, "、") ||
		strings.Contains(cell, "，") ||
		strings.Count(cell, "`") >= 2
}

func cleanFieldName(raw string) (string, bool) {
	if strings.HasPrefix(raw, "-") || strings.Contains(raw, "名") {
		return "", false
	}
	name := strings.Trim(raw, "`")
	for _, sep := range alternativeSeparator {
		if idx := strings.Index(name, sep); idx >= 0 {
			name = strings.Trim(strings.TrimSpace(name[:idx]), "`")
		}
	}
	if !isIdentifier(name) {
		return "", false
	}
	return name, true
}

func isIdentifier(name string) bool {
	hasAlnum := false
	for _, r := range name {
		switch {
		case r == '_':
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			hasAlnum = true
		default:
			return false
		}
	}
	return hasAlnum
}

func hasCheckGlyph(cell string) bool {
	for _, glyph := range checkGlyphs {
		if strings.Contains(cell, glyph) {
			return true
		}
	}
	return false
}
