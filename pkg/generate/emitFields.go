package generate

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/typemap"
	"github.com/leizor/go-onebot-model-generator/pkg/util"
)

const header = "// Code generated by obmg from OneBot documentation. DO NOT EDIT."

var enumValueRegex = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// fixedDeclarations are the identifiers message.go always declares.
var fixedDeclarations = []string{
	"SegmentDataType",
	"SegmentData",
	"Segment",
	"NewSegment",
	typemap.GoTypeMessageValue,
}

// Package renders the files of one generated Go package. Every type and constant it
// declares, across all of its files, gets a distinct name.
type Package struct {
	name string
	used map[string]bool
}

func NewPackage(name string) *Package {
	p := &Package{name: name, used: map[string]bool{}}
	for _, d := range fixedDeclarations {
		p.used[d] = true
	}
	return p
}

// claim reserves name for a package-level declaration, suffixing it when already taken.
func (p *Package) claim(name string) string {
	return uniqueName(p.used, name)
}

func (p *Package) addFileHeader(cb util.CodeBuffer) {
	cb.AddRaw(header)
	cb.AddBlankLine()
	cb.AddLine("package %s", p.name)
	cb.AddBlankLine()
}

// addStruct writes the struct named name for fields, followed by the enum types and the
// nested structs its fields need. Field names never take one of reserved.
func (p *Package) addStruct(cb util.CodeBuffer, name string, doc []string, fields []model.Field, reserved ...string) {
	var extra []func()

	for _, line := range doc {
		cb.AddComment(line)
	}
	cb.AddLine("type %s struct {", name)
	cb.IncrementIndent()
	used := map[string]bool{}
	for _, r := range reserved {
		used[r] = true
	}
	for _, f := range fields {
		f.GoName = uniqueName(used, exportedName(f.GoName, "Field"))
		goType := fieldGoType(f)
		switch {
		case len(f.NestedFields) > 0:
			nestedName := p.claim(name + f.GoName)
			goType = "*" + nestedName
			nested := f.NestedFields
			extra = append(extra, func() {
				p.addStruct(cb, nestedName, nil, nested)
			})
		case isEnum(f):
			enumName := p.claim(name + f.GoName)
			goType = enumName
			values := f.PossibleValues
			extra = append(extra, func() {
				p.addEnum(cb, enumName, values)
			})
		}
		cb.AddComment(fieldComment(f))
		cb.AddRaw(fmt.Sprintf("%s %s `json:\"%s\"`", f.GoName, goType, jsonTag(f)))
	}
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddBlankLine()

	for _, add := range extra {
		add()
	}
}

// fieldGoType is the declared type of a field. Unknown types stay untyped.
func fieldGoType(f model.Field) string {
	switch f.FieldType {
	case model.FieldTypeMessage:
		return "*" + typemap.GoTypeMessageValue
	case model.FieldTypeUnknown:
		return typemap.GoTypeAny
	default:
		return f.GoType
	}
}

func jsonTag(f model.Field) string {
	if f.IsOptional {
		return f.Name + ",omitempty"
	}
	return f.Name
}

func fieldComment(f model.Field) string {
	parts := []string{}
	if d := plainText(f.Description); d != "" {
		parts = append(parts, d)
	}
	if f.HasDefault() {
		parts = append(parts, "default: "+*f.DefaultValue)
	}
	if len(f.PossibleValues) > 0 {
		parts = append(parts, "possible values: "+strings.Join(f.PossibleValues, ", "))
	}
	var lines []string
	if len(parts) > 0 {
		lines = append(lines, strings.Join(parts, " | "))
	}
	if f.FieldType == model.FieldTypeMessage {
		lines = append(lines, "Either a CQ code string or an array of message segments.")
	}
	return strings.Join(lines, "\n")
}

// isEnum reports whether a string field's possible values can become Go constants.
func isEnum(f model.Field) bool {
	if f.FieldType != model.FieldTypeString || len(f.PossibleValues) == 0 {
		return false
	}
	for _, v := range f.PossibleValues {
		if !enumValueRegex.MatchString(v) {
			return false
		}
	}
	return true
}

func (p *Package) addEnum(cb util.CodeBuffer, name string, values []string) {
	cb.AddLine("type %s string", name)
	cb.AddBlankLine()
	cb.AddLine("const (")
	cb.IncrementIndent()
	seen := map[string]bool{}
	for _, v := range values {
		if seen[v] {
			continue
		}
		seen[v] = true
		cb.AddLine("%s %s = %q", p.claim(name+typemap.ToExportedCase(v)), name, v)
	}
	cb.DecrementIndent()
	cb.AddLine(")")
	cb.AddBlankLine()
}

// exportedName makes sure name can start an exported identifier.
func exportedName(name, prefix string) string {
	if name == "" {
		return prefix
	}
	if first := name[0]; first < 'A' || first > 'Z' {
		return prefix + name
	}
	return name
}

// uniqueName returns name, or name with the lowest numeric suffix not yet used.
func uniqueName(used map[string]bool, name string) string {
	candidate := name
	for i := 2; used[candidate]; i++ {
		candidate = fmt.Sprintf("%s%d", name, i)
	}
	used[candidate] = true
	return candidate
}
