package typemap

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
)

const (
	GoTypeAny          = "interface{}"
	GoTypeMap          = "map[string]interface{}"
	GoTypeSlice        = "[]interface{}"
	GoTypeMessageValue = "MessageValue"
)

type rule struct {
	pattern   *regexp.Regexp
	fieldType model.FieldType
	goType    string
}

func newRule(pattern string, fieldType model.FieldType, goType string) rule {
	return rule{
		pattern:   regexp.MustCompile("^" + pattern + "$"),
		fieldType: fieldType,
		goType:    goType,
	}
}

// Rules are tried in order; the bare "number" rule must stay after every "number (x)" rule.
var rules = []rule{
	newRule(`number\s*\(\s*int64\s*\)`, model.FieldTypeInt64, "int64"),
	newRule(`number\s*\(\s*int32\s*\)`, model.FieldTypeInt32, "int32"),
	newRule(`number\s*\(\s*uint64\s*\)`, model.FieldTypeUint64, "uint64"),
	newRule(`number\s*\(\s*uint32\s*\)`, model.FieldTypeUint32, "uint32"),
	newRule(`number\s*\(\s*int\s*\)`, model.FieldTypeInt, "int"),
	newRule(`number\s*\(\s*uint\s*\)`, model.FieldTypeUint, "uint"),
	newRule(`number\s*\(\s*float64\s*\)`, model.FieldTypeFloat64, "float64"),
	newRule(`number\s*\(\s*float32\s*\)`, model.FieldTypeFloat32, "float32"),
	newRule(`number`, model.FieldTypeInt64, "int64"),
	newRule(`string`, model.FieldTypeString, "string"),
	newRule(`boolean`, model.FieldTypeBool, "bool"),
	newRule(`bool`, model.FieldTypeBool, "bool"),
	newRule(`object`, model.FieldTypeObject, GoTypeMap),
	newRule(`array`, model.FieldTypeArray, GoTypeSlice),
	newRule(`message`, model.FieldTypeMessage, GoTypeMessageValue),
}

// Classify maps a raw documentation type token such as "number (int64)" to its field type
// and Go type name. Unrecognized tokens yield FieldTypeUnknown.
func Classify(rawType string) (model.FieldType, string) {
	normalized := strings.ToLower(strings.TrimSpace(rawType))
	for _, r := range rules {
		if r.pattern.MatchString(normalized) {
			return r.fieldType, r.goType
		}
	}
	return model.FieldTypeUnknown, GoTypeAny
}

// IsRequired reports whether a field without the given default value must be supplied.
func IsRequired(defaultValue *string) bool {
	return defaultValue == nil || strings.TrimSpace(*defaultValue) == ""
}

// ToExportedCase converts snake_case to PascalCase by title-casing each part. There is no
// acronym handling: "user_id" becomes "UserId".
func ToExportedCase(snake string) string {
	caser := cases.Title(language.Und)
	var sb strings.Builder
	for _, part := range strings.Split(snake, "_") {
		sb.WriteString(caser.String(part))
	}
	return sb.String()
}

// MessageVariants lists the representations a message-typed field accepts.
func MessageVariants() []model.MessageVariant {
	return []model.MessageVariant{model.MessageVariantString, model.MessageVariantArray}
}
