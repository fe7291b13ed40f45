package model

import "fmt"

// FieldType classifies a documented type token.
type FieldType int

const (
	FieldTypeUnknown FieldType = iota
	FieldTypeInt64
	FieldTypeInt32
	FieldTypeInt
	FieldTypeUint64
	FieldTypeUint32
	FieldTypeUint
	FieldTypeString
	FieldTypeBool
	FieldTypeFloat64
	FieldTypeFloat32
	FieldTypeObject
	FieldTypeArray
	// FieldTypeMessage is either a plain string or an ordered list of message segments.
	FieldTypeMessage
)

var fieldTypeNames = map[FieldType]string{
	FieldTypeUnknown: "unknown",
	FieldTypeInt64:   "int64",
	FieldTypeInt32:   "int32",
	FieldTypeInt:     "int",
	FieldTypeUint64:  "uint64",
	FieldTypeUint32:  "uint32",
	FieldTypeUint:    "uint",
	FieldTypeString:  "string",
	FieldTypeBool:    "bool",
	FieldTypeFloat64: "float64",
	FieldTypeFloat32: "float32",
	FieldTypeObject:  "object",
	FieldTypeArray:   "array",
	FieldTypeMessage: "message",
}

func (t FieldType) String() string {
	if name, ok := fieldTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("FieldType(%d)", int(t))
}

func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *FieldType) UnmarshalText(text []byte) error {
	for ft, name := range fieldTypeNames {
		if name == string(text) {
			*t = ft
			return nil
		}
	}
	return fmt.Errorf("unrecognized field type: %s", text)
}

// MessageVariant is one of the representations a message value may take on the wire.
type MessageVariant string

const (
	MessageVariantString MessageVariant = "string"
	MessageVariantArray  MessageVariant = "array"
)
