package model

import "strings"

// Field is one documented property, built from a single table row.
type Field struct {
	Name            string           `json:"name" yaml:"name"`
	GoName          string           `json:"goName" yaml:"goName"`
	DataType        string           `json:"dataType" yaml:"dataType"`
	FieldType       FieldType        `json:"fieldType" yaml:"fieldType"`
	GoType          string           `json:"goType" yaml:"goType"`
	Description     string           `json:"description,omitempty" yaml:"description,omitempty"`
	Required        bool             `json:"required" yaml:"required"`
	DefaultValue    *string          `json:"default,omitempty" yaml:"default,omitempty"`
	PossibleValues  []string         `json:"possibleValues,omitempty" yaml:"possibleValues,omitempty"`
	IsOptional      bool             `json:"optional" yaml:"optional"`
	MessageVariants []MessageVariant `json:"messageVariants,omitempty" yaml:"messageVariants,omitempty"`
	// NestedFields is only populated for FieldTypeObject.
	NestedFields []Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// HasDefault reports whether the field carries a non-blank default value.
func (f Field) HasDefault() bool {
	return f.DefaultValue != nil && strings.TrimSpace(*f.DefaultValue) != ""
}
