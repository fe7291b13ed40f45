package model

// Model is a named, ordered list of fields. A model with no fields is valid and means the
// section was absent from the document.
type Model struct {
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
}

type APIDefinition struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Request     Model  `json:"request" yaml:"request"`
	Response    Model  `json:"response" yaml:"response"`
}
