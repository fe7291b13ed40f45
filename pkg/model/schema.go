package model

// Schema is everything extracted from one documentation tree, in document order.
type Schema struct {
	APIs     []APIDefinition  `json:"apis" yaml:"apis"`
	Events   []EventModel     `json:"events" yaml:"events"`
	Segments []MessageSegment `json:"segments" yaml:"segments"`
}
