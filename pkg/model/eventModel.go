package model

type EventModel struct {
	// Name is the heading text the event was documented under.
	Name   string  `json:"name" yaml:"name"`
	Fields []Field `json:"fields" yaml:"fields"`
	// PostType is only set when post_type documents exactly one value.
	PostType  string `json:"postType,omitempty" yaml:"postType,omitempty"`
	EventType string `json:"eventType,omitempty" yaml:"eventType,omitempty"`
	// SubType joins every documented sub_type value with a comma.
	SubType     string `json:"subType,omitempty" yaml:"subType,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}
