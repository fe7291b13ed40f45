package model

type MessageSegment struct {
	// SegmentType is the wire-level "type" tag.
	SegmentType string  `json:"type" yaml:"type"`
	Fields      []Field `json:"fields" yaml:"fields"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
	CanSend     bool    `json:"canSend" yaml:"canSend"`
	CanReceive  bool    `json:"canReceive" yaml:"canReceive"`
}
