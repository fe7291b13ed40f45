package generate

import (
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/typemap"
	"github.com/leizor/go-onebot-model-generator/pkg/util"
)

type segmentNames struct {
	constName  string
	structName string
}

// RenderMessageSegments renders segments as a package of their own.
func RenderMessageSegments(packageName string, segments []model.MessageSegment) ([]byte, error) {
	return NewPackage(packageName).RenderMessageSegments(segments)
}

// RenderMessageSegments renders the segment data structs together with the Segment
// envelope and the MessageValue union that MESSAGE fields refer to.
func (p *Package) RenderMessageSegments(segments []model.MessageSegment) ([]byte, error) {
	cb := util.NewCodeBuffer()
	p.addFileHeader(cb)
	cb.AddLine("import (")
	cb.IncrementIndent()
	cb.AddLine("%q", "bytes")
	cb.AddLine("%q", "encoding/json")
	cb.AddLine("%q", "fmt")
	cb.DecrementIndent()
	cb.AddLine(")")
	cb.AddBlankLine()

	names := make([]segmentNames, len(segments))
	for i, seg := range segments {
		base := exportedName(typemap.ToExportedCase(seg.SegmentType), "Segment")
		names[i] = segmentNames{
			constName:  p.claim("SegmentType" + base),
			structName: p.claim(base + "SegmentData"),
		}
	}

	addSegmentTypes(cb, segments, names)
	addSegmentEnvelope(cb, segments, names)
	addMessageValue(cb)

	for i, seg := range segments {
		n := names[i]
		doc := []string{n.structName + " is the data of a " + seg.SegmentType + " segment."}
		if d := plainText(seg.Description); d != "" && d != seg.SegmentType {
			doc = append(doc, d)
		}
		doc = append(doc, capabilityComment(seg))
		p.addStruct(cb, n.structName, doc, seg.Fields, "SegmentType")

		cb.AddLine("func (%s) SegmentType() SegmentDataType {", n.structName)
		cb.IncrementIndent()
		cb.AddLine("return %s", n.constName)
		cb.DecrementIndent()
		cb.AddLine("}")
		cb.AddBlankLine()
	}

	return formatSource(cb)
}

func capabilityComment(seg model.MessageSegment) string {
	var dirs []string
	if seg.CanReceive {
		dirs = append(dirs, "received")
	}
	if seg.CanSend {
		dirs = append(dirs, "sent")
	}
	if len(dirs) == 0 {
		return "Neither sent nor received."
	}
	return "Can be " + strings.Join(dirs, " and ") + "."
}

func addSegmentTypes(cb util.CodeBuffer, segments []model.MessageSegment, names []segmentNames) {
	cb.AddComment("SegmentDataType is the type of a message segment on the wire.")
	cb.AddLine("type SegmentDataType string")
	cb.AddBlankLine()
	if len(segments) > 0 {
		cb.AddLine("const (")
		cb.IncrementIndent()
		for i, seg := range segments {
			cb.AddLine("%s SegmentDataType = %q", names[i].constName, seg.SegmentType)
		}
		cb.DecrementIndent()
		cb.AddLine(")")
		cb.AddBlankLine()
	}

	cb.AddComment("SegmentData is implemented by the data struct of every segment type.")
	cb.AddLine("type SegmentData interface {")
	cb.IncrementIndent()
	cb.AddLine("SegmentType() SegmentDataType")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddBlankLine()
}

func addSegmentEnvelope(cb util.CodeBuffer, segments []model.MessageSegment, names []segmentNames) {
	cb.AddComment("Segment is one element of an array message.")
	cb.AddLine("type Segment struct {")
	cb.IncrementIndent()
	cb.AddRaw("Type SegmentDataType `json:\"type\"`")
	cb.AddRaw("Data json.RawMessage `json:\"data\"`")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddBlankLine()

	cb.AddLine("func NewSegment(data SegmentData) (Segment, error) {")
	cb.IncrementIndent()
	cb.AddLine("raw, err := json.Marshal(data)")
	cb.AddLine("if err != nil {")
	cb.IncrementIndent()
	cb.AddLine("return Segment{}, fmt.Errorf(\"problem encoding %%s segment: %%w\", data.SegmentType(), err)")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddLine("return Segment{Type: data.SegmentType(), Data: raw}, nil")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddBlankLine()

	cb.AddComment("DecodeData decodes Data into the struct registered for Type.")
	cb.AddLine("func (s Segment) DecodeData() (SegmentData, error) {")
	cb.IncrementIndent()
	cb.AddLine("switch s.Type {")
	for i := range segments {
		n := names[i]
		cb.AddLine("case %s:", n.constName)
		cb.IncrementIndent()
		cb.AddLine("var data %s", n.structName)
		cb.AddLine("if err := json.Unmarshal(s.Data, &data); err != nil {")
		cb.IncrementIndent()
		cb.AddLine("return nil, fmt.Errorf(\"problem decoding %%s segment: %%w\", s.Type, err)")
		cb.DecrementIndent()
		cb.AddLine("}")
		cb.AddLine("return data, nil")
		cb.DecrementIndent()
	}
	cb.AddLine("default:")
	cb.IncrementIndent()
	cb.AddLine("return nil, fmt.Errorf(\"unknown segment type %%q\", s.Type)")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.DecrementIndent()
	cb.AddLine("}")
	cb.AddBlankLine()
}

func addMessageValue(cb util.CodeBuffer) {
	for _, line := range messageValueSource {
		cb.AddRaw(line)
	}
	cb.AddBlankLine()
}

var messageValueSource = []string{
	"// MessageValue is a message in either wire form: a CQ code string or an array of segments.",
	"type MessageValue struct {",
	"\tText     string",
	"\tSegments []Segment",
	"\t// IsArray selects the array form when encoding.",
	"\tIsArray bool",
	"}",
	"",
	"func (m MessageValue) MarshalJSON() ([]byte, error) {",
	"\tif m.IsArray {",
	"\t\tsegments := m.Segments",
	"\t\tif segments == nil {",
	"\t\t\tsegments = []Segment{}",
	"\t\t}",
	"\t\treturn json.Marshal(segments)",
	"\t}",
	"\treturn json.Marshal(m.Text)",
	"}",
	"",
	"func (m *MessageValue) UnmarshalJSON(data []byte) error {",
	"\ttrimmed := bytes.TrimSpace(data)",
	"\tif len(trimmed) > 0 && trimmed[0] == '[' {",
	"\t\tvar segments []Segment",
	"\t\tif err := json.Unmarshal(trimmed, &segments); err != nil {",
	"\t\t\treturn fmt.Errorf(\"problem decoding message segments: %w\", err)",
	"\t\t}",
	"\t\t*m = MessageValue{Segments: segments, IsArray: true}",
	"\t\treturn nil",
	"\t}",
	"\tvar text string",
	"\tif err := json.Unmarshal(trimmed, &text); err != nil {",
	"\t\treturn fmt.Errorf(\"problem decoding message string: %w\", err)",
	"\t}",
	"\t*m = MessageValue{Text: text}",
	"\treturn nil",
	"}",
}
