package generate

import (
	"strings"

	"github.com/leizor/go-onebot-model-generator/pkg/model"
	"github.com/leizor/go-onebot-model-generator/pkg/typemap"
	"github.com/leizor/go-onebot-model-generator/pkg/util"
)

// EventNamer returns the Go type name configured for an event heading, if any.
type EventNamer func(heading string) (string, bool)

// RenderEvents renders events as a package of their own.
func RenderEvents(packageName string, events []model.EventModel, names EventNamer) ([]byte, error) {
	return NewPackage(packageName).RenderEvents(events, names)
}

// RenderEvents renders one struct per event. names may be nil.
func (p *Package) RenderEvents(events []model.EventModel, names EventNamer) ([]byte, error) {
	cb := util.NewCodeBuffer()
	p.addFileHeader(cb)

	for _, ev := range events {
		name := EventTypeName(ev)
		if names != nil {
			if configured, ok := names(ev.Name); ok && configured != "" {
				name = configured
			}
		}
		name = p.claim(name)

		doc := []string{name + " is the " + plainText(ev.Description) + " event."}
		var types []string
		if ev.PostType != "" {
			types = append(types, "post type: "+ev.PostType)
		}
		if ev.EventType != "" {
			types = append(types, "event type: "+ev.EventType)
		}
		if ev.SubType != "" {
			types = append(types, "sub type: "+ev.SubType)
		}
		doc = append(doc, strings.Join(types, " | "))
		p.addStruct(cb, name, doc, ev.Fields)
	}

	return formatSource(cb)
}

// EventTypeName derives a Go name from an event's type fields, most specific first:
// a single sub type, the event type, then the post type, with an Event suffix.
// 私聊消息 (message/private) becomes PrivateMessageEvent.
func EventTypeName(ev model.EventModel) string {
	var sb strings.Builder
	if ev.SubType != "" && !strings.Contains(ev.SubType, ",") {
		sb.WriteString(typemap.ToExportedCase(ev.SubType))
	}
	sb.WriteString(typemap.ToExportedCase(ev.EventType))
	sb.WriteString(typemap.ToExportedCase(ev.PostType))

	name := exportedName(sb.String(), "Event")
	if !strings.HasSuffix(name, "Event") {
		name += "Event"
	}
	return name
}
