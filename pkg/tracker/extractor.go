package tracker

import "github.com/dhima/activity-logger/pkg/dom"

// Declarative attributes read from the page.
const (
	AttrLog     = "data-log"
	AttrFeature = "data-feature"
	AttrAction  = "data-action"
	AttrNotes   = "data-notes"

	DefaultAction = "click"
)

// Fields are the values extracted from an opted-in element.
type Fields struct {
	Feature *string
	Action  string
	Notes   *string
}

// Extract finds the nearest node at or above target that carries data-log
// and reads its feature, action and notes. The second result is false when
// no node in the chain opted in.
func Extract(target *dom.Node) (Fields, bool) {
	el := target.Closest(AttrLog)
	if el == nil {
		return Fields{}, false
	}

	action, _ := el.Attr(AttrAction)
	if action == "" {
		action = DefaultAction
	}
	return Fields{
		Feature: optional(el, AttrFeature),
		Action:  action,
		Notes:   optional(el, AttrNotes),
	}, true
}

func optional(n *dom.Node, attr string) *string {
	v, ok := n.Attr(attr)
	if !ok || v == "" {
		return nil
	}
	return &v
}
