package tracker

import "github.com/dhima/activity-logger/pkg/dom"

// listenerKey identifies the tracker's click listener on a document so that
// a second Init (for example after a hot reload) does not double-report.
const listenerKey = "activity-logger"

// Page-view values sent when Options.TrackPageViews is set.
const (
	PageViewFeature = "page"
	PageViewAction  = "open_page"
)

// ActivityReporter is satisfied by *Reporter.
type ActivityReporter interface {
	Report(loc dom.Location, f Fields)
}

// Options control optional tracker behaviour.
type Options struct {
	// TrackPageViews reports one page-open event at Init. Off by default.
	TrackPageViews bool
}

// Init attaches the click listener to doc. It returns false, and does
// nothing else, if the tracker is already attached to this document.
func Init(doc *dom.Document, reporter ActivityReporter, opts Options) bool {
	attached := doc.AddEventListener(dom.EventClick, listenerKey, func(ev dom.Event) {
		handleClick(doc, reporter, ev)
	})
	if !attached {
		return false
	}

	if opts.TrackPageViews {
		LogPageView(doc, reporter)
	}
	return true
}

// Detach removes the click listener installed by Init.
func Detach(doc *dom.Document) bool {
	return doc.RemoveEventListener(dom.EventClick, listenerKey)
}

// LogPageView reports a page-open event with the document title as notes.
func LogPageView(doc *dom.Document, reporter ActivityReporter) {
	title := doc.Title
	reporter.Report(doc.Location(), Fields{
		Feature: ptr(PageViewFeature),
		Action:  PageViewAction,
		Notes:   &title,
	})
}

func handleClick(doc *dom.Document, reporter ActivityReporter, ev dom.Event) {
	fields, ok := Extract(ev.Target)
	if !ok {
		return
	}
	reporter.Report(doc.Location(), fields)
}

func ptr(s string) *string { return &s }
