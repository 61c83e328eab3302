// Package report turns a finished causal analysis into shareable
// artifacts: a Markdown RCA report, an executive slide deck, and cause
// suggestions for an analysis that has stalled.
//
// The Generator wraps any llms.Model. Guard conditions (no diagram yet,
// no report yet) return canned assistant-voice messages instead of
// errors, so callers can surface them directly in the conversation.
// RenderHTML and RenderSlidesHTML convert the Markdown output to
// sanitized HTML for embedding in a viewer.
package report
