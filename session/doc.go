// Package session drives an interactive root cause analysis conversation.
//
// A Session ties together the pieces of an analysis: the causal graph
// (package wba), the phase state machine and its system prompts (package
// phase), the heuristic node extractor (package extract), the report
// generator (package report) and a language-model backend implementing
// llms.Model. Each call to Send or StreamSend processes one user turn:
// the message is appended to the history, the backend is invoked with the
// phase prompt plus diagram context, the reply is scanned for node
// creations, and the project is persisted when a store.Saver is attached.
//
// # Basic Usage
//
//	model, err := openaicompat.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	s := session.New(model)
//	reply, err := s.Send(ctx, "Our checkout service went down for two hours last night.")
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(reply)
//
// # Streaming
//
// StreamSend delivers the reply incrementally. The concatenation of the
// chunks passed to the callback is exactly the returned reply, so callers
// can render progressively and reconcile against the final text:
//
//	reply, err := s.StreamSend(ctx, msg, func(chunk string) {
//		fmt.Print(chunk)
//	})
//
// By default the backend's own token stream is forwarded. With
// WithNativeStreaming(false) the session instead completes the reply and
// replays it in word-group chunks with a short pause between them.
//
// # Commands
//
// Messages starting with the /canvas prefix bypass the backend entirely
// and are executed against the graph by package command. The outcome is
// reported as the assistant reply and recorded in the history like any
// other turn.
//
// # Failure Handling
//
// When the backend call fails the turn still completes: the reply is the
// fixed Apology text, both messages land in the history, the project is
// saved, and the error returned alongside is a *BackendError that wraps
// the underlying failure.
package session
