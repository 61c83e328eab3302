// Package drilldown is a conversation-driven root cause analysis engine.
//
// It builds a Why-Because causal graph out of an ordinary chat with a
// language-model backend: the user describes an incident, the assistant
// asks Why-Because questions, and a heuristic extractor turns both sides
// of the conversation into typed nodes and connections on a shared
// diagram. The diagram can also be edited directly through a small
// command grammar, analyzed, persisted, and rendered into reports and
// slide decks.
//
// The module is organized as focused packages:
//
//   - wba: the causal graph store (typed nodes, typed links, dedup,
//     cascade deletes, Mermaid export)
//   - command: the /canvas command grammar for direct graph edits
//   - phase: the six-phase analysis state machine and its system prompts
//   - extract: heuristic extraction of nodes from conversation text
//   - session: the conversation loop tying graph, phases, extraction,
//     backend and persistence together
//   - store: project persistence (memory, sqlite, postgres, redis)
//   - report: report, slide and cause-suggestion generation plus
//     Markdown-to-HTML rendering
//   - evidence: evidence source loading and relevance search
//   - llms/openaicompat: an OpenAI-compatible llms.Model backend
//   - log: the logging seam shared by the other packages
//
// See the examples directory for runnable entry points.
package drilldown
