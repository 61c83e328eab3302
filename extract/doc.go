// Package extract turns causal language in free-form chat text into causal
// graph mutations.
//
// The extractor is explicitly heuristic and best-effort: an ordered battery
// of regex-based rules runs once per conversation turn against the raw user
// message and the fully assembled assistant reply. Each rule is an
// independent predicate+action pair, so the pattern set can be extended and
// tested in isolation. Matched cause nodes are automatically linked to the
// first problem node with a necessary edge; duplicate creations are
// suppressed by the graph store and produce no output.
package extract
