package phase

// Role identifies the author of a conversation message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one entry in the conversation history.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// AnalysisFlags track open follow-ups across the analysis. They are
// advisory state for prompt construction, not hard gates: nothing in the
// engine advances phases from them.
type AnalysisFlags struct {
	NeedMoreCauses       bool `json:"needMoreCauses"`
	NeedMoreEvidence     bool `json:"needMoreEvidence"`
	NeedLinkVerification bool `json:"needLinkVerification"`
	IsAnalysisComplete   bool `json:"isAnalysisComplete"`
}

// State is the conversation state for one analysis session: the active
// phase, the ordered message history, and the advisory flags.
type State struct {
	phase    Phase
	messages []Message
	Flags    AnalysisFlags
}

// NewState creates a conversation state in the initial define_problem phase.
func NewState() *State {
	return &State{
		phase: DefineProblem,
		Flags: AnalysisFlags{
			NeedMoreCauses:       true,
			NeedMoreEvidence:     true,
			NeedLinkVerification: true,
		},
	}
}

// Phase returns the active phase.
func (s *State) Phase() Phase { return s.phase }

// SetPhase moves the state machine to p. Invalid phases are ignored;
// any valid phase may be entered from any other, in either direction.
func (s *State) SetPhase(p Phase) {
	if p.Valid() {
		s.phase = p
	}
}

// AddUser appends a user message.
func (s *State) AddUser(content string) {
	s.messages = append(s.messages, Message{Role: RoleUser, Content: content})
}

// AddAssistant appends an assistant message.
func (s *State) AddAssistant(content string) {
	s.messages = append(s.messages, Message{Role: RoleAssistant, Content: content})
}

// AmendLastAssistant replaces the content of the most recent message when it
// is an assistant message. This is the only permitted in-place edit of
// history, used while a streamed reply is still arriving.
func (s *State) AmendLastAssistant(content string) {
	if n := len(s.messages); n > 0 && s.messages[n-1].Role == RoleAssistant {
		s.messages[n-1].Content = content
	}
}

// Messages returns a copy of the full history in order.
func (s *State) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Recent returns a copy of the last n messages (all of them when n <= 0
// or n exceeds the history length).
func (s *State) Recent(n int) []Message {
	if n <= 0 || n >= len(s.messages) {
		return s.Messages()
	}
	out := make([]Message, n)
	copy(out, s.messages[len(s.messages)-n:])
	return out
}

// Len returns the number of messages accumulated so far.
func (s *State) Len() int { return len(s.messages) }

// SetMessages replaces the history wholesale, e.g. when restoring a
// persisted project.
func (s *State) SetMessages(msgs []Message) {
	s.messages = make([]Message, len(msgs))
	copy(s.messages, msgs)
}
