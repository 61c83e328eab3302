package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tmc/langchaingo/llms"

	"github.com/drillhq/drilldown/command"
	"github.com/drillhq/drilldown/evidence"
	"github.com/drillhq/drilldown/extract"
	"github.com/drillhq/drilldown/log"
	"github.com/drillhq/drilldown/phase"
	"github.com/drillhq/drilldown/report"
	"github.com/drillhq/drilldown/store"
	"github.com/drillhq/drilldown/wba"
)

// Apology is the fixed assistant reply substituted when the backend fails.
// The turn still completes: the user message and the apology both land in
// the history and the project is saved.
const Apology = "I'm sorry, I encountered an error while processing your request. Please try again."

// MsgEmptyDiagram is returned by AnalyzeGraph when there is nothing to
// analyze yet.
const MsgEmptyDiagram = "The diagram is empty. Let's start by defining the main problem."

const (
	defaultHistoryLimit = 20
	defaultChunkSize    = 10
	defaultChunkDelay   = 100 * time.Millisecond
)

// BackendError wraps a transport or model failure. Send and StreamSend
// return it alongside the apology reply so callers can distinguish a
// degraded turn from a normal one.
type BackendError struct {
	Err error
}

func (e *BackendError) Error() string {
	return fmt.Sprintf("ai backend error: %v", e.Err)
}

func (e *BackendError) Unwrap() error {
	return e.Err
}

// Settings carries the generation parameters for backend calls.
// The zero value of a field means "leave it to the backend default";
// Seed 0 means unseeded.
type Settings struct {
	Model        string
	Temperature  float64
	TopP         float64
	Seed         int
	NumCtx       int
	MaxTokens    int
	SystemPrompt string // overrides the phase system prompt when set
}

// DefaultSettings returns the settings used when none are provided.
func DefaultSettings() Settings {
	return Settings{
		Temperature: 0.7,
	}
}

// ChunkFunc receives reply fragments during streaming delivery.
type ChunkFunc func(chunk string)

// Session drives one analysis conversation: it owns the causal graph, the
// phase state machine, the heuristic extractor and the backend model, and
// optionally persists the project after each turn.
//
// A Session is not safe for concurrent use; callers serialize Send and
// StreamSend per session.
type Session struct {
	model     llms.Model
	state     *phase.State
	graph     *wba.Graph
	extractor *extract.Extractor
	generator *report.Generator
	settings  Settings
	saver     store.Saver
	project   *store.Project
	logger    log.Logger

	historyLimit int
	chunkSize    int
	chunkDelay   time.Duration
	nativeStream bool
}

// Option configures a Session.
type Option func(*Session)

// WithSettings sets the generation parameters.
func WithSettings(settings Settings) Option {
	return func(s *Session) {
		s.settings = settings
	}
}

// WithSaver persists the given project through saver after every turn that
// mutates state.
func WithSaver(saver store.Saver, project *store.Project) Option {
	return func(s *Session) {
		s.saver = saver
		s.project = project
	}
}

// WithProject restores graph, history and phase from a stored project.
func WithProject(project *store.Project) Option {
	return func(s *Session) {
		s.graph, s.state = project.Restore()
		s.project = project
	}
}

// WithLogger sets the session logger.
func WithLogger(logger log.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// WithExtractor replaces the default heuristic extractor.
func WithExtractor(e *extract.Extractor) Option {
	return func(s *Session) {
		s.extractor = e
	}
}

// WithHistoryLimit bounds how many recent messages are sent to the backend.
func WithHistoryLimit(n int) Option {
	return func(s *Session) {
		s.historyLimit = n
	}
}

// WithChunkDelay sets the pause between chunks in simulated streaming.
// Zero disables the pause (used in tests).
func WithChunkDelay(d time.Duration) Option {
	return func(s *Session) {
		s.chunkDelay = d
	}
}

// WithChunkSize sets how many words go into each simulated-streaming chunk.
func WithChunkSize(n int) Option {
	return func(s *Session) {
		s.chunkSize = n
	}
}

// WithNativeStreaming controls whether StreamSend forwards the backend's
// own token stream (true) or delivers the completed reply in word-group
// chunks (false).
func WithNativeStreaming(enabled bool) Option {
	return func(s *Session) {
		s.nativeStream = enabled
	}
}

// New creates a session over the given backend model.
func New(model llms.Model, opts ...Option) *Session {
	s := &Session{
		model:        model,
		state:        phase.NewState(),
		graph:        wba.New(),
		extractor:    extract.New(),
		generator:    report.NewGenerator(model),
		settings:     DefaultSettings(),
		logger:       log.GetDefaultLogger(),
		historyLimit: defaultHistoryLimit,
		chunkSize:    defaultChunkSize,
		chunkDelay:   defaultChunkDelay,
		nativeStream: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Graph returns the session's causal graph.
func (s *Session) Graph() *wba.Graph { return s.graph }

// State returns the session's conversation state.
func (s *Session) State() *phase.State { return s.state }

// Phase returns the active analysis phase.
func (s *Session) Phase() phase.Phase { return s.state.Phase() }

// SetPhase moves the session to the given phase. Phases are driven
// entirely from outside; nothing in the session advances them.
func (s *Session) SetPhase(p phase.Phase) {
	s.state.SetPhase(p)
}

// SetChatHistory replaces the conversation history wholesale.
func (s *Session) SetChatHistory(msgs []phase.Message) {
	s.state.SetMessages(msgs)
}

// UpdateSettings replaces the generation parameters for subsequent calls.
func (s *Session) UpdateSettings(settings Settings) {
	s.settings = settings
}

// Send processes one user turn and returns the assistant reply. When the
// backend fails, the reply is a fixed apology and the returned error is a
// *BackendError; the turn still completes and is persisted.
func (s *Session) Send(ctx context.Context, message string) (string, error) {
	return s.send(ctx, message, nil)
}

// StreamSend is Send with incremental delivery: fragments of the reply are
// passed to onChunk as they become available, and their concatenation is
// exactly the returned reply. Cancelling ctx stops delivery only; the turn
// still completes with the full reply.
func (s *Session) StreamSend(ctx context.Context, message string, onChunk ChunkFunc) (string, error) {
	if onChunk == nil {
		onChunk = func(string) {}
	}
	return s.send(ctx, message, onChunk)
}

func (s *Session) send(ctx context.Context, message string, onChunk ChunkFunc) (string, error) {
	if cmd, ok := command.IsCommand(message); ok {
		return s.runCommand(ctx, message, cmd, onChunk), nil
	}

	s.state.AddUser(message)

	reply, backendErr := s.invokeBackend(ctx, onChunk)
	s.state.AddAssistant(reply)

	if backendErr != nil {
		s.logger.Error("session: backend call failed: %v", backendErr)
		if onChunk != nil {
			s.deliver(ctx, reply, onChunk)
		}
		s.save(ctx)
		return reply, backendErr
	}

	created := s.extractor.Extract(s.graph, extract.Input{
		UserMessage:    message,
		AssistantReply: reply,
		Messages:       s.state.Messages(),
	})

	final := reply
	if len(created) > 0 {
		suffix := createdNodesSuffix(created)
		final = reply + suffix
		s.state.AmendLastAssistant(final)

		if onChunk != nil && s.nativeStream {
			// The body already streamed; only the suffix is pending.
			s.deliver(ctx, suffix, onChunk)
		}
	}

	if onChunk != nil && !s.nativeStream {
		s.deliver(ctx, final, onChunk)
	}

	s.save(ctx)
	return final, nil
}

func (s *Session) runCommand(ctx context.Context, message, cmd string, onChunk ChunkFunc) string {
	s.state.AddUser(message)

	result := command.Run(s.graph, cmd)
	var reply string
	if result.Success {
		reply = "Command executed: " + result.Message
	} else {
		reply = "Error: " + result.Message
	}

	s.state.AddAssistant(reply)
	if onChunk != nil {
		onChunk(reply)
	}
	s.save(ctx)
	return reply
}

// invokeBackend assembles the prompt and calls the model. With native
// streaming and a chunk func, deltas are forwarded as they arrive.
func (s *Session) invokeBackend(ctx context.Context, onChunk ChunkFunc) (string, *BackendError) {
	messages := s.assemblePrompt()
	opts := s.callOptions()

	if onChunk != nil && s.nativeStream {
		var streamed strings.Builder
		opts = append(opts, llms.WithStreamingFunc(func(ctx context.Context, chunk []byte) error {
			streamed.WriteString(string(chunk))
			onChunk(string(chunk))
			return nil
		}))

		resp, err := s.model.GenerateContent(ctx, messages, opts...)
		if err != nil {
			return Apology, &BackendError{Err: err}
		}
		reply := contentOf(resp)
		if reply == "" {
			reply = streamed.String()
		}
		return reply, nil
	}

	resp, err := s.model.GenerateContent(ctx, messages, opts...)
	if err != nil {
		return Apology, &BackendError{Err: err}
	}
	return contentOf(resp), nil
}

// assemblePrompt builds the backend message list: the phase system prompt
// (or the user override), a diagram context system message when the graph
// is non-empty, and the bounded recent history.
func (s *Session) assemblePrompt() []llms.MessageContent {
	systemPrompt := s.settings.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = phase.SystemPrompt(s.state.Phase())
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemPrompt),
	}

	if s.graph.NodeCount() > 0 {
		messages = append(messages, llms.TextParts(llms.ChatMessageTypeSystem,
			"Use this diagram as context for the conversation:\n"+s.graph.Describe()))
	}

	for _, m := range s.state.Recent(s.historyLimit) {
		role := llms.ChatMessageTypeHuman
		if m.Role == phase.RoleAssistant {
			role = llms.ChatMessageTypeAI
		}
		messages = append(messages, llms.TextParts(role, m.Content))
	}

	return messages
}

func (s *Session) callOptions() []llms.CallOption {
	var opts []llms.CallOption
	if s.settings.Model != "" {
		opts = append(opts, llms.WithModel(s.settings.Model))
	}
	if s.settings.Temperature != 0 {
		opts = append(opts, llms.WithTemperature(s.settings.Temperature))
	}
	if s.settings.TopP != 0 {
		opts = append(opts, llms.WithTopP(s.settings.TopP))
	}
	if s.settings.Seed != 0 {
		opts = append(opts, llms.WithSeed(s.settings.Seed))
	}
	if s.settings.MaxTokens != 0 {
		opts = append(opts, llms.WithMaxTokens(s.settings.MaxTokens))
	}
	return opts
}

// deliver streams text to onChunk in word-group chunks, pausing chunkDelay
// between groups. Cancelling ctx stops delivery; the already-computed
// reply is unaffected.
func (s *Session) deliver(ctx context.Context, text string, onChunk ChunkFunc) {
	chunks := chunkText(text, s.chunkSize)
	for i, chunk := range chunks {
		select {
		case <-ctx.Done():
			return
		default:
		}

		onChunk(chunk)

		if s.chunkDelay > 0 && i < len(chunks)-1 {
			select {
			case <-ctx.Done():
				return
			case <-time.After(s.chunkDelay):
			}
		}
	}
}

func (s *Session) save(ctx context.Context) {
	if s.saver == nil || s.project == nil {
		return
	}

	s.project.Snapshot(s.graph, s.state)
	if s.project.Problem == "" {
		if problem := s.graph.FirstOfType(wba.NodeProblem); problem != nil {
			s.project.Problem = problem.Label
		}
	}

	if err := s.saver.Save(ctx, s.project); err != nil {
		s.logger.Error("session: failed to save project %s: %v", s.project.ID, err)
	}
}

// AnalyzeGraph asks the backend for an assessment of the current diagram.
// The exchange is not recorded in the conversation history.
func (s *Session) AnalyzeGraph(ctx context.Context) (string, error) {
	if s.graph.NodeCount() == 0 {
		return MsgEmptyDiagram, nil
	}

	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, phase.SystemPrompt(s.state.Phase())),
		llms.TextParts(llms.ChatMessageTypeSystem,
			"Use this diagram as context for the conversation:\n"+s.graph.Describe()),
		llms.TextParts(llms.ChatMessageTypeHuman,
			"Please analyze the current diagram and provide insights"),
	}

	resp, err := s.model.GenerateContent(ctx, messages, s.callOptions()...)
	if err != nil {
		return "", &BackendError{Err: err}
	}
	return contentOf(resp), nil
}

// GenerateReport produces an RCA report from the graph and stores it on
// the project.
func (s *Session) GenerateReport(ctx context.Context) (string, error) {
	problem := ""
	if s.project != nil {
		problem = s.project.Problem
	}

	out, err := s.generator.Report(ctx, s.graph, problem, s.state.Recent(s.historyLimit))
	if err != nil {
		return "", err
	}

	if s.project != nil {
		s.project.Report = out
		s.save(ctx)
	}
	return out, nil
}

// GenerateSlides converts the project's report into a slide deck and
// stores it on the project.
func (s *Session) GenerateSlides(ctx context.Context) (string, error) {
	reportMD := ""
	if s.project != nil {
		reportMD = s.project.Report
	}

	out, err := s.generator.Slides(ctx, reportMD, s.state.Recent(s.historyLimit))
	if err != nil {
		return "", err
	}

	if s.project != nil && reportMD != "" {
		s.project.Slides = out
		s.save(ctx)
	}
	return out, nil
}

// SuggestCauses asks the backend for additional root cause candidates,
// seeding the prompt with the causes already on the graph.
func (s *Session) SuggestCauses(ctx context.Context) ([]string, error) {
	problem := ""
	if p := s.graph.FirstOfType(wba.NodeProblem); p != nil {
		problem = p.Label
	}

	var existing []string
	for _, n := range s.graph.Nodes() {
		if n.Type == wba.NodeCause {
			existing = append(existing, n.Label)
		}
	}

	return s.generator.SuggestCauses(ctx, problem, existing)
}

// AddEvidence creates an evidence node from the source and links it to the
// target node with a contributing edge. The project is saved afterwards.
func (s *Session) AddEvidence(ctx context.Context, src *evidence.Source, targetID string) (*wba.Node, error) {
	target := s.graph.NodeByID(targetID)
	if target == nil {
		return nil, fmt.Errorf("%w: %s", wba.ErrNodeNotFound, targetID)
	}

	node, _ := s.graph.CreateNode(wba.NodeEvidence, src.Summary(50), src.Content)
	if _, err := s.graph.CreateEdge(node.ID, target.ID, wba.LinkContributing); err != nil {
		return nil, err
	}

	s.save(ctx)
	return node, nil
}

// createdNodesSuffix formats extractor results for appending to a reply.
func createdNodesSuffix(nodes []*wba.Node) string {
	var b strings.Builder
	b.WriteString("\n\n")
	for i, n := range nodes {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "🔷 Created %s node: %q", n.Type, n.Label)
	}
	return b.String()
}

func contentOf(resp *llms.ContentResponse) string {
	if resp == nil || len(resp.Choices) == 0 {
		return ""
	}
	return resp.Choices[0].Content
}
