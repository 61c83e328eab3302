package phase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, p := range Phases {
		parsed, err := Parse(string(p))
		assert.NoError(t, err)
		assert.Equal(t, p, parsed)
	}

	_, err := Parse("wrap_up")
	assert.Error(t, err)
}

func TestStateInitial(t *testing.T) {
	s := NewState()
	assert.Equal(t, DefineProblem, s.Phase())
	assert.True(t, s.Flags.NeedMoreCauses)
	assert.True(t, s.Flags.NeedMoreEvidence)
	assert.True(t, s.Flags.NeedLinkVerification)
	assert.False(t, s.Flags.IsAnalysisComplete)
	assert.Equal(t, 0, s.Len())
}

func TestSetPhase(t *testing.T) {
	s := NewState()

	s.SetPhase(GenerateReport)
	assert.Equal(t, GenerateReport, s.Phase())

	// Phases can be revisited in any direction.
	s.SetPhase(ElicitCauses)
	assert.Equal(t, ElicitCauses, s.Phase())

	// Invalid phases are ignored.
	s.SetPhase(Phase("bogus"))
	assert.Equal(t, ElicitCauses, s.Phase())
}

func TestHistory(t *testing.T) {
	s := NewState()
	s.AddUser("one")
	s.AddAssistant("two")
	s.AddUser("three")

	msgs := s.Messages()
	assert.Len(t, msgs, 3)
	assert.Equal(t, RoleUser, msgs[0].Role)
	assert.Equal(t, "two", msgs[1].Content)

	recent := s.Recent(2)
	assert.Len(t, recent, 2)
	assert.Equal(t, "two", recent[0].Content)
	assert.Equal(t, "three", recent[1].Content)

	assert.Len(t, s.Recent(0), 3)
	assert.Len(t, s.Recent(10), 3)
}

func TestAmendLastAssistant(t *testing.T) {
	s := NewState()
	s.AddUser("question")
	s.AddAssistant("partial")

	s.AmendLastAssistant("partial reply, now complete")
	assert.Equal(t, "partial reply, now complete", s.Messages()[1].Content)

	// Amending after a user message is a no-op.
	s.AddUser("next")
	s.AmendLastAssistant("should not land")
	msgs := s.Messages()
	assert.Equal(t, "next", msgs[2].Content)
}

func TestSystemPromptContracts(t *testing.T) {
	for _, p := range Phases {
		prompt := SystemPrompt(p)
		assert.Contains(t, prompt, "Why-Because Analysis", "phase %s", p)
		assert.Contains(t, prompt, "CREATE PROBLEM NODE:", "phase %s", p)
		assert.Contains(t, prompt, "Current analysis mode: "+string(p))
	}

	assert.Contains(t, SystemPrompt(DefineProblem), "define the main problem")
	assert.Contains(t, SystemPrompt(ElicitCauses), "CREATE CAUSE NODE:")
	assert.Contains(t, SystemPrompt(GatherEvidence), "CREATE EVIDENCE NODE:")
	assert.Contains(t, SystemPrompt(VerifyLinks), "necessary condition test")
	assert.Contains(t, SystemPrompt(CheckSufficiency), "root causes")
	assert.Contains(t, SystemPrompt(GenerateReport), "Recommendations")

	// Each phase block is distinct.
	seen := map[string]Phase{}
	for _, p := range Phases {
		prompt := SystemPrompt(p)
		if prev, dup := seen[prompt]; dup {
			t.Fatalf("phases %s and %s share a prompt", prev, p)
		}
		seen[prompt] = p
	}

	// Unknown phase falls back to the base prompt only.
	fallback := SystemPrompt(Phase("other"))
	assert.True(t, strings.Contains(fallback, "Why-Because Analysis"))
	assert.NotContains(t, fallback, "define the main problem")
}
