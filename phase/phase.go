package phase

import "fmt"

// Phase is one stage of the guided analysis conversation.
type Phase string

const (
	DefineProblem    Phase = "define_problem"
	ElicitCauses     Phase = "elicit_causes"
	GatherEvidence   Phase = "gather_evidence"
	VerifyLinks      Phase = "verify_links"
	CheckSufficiency Phase = "check_sufficiency"
	GenerateReport   Phase = "generate_report"
)

// Phases lists all phases in their intended linear order. Transitions are
// not automatic: the session exposes SetPhase and relies entirely on an
// external driver (tab selection or an explicit phase-advance command), and
// generate_report can be revisited.
var Phases = []Phase{
	DefineProblem, ElicitCauses, GatherEvidence, VerifyLinks, CheckSufficiency, GenerateReport,
}

// Parse converts a raw string into a Phase.
func Parse(s string) (Phase, error) {
	switch Phase(s) {
	case DefineProblem, ElicitCauses, GatherEvidence, VerifyLinks, CheckSufficiency, GenerateReport:
		return Phase(s), nil
	}
	return "", fmt.Errorf("invalid phase: %s", s)
}

// Valid reports whether p is one of the six phases.
func (p Phase) Valid() bool {
	_, err := Parse(string(p))
	return err == nil
}
