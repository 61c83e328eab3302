// Package phase holds the analysis-phase state machine and the conversation
// state it drives.
//
// Six phases guide a Why-Because Analysis from problem framing to report
// synthesis. Each phase maps to a fixed instruction block that the session
// prepends to every backend prompt while that phase is active. Transitions
// are externally driven only: SetPhase is the sole way to move, there is no
// terminal phase, and the advisory AnalysisFlags never trigger an automatic
// advance.
package phase
