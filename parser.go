package reagent

import "strings"

// Output markers of the ReAct text convention.
const (
	finalAnswerMarker = "Final Answer:"
	actionMarker      = "Action:"
	actionInputMarker = "Action Input:"
	observationMarker = "Observation:"
)

// DecisionKind identifies what the model decided to do in a continuation.
type DecisionKind string

const (
	// DecisionInvoke means the model requested a tool invocation.
	DecisionInvoke DecisionKind = "invoke"

	// DecisionFinal means the model produced a final answer.
	DecisionFinal DecisionKind = "final"

	// DecisionMalformed means the continuation matched neither convention.
	DecisionMalformed DecisionKind = "malformed"
)

// Decision is the structured reading of one raw model continuation.
// It is produced fresh each iteration and never persisted; the transcript
// records the raw text instead.
type Decision struct {
	// Kind tags which variant this decision is.
	Kind DecisionKind

	// ToolName and ToolInput are set when Kind is DecisionInvoke.
	ToolName  string
	ToolInput string

	// Answer is set when Kind is DecisionFinal.
	Answer string

	// Raw is the unmodified continuation this decision was parsed from.
	Raw string
}

// ParseDecision parses a raw model continuation into a Decision.
//
// Parsing policy (the ReAct text convention):
//
//  1. A line beginning with "Final Answer:" yields DecisionFinal with
//     everything after the marker, trimmed. This check runs first: if a
//     continuation carries both markers the final answer wins, so a model
//     that overshoots its stop sequence still terminates cleanly.
//  2. Otherwise a line beginning with "Action:" followed later by a line
//     beginning with "Action Input:" yields DecisionInvoke. The input runs
//     until the next "Observation:" line or the end of the text.
//  3. Anything else yields DecisionMalformed.
//
// The continuation is untrusted free text, so ParseDecision never fails; it
// downgrades to DecisionMalformed and lets the caller decide how to recover.
// It is a pure function: the same text always yields the same Decision.
func ParseDecision(raw string) Decision {
	lines := strings.Split(raw, "\n")

	// Final answer takes priority over action parsing.
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, finalAnswerMarker) {
			continue
		}
		parts := append(
			[]string{strings.TrimPrefix(trimmed, finalAnswerMarker)},
			lines[i+1:]...,
		)
		return Decision{
			Kind:   DecisionFinal,
			Answer: strings.TrimSpace(strings.Join(parts, "\n")),
			Raw:    raw,
		}
	}

	// Note: "Action Input:" does not match the "Action:" prefix, so the
	// scan below cannot confuse the two markers.
	actionIdx := -1
	toolName := ""
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, actionMarker) {
			toolName = strings.TrimSpace(strings.TrimPrefix(trimmed, actionMarker))
			actionIdx = i
			break
		}
	}

	if actionIdx >= 0 {
		for i := actionIdx + 1; i < len(lines); i++ {
			trimmed := strings.TrimSpace(lines[i])
			if !strings.HasPrefix(trimmed, actionInputMarker) {
				continue
			}
			input := []string{strings.TrimPrefix(trimmed, actionInputMarker)}
			for j := i + 1; j < len(lines); j++ {
				if strings.HasPrefix(strings.TrimSpace(lines[j]), observationMarker) {
					break
				}
				input = append(input, lines[j])
			}
			return Decision{
				Kind:      DecisionInvoke,
				ToolName:  toolName,
				ToolInput: strings.TrimSpace(strings.Join(input, "\n")),
				Raw:       raw,
			}
		}
	}

	return Decision{Kind: DecisionMalformed, Raw: raw}
}
