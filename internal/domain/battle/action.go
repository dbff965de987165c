package battle

import (
	"errors"
	"fmt"
	"strings"

	"wildbound/internal/domain/suggest"
)

type Action string

const (
	ActionAttack  Action = "attack"
	ActionCapture Action = "capture"
	ActionRun     Action = "run"
	ActionSwitch  Action = "switch"
)

var actions = []Action{ActionAttack, ActionCapture, ActionRun, ActionSwitch}

var ErrUnknownAction = errors.New("unknown battle action")

func ParseAction(raw string) (Action, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	names := make([]string, 0, len(actions))
	for _, a := range actions {
		if string(a) == v {
			return a, nil
		}
		names = append(names, string(a))
	}
	if s, ok := suggest.Closest(v, names); ok {
		return "", fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownAction, raw, s)
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAction, raw)
}

type Outcome string

const (
	OutcomeWon      Outcome = "won"
	OutcomeLost     Outcome = "lost"
	OutcomeRan      Outcome = "ran"
	OutcomeCaptured Outcome = "captured"
)
