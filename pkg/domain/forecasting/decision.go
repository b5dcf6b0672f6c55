package forecasting

import (
	"sync"
	"time"
)

// DecisionSource classifies where a parameter value came from.
type DecisionSource string

const (
	// DecisionSourceUser marks a value supplied explicitly by the caller.
	DecisionSourceUser DecisionSource = "user"
	// DecisionSourceDefault marks a value filled in from defaults.
	DecisionSourceDefault DecisionSource = "default"
	// DecisionSourceHeuristic marks a value chosen by a heuristic.
	DecisionSourceHeuristic DecisionSource = "heuristic"
)

// Decision records a single parameter choice made on the caller's
// behalf, for explainability. Decisions are an audit side-channel; they
// never influence the forecasting math.
type Decision struct {
	Parameter string
	Value     string
	Source    DecisionSource
	Reason    string
	DecidedAt time.Time
}

// DecisionLog collects decisions across a run. Safe for concurrent use.
type DecisionLog struct {
	mu        sync.Mutex
	decisions []Decision
}

// NewDecisionLog creates an empty decision log.
func NewDecisionLog() *DecisionLog {
	return &DecisionLog{}
}

// Record appends a decision.
func (l *DecisionLog) Record(parameter, value string, source DecisionSource, reason string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions = append(l.decisions, Decision{
		Parameter: parameter,
		Value:     value,
		Source:    source,
		Reason:    reason,
		DecidedAt: time.Now(),
	})
}

// All returns a copy of the recorded decisions in order.
func (l *DecisionLog) All() []Decision {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Decision, len(l.decisions))
	copy(out, l.decisions)
	return out
}

// Reset clears the log.
func (l *DecisionLog) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.decisions = nil
}
