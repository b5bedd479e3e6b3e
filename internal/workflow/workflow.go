package workflow

import "errors"

// Status values are stored as plain strings. Transition legality is decided
// here, separate from the persistence layer, so guard logic stays testable
// without a database.
type Status string

const (
	StatusPending   Status = "pending"
	StatusContacted Status = "contacted"
	StatusQualified Status = "qualified"
	StatusFollowUp  Status = "follow_up"
	StatusConverted Status = "converted"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
)

var (
	// ErrUnknownStatus means the target is not a member of the entity's status set.
	ErrUnknownStatus = errors.New("unknown status")
	// ErrTerminalState means the record has already reached a final status.
	ErrTerminalState = errors.New("record is in a terminal state")
	// ErrIllegalTransition means the move is not part of the workflow graph.
	ErrIllegalTransition = errors.New("illegal status transition")
	// ErrReasonRequired means a rejection was requested without a reason.
	ErrReasonRequired = errors.New("rejection requires a reason")
)

// Kind selects which transition table applies.
type Kind string

const (
	// KindLead covers insurance leads and loan applications, which share
	// the sales-qualification workflow.
	KindLead Kind = "lead"
	// KindLabour covers labour applications with binary review outcomes.
	KindLabour Kind = "labour"
)

// leadTransitions is the sales-qualification graph. Rejecting straight from
// pending is allowed so operators can junk spam submissions.
var leadTransitions = map[Status]map[Status]bool{
	StatusPending:   {StatusContacted: true, StatusRejected: true},
	StatusContacted: {StatusQualified: true, StatusFollowUp: true, StatusRejected: true},
	StatusQualified: {StatusConverted: true, StatusRejected: true},
	StatusFollowUp:  {StatusConverted: true, StatusRejected: true},
	StatusConverted: {},
	StatusRejected:  {},
}

var labourTransitions = map[Status]map[Status]bool{
	StatusPending:  {StatusApproved: true, StatusRejected: true},
	StatusApproved: {},
	StatusRejected: {},
}

func table(kind Kind) map[Status]map[Status]bool {
	if kind == KindLabour {
		return labourTransitions
	}
	return leadTransitions
}

// IsTerminal reports whether status admits no further transitions.
func IsTerminal(kind Kind, status Status) bool {
	nexts, ok := table(kind)[status]
	return ok && len(nexts) == 0
}

// CanTransition validates a move without touching storage. It distinguishes
// unknown targets, terminal current states, and moves outside the graph, and
// requires a reason for any rejection.
func CanTransition(kind Kind, current, target Status, reason string) error {
	t := table(kind)
	if _, ok := t[target]; !ok {
		return ErrUnknownStatus
	}
	nexts, ok := t[current]
	if !ok {
		return ErrUnknownStatus
	}
	if len(nexts) == 0 {
		return ErrTerminalState
	}
	if !nexts[target] {
		return ErrIllegalTransition
	}
	if target == StatusRejected && reason == "" {
		return ErrReasonRequired
	}
	return nil
}

// Statuses returns the status set for a kind, for list-filter validation.
func Statuses(kind Kind) []Status {
	t := table(kind)
	out := make([]Status, 0, len(t))
	for s := range t {
		out = append(out, s)
	}
	return out
}
