package funding

import (
	"errors"
	"fmt"
	"time"
)

// Status is the closed set of review states. Unknown strings are rejected at
// the boundary with ParseStatus; nothing downstream handles a raw string.
type Status string

const (
	StatusPending     Status = "pending"
	StatusUnderReview Status = "under_review"
	StatusShortlisted Status = "shortlisted"
	StatusApproved    Status = "approved"
	StatusRejected    Status = "rejected"
	StatusFlagged     Status = "flagged"
)

var ErrUnknownStatus = errors.New("unknown application status")

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusUnderReview, StatusShortlisted, StatusApproved, StatusRejected, StatusFlagged:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
}

// Terminal states admit no further transitions.
func (s Status) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// Capability is an explicit grant checked on each transition edge. Roles map
// to capability sets; there is no duck-typed permission lookup.
type Capability string

const (
	// CapReview moves applications through the analyst stages.
	CapReview Capability = "review"
	// CapDecide settles shortlisted applications and flags them.
	CapDecide Capability = "decide"
	// CapClearFlag returns a flagged application to review.
	CapClearFlag Capability = "clear_flag"
)

// Actor is the authenticated party attempting a transition.
type Actor struct {
	ID           uint
	Role         string
	ReviewerFlag bool // analyst cleared for review work
}

// Can resolves the actor's capability set. Admins hold every capability;
// analysts hold CapReview only when cleared; everyone else holds none.
func (a Actor) Can(cap Capability) bool {
	switch a.Role {
	case "admin":
		return true
	case "analyst":
		return cap == CapReview && a.ReviewerFlag
	}
	return false
}

type edge struct {
	from, to Status
}

// transitions is the full legal edge set with the capability each edge
// demands. Edges absent here are invalid regardless of actor.
var transitions = map[edge]Capability{
	{StatusPending, StatusUnderReview}: CapReview,
	{StatusPending, StatusFlagged}:     CapReview,
	{StatusPending, StatusRejected}:    CapReview,

	{StatusUnderReview, StatusShortlisted}: CapReview,
	{StatusUnderReview, StatusFlagged}:     CapReview,
	{StatusUnderReview, StatusRejected}:    CapReview,

	{StatusShortlisted, StatusApproved}: CapDecide,
	{StatusShortlisted, StatusRejected}: CapDecide,
	{StatusShortlisted, StatusFlagged}:  CapDecide,

	{StatusFlagged, StatusUnderReview}: CapClearFlag,
}

// NextStatuses lists the targets legally reachable from a state,
// irrespective of actor. Used to re-present valid options after a rejected
// transition.
func NextStatuses(from Status) []Status {
	order := []Status{StatusUnderReview, StatusShortlisted, StatusApproved, StatusRejected, StatusFlagged}
	var out []Status
	for _, to := range order {
		if _, ok := transitions[edge{from, to}]; ok {
			out = append(out, to)
		}
	}
	return out
}

// InvalidTransitionError names the exact rejected edge.
type InvalidTransitionError struct {
	From Status
	To   Status
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid transition: %s -> %s", e.From, e.To)
}

// UnauthorizedError names the capability the actor lacked.
type UnauthorizedError struct {
	ActorID  uint
	Role     string
	Required Capability
}

func (e *UnauthorizedError) Error() string {
	return fmt.Sprintf("actor %d (%s) lacks capability %q", e.ActorID, e.Role, e.Required)
}

// ErrVersionConflict means the application changed under the caller; re-read
// and re-invoke the same transition against the fresh state.
var ErrVersionConflict = errors.New("application was modified concurrently, re-read and retry")

// Transition applies target to app in place. Re-invoking with the current
// status is an idempotent no-op so retried calls are safe. Authorization is
// checked before any mutation; a failed call leaves app untouched.
func Transition(app *Application, target Status, actor Actor, now time.Time) error {
	if target == app.Status {
		return nil
	}
	required, ok := transitions[edge{app.Status, target}]
	if !ok {
		return &InvalidTransitionError{From: app.Status, To: target}
	}
	if !actor.Can(required) {
		return &UnauthorizedError{ActorID: actor.ID, Role: actor.Role, Required: required}
	}

	app.Status = target
	app.ReviewDate = &now
	app.ReviewedBy = &actor.ID
	return nil
}
