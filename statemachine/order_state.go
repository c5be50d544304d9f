package statemachine

import (
	"fmt"
	"strings"

	"restaurant-order-api/models"
)

// Transition is one edge of the order lifecycle graph.
type Transition struct {
	From models.OrderStatus `json:"from"`
	To   models.OrderStatus `json:"to"`
}

// lifecycle is the forward path an order normally takes. Cancellation is
// reachable from every non-terminal state and is added below.
var lifecycle = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed},
	{From: models.StatusConfirmed, To: models.StatusPreparing},
	{From: models.StatusPreparing, To: models.StatusOutForDelivery},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered},
}

var terminal = map[models.OrderStatus]bool{
	models.StatusDelivered: true,
	models.StatusCancelled: true,
}

var validTransitions = func() []Transition {
	all := append([]Transition{}, lifecycle...)
	for _, s := range models.AllStatuses {
		if !terminal[s] {
			all = append(all, Transition{From: s, To: models.StatusCancelled})
		}
	}
	return all
}()

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool, len(validTransitions))
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// IsTerminal reports whether no further transitions leave s.
func IsTerminal(s models.OrderStatus) bool {
	return terminal[s]
}

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, t := range validTransitions {
		if t.From == status {
			nexts = append(nexts, t.To)
		}
	}
	return nexts
}

// CanTransition checks the move against the lifecycle graph. Re-applying the
// current status is always allowed.
func CanTransition(from, to models.OrderStatus) error {
	if !to.Valid() {
		return fmt.Errorf("unknown status %q", to)
	}
	if from == to || transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	return fmt.Errorf("invalid transition: %s → %s is not allowed. Valid transitions from %s are: %s",
		from, to, from, describeValidFrom(from))
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	names := make([]string, len(nexts))
	for i, s := range nexts {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}

// TerminalStates lists the states with no outgoing transitions.
func TerminalStates() []models.OrderStatus {
	var out []models.OrderStatus
	for _, s := range models.AllStatuses {
		if terminal[s] {
			out = append(out, s)
		}
	}
	return out
}
