package statemachine

import (
	"errors"

	"food-ordering-api/models"
)

// statusRank orders the delivery pipeline. Cancelled sits outside the
// pipeline and is reachable from any non-terminal status.
var statusRank = map[models.OrderStatus]int{
	models.StatusPending:        0,
	models.StatusPreparing:      1,
	models.StatusOutForDelivery: 2,
	models.StatusDelivered:      3,
}

// AllStatuses returns every status value an order may hold
func AllStatuses() []models.OrderStatus {
	return []models.OrderStatus{
		models.StatusPending,
		models.StatusPreparing,
		models.StatusOutForDelivery,
		models.StatusDelivered,
		models.StatusCancelled,
	}
}

// IsValidStatus reports whether a value is one of the five known statuses
func IsValidStatus(s models.OrderStatus) bool {
	if s == models.StatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

// IsTerminal reports whether no further transition is allowed from s
func IsTerminal(s models.OrderStatus) bool {
	return s == models.StatusDelivered || s == models.StatusCancelled
}

// CanTransition checks whether an order may move from one status to
// another. Forward moves along the pipeline are allowed (skipping stages
// is fine), cancellation is allowed from any non-terminal status, and
// terminal orders are frozen.
func CanTransition(from, to models.OrderStatus) error {
	if !IsValidStatus(from) || !IsValidStatus(to) {
		return errors.New("unknown order status")
	}
	if IsTerminal(from) {
		return errors.New("order is " + string(from) + " and can no longer change status")
	}
	if transitionAllowed(from, to) {
		return nil
	}
	return errors.New(
		"invalid transition: " + string(from) + " to " + string(to) +
			". Valid next statuses are: " + describeValidFrom(from),
	)
}

// ValidNextStatuses returns all statuses reachable from the given one
func ValidNextStatuses(from models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	for _, s := range AllStatuses() {
		if s == from {
			continue
		}
		if transitionAllowed(from, s) {
			nexts = append(nexts, s)
		}
	}
	return nexts
}

// transitionAllowed holds the forward-or-cancel rule without building an
// error message, so describeValidFrom can reuse it without re-entering
// CanTransition.
func transitionAllowed(from, to models.OrderStatus) bool {
	if !IsValidStatus(from) || !IsValidStatus(to) || IsTerminal(from) {
		return false
	}
	return to == models.StatusCancelled || statusRank[to] > statusRank[from]
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidNextStatuses(status)
	if len(nexts) == 0 {
		return "none (terminal status)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}
