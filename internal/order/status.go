// Package order holds the order status lifecycle, dashboard aggregates and
// the human-facing order code generator.
package order

import (
	"errors"
	"fmt"
	"strings"
)

// Status is the lifecycle state of an order.
type Status string

const (
	Pending    Status = "pending"
	Confirmed  Status = "confirmed"
	Processing Status = "processing"
	Completed  Status = "completed"
	Cancelled  Status = "cancelled"
)

// Statuses lists every valid status in lifecycle order.
var Statuses = []Status{Pending, Confirmed, Processing, Completed, Cancelled}

// ErrInvalidStatus is returned by ParseStatus for unknown values.
var ErrInvalidStatus = errors.New("invalid order status")

var suggested = map[Status][]Status{
	Pending:    {Confirmed, Cancelled},
	Confirmed:  {Processing, Cancelled},
	Processing: {Completed, Cancelled},
}

// ParseStatus validates s against the known statuses.
func ParseStatus(s string) (Status, error) {
	st := Status(strings.ToLower(strings.TrimSpace(s)))
	if st.Valid() {
		return st, nil
	}
	return "", fmt.Errorf("%w: %q (want one of %s)", ErrInvalidStatus, s, joinStatuses())
}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// SuggestedNext returns the conventional follow-up states for s.  It is
// advisory: admins may move an order from any status to any other, so the
// store never checks it.
func SuggestedNext(s Status) []Status {
	return suggested[s]
}

// Terminal reports whether s is conventionally final.
func (s Status) Terminal() bool {
	return s == Completed || s == Cancelled
}

func joinStatuses() string {
	parts := make([]string, len(Statuses))
	for i, s := range Statuses {
		parts[i] = string(s)
	}
	return strings.Join(parts, ", ")
}
