// Package lifecycle holds the pure state-machine rules shared by the four
// record types. Everything here is side-effect free; the store enforces the
// same rules atomically with conditional updates.
package lifecycle

import (
	"strconv"
	"strings"
	"time"
)

// Repair and borrow statuses.
const (
	StatusPending  = "Pending"
	StatusReleased = "Released"
	StatusReturned = "Returned"
)

// Reservation statuses. Overdue is virtual: it is never written to the
// store, only derived from an Active row whose expected return date passed.
const (
	StatusActive  = "Active"
	StatusOverdue = "Overdue"
)

// Repair conditions.
const (
	ConditionFixed         = "Fixed"
	ConditionUnserviceable = "Unserviceable"
)

// Tech4Ed record types and genders.
const (
	TypeSession = "session"
	TypeEntry   = "entry"
)

// DateLayout is the wire and storage format for calendar dates.
const DateLayout = "2006-01-02"

// ValidCondition reports whether c is an accepted repair condition.
func ValidCondition(c string) bool {
	return c == ConditionFixed || c == ConditionUnserviceable
}

// ValidGender reports whether g is an accepted gender value.
func ValidGender(g string) bool {
	return g == "Male" || g == "Female" || g == "Other"
}

// CanSetCondition reports whether a repair's condition may still change.
// Condition edits are allowed any number of times while the record is
// Pending, including correcting a previously set value.
func CanSetCondition(status string) bool {
	return status == StatusPending
}

// CanRelease reports whether a repair may transition to Released. The
// condition must be set first; Released is terminal.
func CanRelease(status string, condition *string) bool {
	return status == StatusPending && condition != nil && *condition != ""
}

// CanReturnBorrow reports whether a borrow record may be marked returned.
func CanReturnBorrow(status string) bool {
	return status == StatusPending
}

// CanReturnReservation reports whether a reservation may be marked
// returned. Overdue is accepted because it is only ever a derived view of
// an Active row.
func CanReturnReservation(status string) bool {
	return status == StatusActive || status == StatusOverdue
}

// DeriveReservationStatus maps a stored reservation status to the one
// presented to clients: an Active reservation whose expected return date is
// in the past reads as Overdue. This is the single place the rule lives;
// list filtering and serialization both go through it.
func DeriveReservationStatus(stored, expectedReturnDate string, now time.Time) string {
	if stored == StatusActive && expectedReturnDate < now.Format(DateLayout) {
		return StatusOverdue
	}
	return stored
}

// ParseQuantity validates the shared quantity rule: a whole number between
// 1 and 9999. The raw string form is checked so fractional JSON numbers
// ("9999.5") are rejected rather than truncated.
func ParseQuantity(raw string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 || n > 9999 {
		return 0, false
	}
	return n, true
}

// ValidActor reports whether a free-text "by" field (received_by,
// released_by, ...) is usable. The employee dropdown is a UI convenience;
// the only rule here is non-empty after trim.
func ValidActor(s string) bool {
	return strings.TrimSpace(s) != ""
}

// ValidDate reports whether s is a calendar date in YYYY-MM-DD form.
func ValidDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// ValidReservationDates checks the creation guard: the expected return
// date may not precede the reservation date.
func ValidReservationDates(reservationDate, expectedReturnDate string) bool {
	return expectedReturnDate >= reservationDate
}
