package lifecycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseQuantity(t *testing.T) {
	testCases := []struct {
		raw  string
		want int
		ok   bool
	}{
		{"1", 1, true},
		{"9999", 9999, true},
		{"  42 ", 42, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"10000", 0, false},
		{"9999.5", 0, false},
		{"abc", 0, false},
		{"", 0, false},
	}

	for _, tc := range testCases {
		t.Run(tc.raw, func(t *testing.T) {
			n, ok := ParseQuantity(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.want, n)
			}
		})
	}
}

func TestCanRelease(t *testing.T) {
	fixed := ConditionFixed
	empty := ""

	assert.True(t, CanRelease(StatusPending, &fixed))
	assert.False(t, CanRelease(StatusPending, nil), "condition must be set before release")
	assert.False(t, CanRelease(StatusPending, &empty))
	assert.False(t, CanRelease(StatusReleased, &fixed), "Released is terminal")
}

func TestCanSetCondition(t *testing.T) {
	assert.True(t, CanSetCondition(StatusPending))
	assert.False(t, CanSetCondition(StatusReleased))
}

func TestReturnGuards(t *testing.T) {
	assert.True(t, CanReturnBorrow(StatusPending))
	assert.False(t, CanReturnBorrow(StatusReturned))

	assert.True(t, CanReturnReservation(StatusActive))
	assert.True(t, CanReturnReservation(StatusOverdue))
	assert.False(t, CanReturnReservation(StatusReturned))
}

func TestDeriveReservationStatus(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name     string
		stored   string
		expected string
		want     string
	}{
		{"active not yet due", StatusActive, "2024-06-20", StatusActive},
		{"active due today stays active", StatusActive, "2024-06-15", StatusActive},
		{"active past due reads overdue", StatusActive, "2024-06-14", StatusOverdue},
		{"returned never overdue", StatusReturned, "2024-06-01", StatusReturned},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveReservationStatus(tc.stored, tc.expected, now))
		})
	}
}

func TestValidReservationDates(t *testing.T) {
	assert.True(t, ValidReservationDates("2024-01-01", "2024-01-05"))
	assert.True(t, ValidReservationDates("2024-01-01", "2024-01-01"))
	assert.False(t, ValidReservationDates("2024-01-05", "2024-01-01"))
}

func TestValidators(t *testing.T) {
	assert.True(t, ValidCondition(ConditionFixed))
	assert.True(t, ValidCondition(ConditionUnserviceable))
	assert.False(t, ValidCondition("Broken"))

	assert.True(t, ValidGender("Male"))
	assert.True(t, ValidGender("Other"))
	assert.False(t, ValidGender("male"))

	assert.True(t, ValidActor("Juan"))
	assert.False(t, ValidActor("   "))

	assert.True(t, ValidDate("2024-02-29"))
	assert.False(t, ValidDate("2024-13-01"))
	assert.False(t, ValidDate("01/02/2024"))
}
