package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

// newTestStore opens a private in-memory SQLite database and migrates the
// full schema. cache=shared keeps the database alive across pooled
// connections within one test.
func newTestStore(t *testing.T) (Store, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Office{},
		&model.Employee{},
		&model.Repair{},
		&model.Borrow{},
		&model.Reservation{},
		&model.Tech4Ed{},
	))
	return NewGormStore(db), db
}

func newRepair(name string) *model.Repair {
	return &model.Repair{
		CustomerName:       name,
		Office:             "Accounting",
		ItemName:           "Printer",
		Quantity:           1,
		DateReceived:       "2024-01-01",
		ReceivedBy:         "Ana",
		ProblemDescription: "paper jam",
	}
}

func TestRepairLifecycle(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	rec := newRepair("Juan")
	rec.Quantity = 5
	require.NoError(t, s.CreateRepair(ctx, rec))
	require.NotZero(t, rec.ID)

	var stored model.Repair
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, lifecycle.StatusPending, stored.Status)
	assert.Nil(t, stored.RepairCondition)

	// Release before the condition is set must be refused.
	err := s.ReleaseRepair(ctx, rec.ID, "Juan", "Ana", "2024-01-10")
	assert.ErrorIs(t, err, ErrConditionNotSet)

	// Condition can be set, and corrected, while Pending.
	require.NoError(t, s.SetRepairCondition(ctx, rec.ID, lifecycle.ConditionUnserviceable, "Ben", nil))
	require.NoError(t, s.SetRepairCondition(ctx, rec.ID, lifecycle.ConditionFixed, "Ben", nil))

	require.NoError(t, db.First(&stored, rec.ID).Error)
	require.NotNil(t, stored.RepairCondition)
	assert.Equal(t, lifecycle.ConditionFixed, *stored.RepairCondition)
	assert.Equal(t, lifecycle.StatusPending, stored.Status)

	require.NoError(t, s.ReleaseRepair(ctx, rec.ID, "Juan", "Ana", "2024-01-10"))
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, lifecycle.StatusReleased, stored.Status)
	require.NotNil(t, stored.ClaimedBy)
	assert.Equal(t, "Juan", *stored.ClaimedBy)

	// Released is terminal: a second release and a late condition edit
	// both lose the conditional update.
	assert.ErrorIs(t, s.ReleaseRepair(ctx, rec.ID, "Juan", "Ana", "2024-01-11"), ErrConflict)
	assert.ErrorIs(t, s.SetRepairCondition(ctx, rec.ID, lifecycle.ConditionFixed, "Ben", nil), ErrConflict)

	assert.ErrorIs(t, s.ReleaseRepair(ctx, 9999, "x", "y", "2024-01-10"), ErrNotFound)
	assert.ErrorIs(t, s.SetRepairCondition(ctx, 9999, lifecycle.ConditionFixed, "Ben", nil), ErrNotFound)
}

func TestBorrowReturn(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	rec := &model.Borrow{
		BorrowerName: "Maria",
		Office:       "Registrar",
		ItemBorrowed: "HDMI cable",
		Quantity:     1,
		ReleasedBy:   "Ana",
		DateBorrowed: "2024-02-01",
	}
	require.NoError(t, s.CreateBorrow(ctx, rec))

	require.NoError(t, s.ReturnBorrow(ctx, rec.ID, "Maria", "Ana", "2024-02-03", nil))

	var stored model.Borrow
	require.NoError(t, db.First(&stored, rec.ID).Error)
	assert.Equal(t, lifecycle.StatusReturned, stored.Status)
	require.NotNil(t, stored.ReturnDate)
	assert.Equal(t, "2024-02-03", *stored.ReturnDate)

	// Second return is a conflict, never a silent no-op.
	assert.ErrorIs(t, s.ReturnBorrow(ctx, rec.ID, "Maria", "Ana", "2024-02-04", nil), ErrConflict)
	assert.ErrorIs(t, s.ReturnBorrow(ctx, 9999, "Maria", "Ana", "2024-02-04", nil), ErrNotFound)
}

func TestReservationDerivedStatus(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	past := now.AddDate(0, 0, -3).Format(lifecycle.DateLayout)
	future := now.AddDate(0, 0, 3).Format(lifecycle.DateLayout)

	mk := func(name, expected string) *model.Reservation {
		r := &model.Reservation{
			BorrowerName:       name,
			Office:             "Library",
			ItemName:           "Projector",
			Quantity:           1,
			ReservationDate:    now.AddDate(0, 0, -5).Format(lifecycle.DateLayout),
			ExpectedReturnDate: expected,
			ReleasedBy:         "Ana",
		}
		require.NoError(t, s.CreateReservation(ctx, r))
		return r
	}

	mk("on-time", future)
	late := mk("late", past)

	// The late row reads Overdue even though Active is stored.
	rows, info, err := s.ListReservations(ctx, ListParams{}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Total)
	byName := map[string]string{}
	for _, r := range rows {
		byName[r.BorrowerName] = r.Status
	}
	assert.Equal(t, lifecycle.StatusActive, byName["on-time"])
	assert.Equal(t, lifecycle.StatusOverdue, byName["late"])

	// The Active filter includes overdue rows; Overdue selects only them.
	_, info, err = s.ListReservations(ctx, ListParams{Status: lifecycle.StatusActive}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(2), info.Total)

	rows, info, err = s.ListReservations(ctx, ListParams{Status: lifecycle.StatusOverdue}, now)
	require.NoError(t, err)
	require.Equal(t, int64(1), info.Total)
	assert.Equal(t, "late", rows[0].BorrowerName)

	// Returning works from the derived Overdue view too.
	require.NoError(t, s.ReturnReservation(ctx, late.ID, "Maria", "Ana", now.Format(lifecycle.DateLayout), nil))
	assert.ErrorIs(t, s.ReturnReservation(ctx, late.ID, "Maria", "Ana", now.Format(lifecycle.DateLayout), nil), ErrConflict)

	_, info, err = s.ListReservations(ctx, ListParams{Status: lifecycle.StatusReturned}, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Total)
}

func TestTech4EdSessions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()

	session := &model.Tech4Ed{Name: "Liza", Gender: "Female", Purpose: "printing", TimeIn: now, Type: lifecycle.TypeSession}
	require.NoError(t, s.CreateTech4Ed(ctx, session))
	entry := &model.Tech4Ed{Name: "Carlo", Gender: "Male", Purpose: "research", TimeIn: now, Type: lifecycle.TypeEntry}
	require.NoError(t, s.CreateTech4Ed(ctx, entry))

	open, err := s.ListActiveSessions(ctx)
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, session.ID, open[0].ID)

	_, info, err := s.ListTech4Ed(ctx, Tech4EdListParams{Type: lifecycle.TypeEntry})
	require.NoError(t, err)
	assert.Equal(t, int64(1), info.Total)

	require.NoError(t, s.TimeOutTech4Ed(ctx, session.ID, now))
	assert.ErrorIs(t, s.TimeOutTech4Ed(ctx, session.ID, now), ErrConflict)
	assert.ErrorIs(t, s.TimeOutTech4Ed(ctx, 9999, now), ErrNotFound)

	open, err = s.ListActiveSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, open)
}

func TestPagination(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, s.CreateRepair(ctx, newRepair(fmt.Sprintf("cust-%02d", i))))
	}

	rows, info, err := s.ListRepairs(ctx, ListParams{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Len(t, rows, 10)
	assert.Equal(t, int64(25), info.Total)
	assert.Equal(t, 2, info.Page)
	assert.Equal(t, 10, info.Limit)
	assert.Equal(t, 3, info.TotalPages)

	// Out-of-range inputs are clamped, not rejected.
	rows, info, err = s.ListRepairs(ctx, ListParams{Page: 0, Limit: 1000})
	require.NoError(t, err)
	assert.Len(t, rows, 25)
	assert.Equal(t, 1, info.Page)
	assert.Equal(t, 100, info.Limit)
	assert.Equal(t, 1, info.TotalPages)

	rows, info, err = s.ListRepairs(ctx, ListParams{Page: 3, Limit: 0})
	require.NoError(t, err)
	assert.Len(t, rows, 0)
	assert.Equal(t, 20, info.Limit)
	assert.Equal(t, 2, info.TotalPages)

	// Filtered total counts only matching rows.
	require.NoError(t, s.SetRepairCondition(ctx, 1, lifecycle.ConditionFixed, "Ben", nil))
	require.NoError(t, s.ReleaseRepair(ctx, 1, "Juan", "Ana", "2024-01-10"))
	_, info, err = s.ListRepairs(ctx, ListParams{Status: lifecycle.StatusPending})
	require.NoError(t, err)
	assert.Equal(t, int64(24), info.Total)
}

func TestDeleteRecords(t *testing.T) {
	s, db := newTestStore(t)
	ctx := context.Background()

	rec := newRepair("Juan")
	require.NoError(t, s.CreateRepair(ctx, rec))

	require.NoError(t, s.DeleteRepair(ctx, rec.ID))
	assert.ErrorIs(t, s.DeleteRepair(ctx, rec.ID), ErrNotFound)

	var n int64
	require.NoError(t, db.Model(&model.Repair{}).Count(&n).Error)
	assert.Zero(t, n)
}

func TestGetUserByUsernameIsCaseSensitive(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateUser(ctx, &model.User{Username: "Admin", Password: "hash"}))

	u, err := s.GetUserByUsername(ctx, "Admin")
	require.NoError(t, err)
	assert.Equal(t, "Admin", u.Username)

	_, err = s.GetUserByUsername(ctx, "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStats(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()
	now := time.Now()
	today := now.Format(lifecycle.DateLayout)

	// 3 Pending + 2 Released repairs; of the released, one Fixed and one
	// Unserviceable.
	for i := 0; i < 5; i++ {
		rec := newRepair(fmt.Sprintf("cust-%d", i))
		rec.Office = "Accounting"
		rec.DateReceived = today
		require.NoError(t, s.CreateRepair(ctx, rec))
		if i < 2 {
			cond := lifecycle.ConditionFixed
			if i == 1 {
				cond = lifecycle.ConditionUnserviceable
			}
			require.NoError(t, s.SetRepairCondition(ctx, rec.ID, cond, "Ben", nil))
			require.NoError(t, s.ReleaseRepair(ctx, rec.ID, "Juan", "Ana", today))
		}
	}

	require.NoError(t, s.CreateBorrow(ctx, &model.Borrow{
		BorrowerName: "Maria", Office: "Registrar", ItemBorrowed: "Cable",
		Quantity: 1, ReleasedBy: "Ana", DateBorrowed: today,
	}))

	require.NoError(t, s.CreateReservation(ctx, &model.Reservation{
		BorrowerName: "Pedro", Office: "Registrar", ItemName: "Projector",
		Quantity: 1, ReservationDate: today,
		ExpectedReturnDate: now.AddDate(0, 0, -1).Format(lifecycle.DateLayout),
		ReleasedBy:         "Ana",
	}))

	require.NoError(t, s.CreateTech4Ed(ctx, &model.Tech4Ed{
		Name: "Liza", Gender: "Female", Purpose: "printing",
		TimeIn: now, Type: lifecycle.TypeSession,
	}))
	require.NoError(t, s.CreateTech4Ed(ctx, &model.Tech4Ed{
		Name: "Carlo", Gender: "Male", Purpose: "research",
		TimeIn: now, Type: lifecycle.TypeEntry,
	}))

	stats, err := s.Stats(ctx, now)
	require.NoError(t, err)

	assert.Equal(t, int64(5), stats.Repairs.Total)
	assert.Equal(t, int64(3), stats.Repairs.Pending)
	assert.Equal(t, int64(2), stats.Repairs.Released)
	assert.Equal(t, int64(1), stats.Repairs.Fixed)
	assert.Equal(t, int64(1), stats.Repairs.Unserviceable)

	assert.Equal(t, int64(1), stats.Borrows.Total)
	assert.Equal(t, int64(1), stats.Borrows.Pending)

	assert.Equal(t, int64(1), stats.Reservations.Total)
	assert.Equal(t, int64(0), stats.Reservations.Active)
	assert.Equal(t, int64(1), stats.Reservations.Overdue)

	assert.Equal(t, int64(2), stats.Tech4Ed.Total)
	assert.Equal(t, int64(1), stats.Tech4Ed.Entries)
	assert.Equal(t, int64(1), stats.Tech4Ed.ActiveSessions)
	assert.Equal(t, int64(2), stats.Tech4Ed.Today)

	// 5 repairs + 1 borrow + 1 reservation, but capped per type at 5.
	assert.Len(t, stats.Recent, 7)
	for _, item := range stats.Recent {
		if item.Kind == "reservation" {
			assert.Equal(t, lifecycle.StatusOverdue, item.Status, "feed carries the derived status")
		}
	}

	require.NotEmpty(t, stats.OfficeData)
	assert.Equal(t, "Accounting", stats.OfficeData[0].Office)
	assert.Equal(t, int64(5), stats.OfficeData[0].Cnt)

	require.Len(t, stats.Monthly.Repairs, 1)
	assert.Equal(t, today[:7], stats.Monthly.Repairs[0].Month)
	assert.Equal(t, int64(5), stats.Monthly.Repairs[0].Cnt)
}
