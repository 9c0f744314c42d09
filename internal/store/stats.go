package store

import (
	"context"
	"sort"
	"time"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

// RepairStats counts repairs by status and, independently, by recorded
// condition.
type RepairStats struct {
	Total         int64 `json:"total"`
	Pending       int64 `json:"pending"`
	Released      int64 `json:"released"`
	Fixed         int64 `json:"fixed"`
	Unserviceable int64 `json:"unserviceable"`
}

type BorrowStats struct {
	Total    int64 `json:"total"`
	Pending  int64 `json:"pending"`
	Returned int64 `json:"returned"`
}

type ReservationStats struct {
	Total    int64 `json:"total"`
	Active   int64 `json:"active"`
	Overdue  int64 `json:"overdue"`
	Returned int64 `json:"returned"`
}

type Tech4EdStats struct {
	Total          int64 `json:"total"`
	Entries        int64 `json:"entries"`
	ActiveSessions int64 `json:"active_sessions"`
	Today          int64 `json:"today"`
}

// ActivityItem is one row of the recent-activity feed.
type ActivityItem struct {
	Kind   string    `json:"kind"`
	ID     int64     `json:"id"`
	Name   string    `json:"name"`
	Item   string    `json:"item"`
	Office string    `json:"office"`
	Status string    `json:"status"`
	TS     time.Time `gorm:"column:ts" json:"ts"`
}

type OfficeCount struct {
	Office string `json:"office"`
	Cnt    int64  `json:"cnt"`
}

type MonthlyCount struct {
	Month string `json:"month"`
	Cnt   int64  `json:"cnt"`
}

type MonthlyTrend struct {
	Repairs      []MonthlyCount `json:"repairs"`
	Borrows      []MonthlyCount `json:"borrows"`
	Reservations []MonthlyCount `json:"reservations"`
}

// Stats is the full dashboard payload.
type Stats struct {
	Repairs      RepairStats      `json:"repairs"`
	Borrows      BorrowStats      `json:"borrows"`
	Reservations ReservationStats `json:"reservations"`
	Tech4Ed      Tech4EdStats     `json:"tech4ed"`
	Recent       []ActivityItem   `json:"recent"`
	OfficeData   []OfficeCount    `json:"officeData"`
	Monthly      MonthlyTrend     `json:"monthly"`
}

const recentFeedSize = 12

// Stats assembles the dashboard aggregates: one conditional-count query per
// table, the merged recent-activity feed, the per-office grouping and the
// six-month trend.
func (s *gormStore) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	today := now.Format(lifecycle.DateLayout)
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)
	monthCutoff := now.AddDate(0, -6, 0).Format(lifecycle.DateLayout)

	out := &Stats{}

	if err := s.db.WithContext(ctx).Model(&model.Repair{}).
		Select("COUNT(*) AS total, "+
			"SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END) AS pending, "+
			"SUM(CASE WHEN status = 'Released' THEN 1 ELSE 0 END) AS released, "+
			"SUM(CASE WHEN repair_condition = 'Fixed' THEN 1 ELSE 0 END) AS fixed, "+
			"SUM(CASE WHEN repair_condition = 'Unserviceable' THEN 1 ELSE 0 END) AS unserviceable").
		Scan(&out.Repairs).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.Borrow{}).
		Select("COUNT(*) AS total, "+
			"SUM(CASE WHEN status = 'Pending' THEN 1 ELSE 0 END) AS pending, "+
			"SUM(CASE WHEN status = 'Returned' THEN 1 ELSE 0 END) AS returned").
		Scan(&out.Borrows).Error; err != nil {
		return nil, err
	}

	// Overdue is derived, so the split happens here rather than on a stored
	// status value.
	if err := s.db.WithContext(ctx).Model(&model.Reservation{}).
		Select("COUNT(*) AS total, "+
			"SUM(CASE WHEN status = 'Active' AND expected_return_date >= ? THEN 1 ELSE 0 END) AS active, "+
			"SUM(CASE WHEN status = 'Active' AND expected_return_date < ? THEN 1 ELSE 0 END) AS overdue, "+
			"SUM(CASE WHEN status = 'Returned' THEN 1 ELSE 0 END) AS returned", today, today).
		Scan(&out.Reservations).Error; err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(&model.Tech4Ed{}).
		Select("COUNT(*) AS total, "+
			"SUM(CASE WHEN type = 'entry' THEN 1 ELSE 0 END) AS entries, "+
			"SUM(CASE WHEN type = 'session' AND time_out IS NULL THEN 1 ELSE 0 END) AS active_sessions, "+
			"SUM(CASE WHEN time_in >= ? AND time_in < ? THEN 1 ELSE 0 END) AS today", dayStart, dayEnd).
		Scan(&out.Tech4Ed).Error; err != nil {
		return nil, err
	}

	recent, err := s.recentActivity(ctx, now)
	if err != nil {
		return nil, err
	}
	out.Recent = recent

	if err := s.db.WithContext(ctx).Raw(
		`SELECT office, COUNT(*) AS cnt FROM (
			SELECT office FROM repairs
			UNION ALL SELECT office FROM borrowed_items
			UNION ALL SELECT office FROM reservations
		) t GROUP BY office ORDER BY cnt DESC LIMIT 8`).
		Scan(&out.OfficeData).Error; err != nil {
		return nil, err
	}

	if out.Monthly.Repairs, err = s.monthlyCounts(ctx, "repairs", "date_received", monthCutoff); err != nil {
		return nil, err
	}
	if out.Monthly.Borrows, err = s.monthlyCounts(ctx, "borrowed_items", "date_borrowed", monthCutoff); err != nil {
		return nil, err
	}
	if out.Monthly.Reservations, err = s.monthlyCounts(ctx, "reservations", "reservation_date", monthCutoff); err != nil {
		return nil, err
	}

	return out, nil
}

// recentActivity merges the five most-recently-updated records of each
// transactional type into one globally ordered feed.
func (s *gormStore) recentActivity(ctx context.Context, now time.Time) ([]ActivityItem, error) {
	var merged []ActivityItem

	queries := []struct {
		table string
		kind  string
		name  string
		item  string
	}{
		{"repairs", "repair", "customer_name", "item_name"},
		{"borrowed_items", "borrow", "borrower_name", "item_borrowed"},
	}

	for _, q := range queries {
		var items []ActivityItem
		err := s.db.WithContext(ctx).Table(q.table).
			Select("? AS kind, id, "+q.name+" AS name, "+q.item+" AS item, office, status, updated_at AS ts", q.kind).
			Order("updated_at DESC").Limit(5).
			Scan(&items).Error
		if err != nil {
			return nil, err
		}
		merged = append(merged, items...)
	}

	// Reservations go through the model so the feed carries the derived
	// status, same as every other read path.
	var reservations []model.Reservation
	if err := s.db.WithContext(ctx).Order("updated_at DESC").Limit(5).Find(&reservations).Error; err != nil {
		return nil, err
	}
	for _, r := range reservations {
		merged = append(merged, ActivityItem{
			Kind:   "reservation",
			ID:     r.ID,
			Name:   r.BorrowerName,
			Item:   r.ItemName,
			Office: r.Office,
			Status: lifecycle.DeriveReservationStatus(r.Status, r.ExpectedReturnDate, now),
			TS:     r.UpdatedAt,
		})
	}

	sort.Slice(merged, func(i, j int) bool { return merged[i].TS.After(merged[j].TS) })
	if len(merged) > recentFeedSize {
		merged = merged[:recentFeedSize]
	}
	return merged, nil
}

// monthlyCounts buckets a table by YYYY-MM taken from its defining date
// column. Dates are stored as ISO strings, so substr is portable across
// Postgres and the SQLite test database.
func (s *gormStore) monthlyCounts(ctx context.Context, table, dateCol, cutoff string) ([]MonthlyCount, error) {
	rows := make([]MonthlyCount, 0, 6)
	err := s.db.WithContext(ctx).Table(table).
		Select("substr("+dateCol+", 1, 7) AS month, COUNT(*) AS cnt").
		Where(dateCol+" >= ?", cutoff).
		Group("month").Order("month").
		Scan(&rows).Error
	return rows, err
}
