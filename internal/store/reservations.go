package store

import (
	"context"
	"time"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

func (s *gormStore) CreateReservation(ctx context.Context, rec *model.Reservation) error {
	rec.Status = lifecycle.StatusActive
	return s.db.WithContext(ctx).Create(rec).Error
}

// ListReservations applies the virtual-Overdue rule on both sides of the
// read: the Overdue filter matches Active rows past their expected return
// date, and every returned row carries its derived status.
func (s *gormStore) ListReservations(ctx context.Context, p ListParams, now time.Time) ([]model.Reservation, PageInfo, error) {
	page, limit := clampPaging(p.Page, p.Limit)
	today := now.Format(lifecycle.DateLayout)

	q := s.db.WithContext(ctx).Model(&model.Reservation{})
	switch p.Status {
	case "":
		// no filter
	case lifecycle.StatusActive:
		// Overdue rows are stored Active, so they match here too.
		q = q.Where("status = ?", lifecycle.StatusActive)
	case lifecycle.StatusOverdue:
		q = q.Where("status = ? AND expected_return_date < ?", lifecycle.StatusActive, today)
	default:
		q = q.Where("status = ?", p.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	rows := make([]model.Reservation, 0, limit)
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, PageInfo{}, err
	}

	for i := range rows {
		rows[i].Status = lifecycle.DeriveReservationStatus(rows[i].Status, rows[i].ExpectedReturnDate, now)
	}
	return rows, pageInfo(total, page, limit), nil
}

// ReturnReservation closes a reservation. Only Active rows exist for open
// reservations (Overdue is derived), so the guard is a single equality.
func (s *gormStore) ReturnReservation(ctx context.Context, id int64, returnedBy, receivedBy, actualReturnDate string, comments *string) error {
	res := s.db.WithContext(ctx).Model(&model.Reservation{}).
		Where("id = ? AND status = ?", id, lifecycle.StatusActive).
		Updates(map[string]any{
			"status":             lifecycle.StatusReturned,
			"returned_by":        returnedBy,
			"received_by":        receivedBy,
			"actual_return_date": actualReturnDate,
			"comments":           comments,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.resolveZeroRows(ctx, &model.Reservation{}, id)
	}
	return nil
}

func (s *gormStore) DeleteReservation(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Reservation{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
