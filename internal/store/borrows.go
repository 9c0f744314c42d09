package store

import (
	"context"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

func (s *gormStore) CreateBorrow(ctx context.Context, rec *model.Borrow) error {
	rec.Status = lifecycle.StatusPending
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ListBorrows(ctx context.Context, p ListParams) ([]model.Borrow, PageInfo, error) {
	page, limit := clampPaging(p.Page, p.Limit)

	q := s.db.WithContext(ctx).Model(&model.Borrow{})
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	rows := make([]model.Borrow, 0, limit)
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, PageInfo{}, err
	}
	return rows, pageInfo(total, page, limit), nil
}

// ReturnBorrow marks a borrow as returned. Returned is terminal; a second
// attempt loses the conditional update and gets ErrConflict.
func (s *gormStore) ReturnBorrow(ctx context.Context, id int64, returnedBy, receivedBy, returnDate string, comments *string) error {
	res := s.db.WithContext(ctx).Model(&model.Borrow{}).
		Where("id = ? AND status = ?", id, lifecycle.StatusPending).
		Updates(map[string]any{
			"status":      lifecycle.StatusReturned,
			"returned_by": returnedBy,
			"received_by": receivedBy,
			"return_date": returnDate,
			"comments":    comments,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.resolveZeroRows(ctx, &model.Borrow{}, id)
	}
	return nil
}

func (s *gormStore) DeleteBorrow(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Borrow{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
