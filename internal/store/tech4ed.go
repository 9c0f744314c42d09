package store

import (
	"context"
	"time"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

func (s *gormStore) CreateTech4Ed(ctx context.Context, rec *model.Tech4Ed) error {
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ListTech4Ed(ctx context.Context, p Tech4EdListParams) ([]model.Tech4Ed, PageInfo, error) {
	page, limit := clampPaging(p.Page, p.Limit)

	q := s.db.WithContext(ctx).Model(&model.Tech4Ed{})
	if p.Type != "" {
		q = q.Where("type = ?", p.Type)
	}
	if p.ActiveOnly {
		q = q.Where("type = ? AND time_out IS NULL", lifecycle.TypeSession)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	rows := make([]model.Tech4Ed, 0, limit)
	if err := q.Order("time_in DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, PageInfo{}, err
	}
	return rows, pageInfo(total, page, limit), nil
}

func (s *gormStore) ListActiveSessions(ctx context.Context) ([]model.Tech4Ed, error) {
	var rows []model.Tech4Ed
	err := s.db.WithContext(ctx).
		Where("type = ? AND time_out IS NULL", lifecycle.TypeSession).
		Order("time_in DESC").
		Find(&rows).Error
	return rows, err
}

// TimeOutTech4Ed closes an open session. The IS NULL guard makes the
// operation at-most-once; a concurrent second call observes zero rows.
func (s *gormStore) TimeOutTech4Ed(ctx context.Context, id int64, now time.Time) error {
	res := s.db.WithContext(ctx).Model(&model.Tech4Ed{}).
		Where("id = ? AND time_out IS NULL", id).
		Update("time_out", now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.resolveZeroRows(ctx, &model.Tech4Ed{}, id)
	}
	return nil
}
