package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"office-log-backend/internal/lifecycle"
	"office-log-backend/internal/model"
)

func (s *gormStore) CreateRepair(ctx context.Context, rec *model.Repair) error {
	rec.Status = lifecycle.StatusPending
	rec.RepairCondition = nil
	return s.db.WithContext(ctx).Create(rec).Error
}

func (s *gormStore) ListRepairs(ctx context.Context, p ListParams) ([]model.Repair, PageInfo, error) {
	page, limit := clampPaging(p.Page, p.Limit)

	q := s.db.WithContext(ctx).Model(&model.Repair{})
	if p.Status != "" {
		q = q.Where("status = ?", p.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, PageInfo{}, err
	}

	rows := make([]model.Repair, 0, limit)
	if err := q.Order("created_at DESC").Limit(limit).Offset((page - 1) * limit).Find(&rows).Error; err != nil {
		return nil, PageInfo{}, err
	}
	return rows, pageInfo(total, page, limit), nil
}

func (s *gormStore) ListAllRepairs(ctx context.Context) ([]model.Repair, error) {
	var rows []model.Repair
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&rows).Error
	return rows, err
}

// SetRepairCondition records or corrects the diagnosis. The conditional
// update is the guard: a released record is never touched.
func (s *gormStore) SetRepairCondition(ctx context.Context, id int64, condition, repairedBy string, comment *string) error {
	res := s.db.WithContext(ctx).Model(&model.Repair{}).
		Where("id = ? AND status = ?", id, lifecycle.StatusPending).
		Updates(map[string]any{
			"repair_condition": condition,
			"repaired_by":      repairedBy,
			"repair_comment":   comment,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return s.resolveZeroRows(ctx, &model.Repair{}, id)
	}
	return nil
}

// ReleaseRepair moves a repair to its terminal Released state. The
// condition check happens first so the caller gets a precise failure; the
// conditional update then settles any race on the status itself.
func (s *gormStore) ReleaseRepair(ctx context.Context, id int64, claimedBy, releasedBy, dateClaimed string) error {
	var rec model.Repair
	if err := s.db.WithContext(ctx).Select("id", "repair_condition").First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rec.RepairCondition == nil || *rec.RepairCondition == "" {
		return fmt.Errorf("%w: cannot release", ErrConditionNotSet)
	}

	res := s.db.WithContext(ctx).Model(&model.Repair{}).
		Where("id = ? AND status = ?", id, lifecycle.StatusPending).
		Updates(map[string]any{
			"status":       lifecycle.StatusReleased,
			"claimed_by":   claimedBy,
			"date_claimed": dateClaimed,
			"released_by":  releasedBy,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrConflict
	}
	return nil
}

func (s *gormStore) DeleteRepair(ctx context.Context, id int64) error {
	res := s.db.WithContext(ctx).Delete(&model.Repair{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
