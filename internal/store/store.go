package store

import (
	"context"
	"time"

	"gorm.io/gorm"

	"office-log-backend/internal/model"
)

// Store defines all database operations used by the API layer.
type Store interface {
	// Repairs
	CreateRepair(ctx context.Context, rec *model.Repair) error
	ListRepairs(ctx context.Context, p ListParams) ([]model.Repair, PageInfo, error)
	ListAllRepairs(ctx context.Context) ([]model.Repair, error)
	SetRepairCondition(ctx context.Context, id int64, condition, repairedBy string, comment *string) error
	ReleaseRepair(ctx context.Context, id int64, claimedBy, releasedBy, dateClaimed string) error
	DeleteRepair(ctx context.Context, id int64) error

	// Borrowed items
	CreateBorrow(ctx context.Context, rec *model.Borrow) error
	ListBorrows(ctx context.Context, p ListParams) ([]model.Borrow, PageInfo, error)
	ReturnBorrow(ctx context.Context, id int64, returnedBy, receivedBy, returnDate string, comments *string) error
	DeleteBorrow(ctx context.Context, id int64) error

	// Reservations
	CreateReservation(ctx context.Context, rec *model.Reservation) error
	ListReservations(ctx context.Context, p ListParams, now time.Time) ([]model.Reservation, PageInfo, error)
	ReturnReservation(ctx context.Context, id int64, returnedBy, receivedBy, actualReturnDate string, comments *string) error
	DeleteReservation(ctx context.Context, id int64) error

	// Tech4Ed
	CreateTech4Ed(ctx context.Context, rec *model.Tech4Ed) error
	ListTech4Ed(ctx context.Context, p Tech4EdListParams) ([]model.Tech4Ed, PageInfo, error)
	ListActiveSessions(ctx context.Context) ([]model.Tech4Ed, error)
	TimeOutTech4Ed(ctx context.Context, id int64, now time.Time) error

	// Users and lookups
	GetUserByUsername(ctx context.Context, username string) (*model.User, error)
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	CountUsers(ctx context.Context) (int64, error)
	CreateUser(ctx context.Context, user *model.User) error
	ListOffices(ctx context.Context) ([]model.Office, error)
	ListEmployees(ctx context.Context) ([]model.Employee, error)

	// Dashboard
	Stats(ctx context.Context, now time.Time) (*Stats, error)
}

// ListParams carries the shared status filter and pagination inputs.
type ListParams struct {
	Status string
	Page   int
	Limit  int
}

// Tech4EdListParams filters the visit log by record type and open sessions.
type Tech4EdListParams struct {
	Type       string
	ActiveOnly bool
	Page       int
	Limit      int
}

// PageInfo is the pagination envelope returned with every list.
type PageInfo struct {
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"totalPages"`
}

// gormStore implements Store using GORM.
type gormStore struct {
	db *gorm.DB
}

// NewGormStore creates a new GORM-backed store.
func NewGormStore(db *gorm.DB) Store {
	return &gormStore{db: db}
}

// clampPaging applies the shared pagination rules: page at least 1, limit
// defaulting to 20 and capped at 100.
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	return page, limit
}

func pageInfo(total int64, page, limit int) PageInfo {
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PageInfo{Total: total, Page: page, Limit: limit, TotalPages: totalPages}
}

// resolveZeroRows turns a zero-affected-rows conditional update into a
// deterministic answer: the record is either gone (ErrNotFound) or present
// in a state the transition does not allow (ErrConflict).
func (s *gormStore) resolveZeroRows(ctx context.Context, m any, id int64) error {
	var n int64
	if err := s.db.WithContext(ctx).Model(m).Where("id = ?", id).Count(&n).Error; err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return ErrConflict
}
