package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/errs"
	"courierhub/internal/pkg/guard"
)

const (
	DefaultNotificationPageSize = 20
	MaxNotificationPageSize     = 100
)

var ErrGetUserNotificationsQueryIsNotConstructed = errors.New(
	"GetUserNotificationsQuery must be created via NewGetUserNotificationsQuery constructor",
)

// GetUserNotificationsQuery pages through a user's notifications, newest
// first. Pages start at 1; a zero size selects DefaultNotificationPageSize.
type GetUserNotificationsQuery struct {
	userID kernel.UUID
	page   int
	size   int

	guard guard.ConstructorGuard
}

func NewGetUserNotificationsQuery(userID kernel.UUID, page, size int) (GetUserNotificationsQuery, error) {
	if err := userID.Validate(); err != nil {
		return GetUserNotificationsQuery{}, err
	}
	if page == 0 {
		page = 1
	}
	if size == 0 {
		size = DefaultNotificationPageSize
	}
	if page < 1 {
		return GetUserNotificationsQuery{}, errs.NewValueIsOutOfRangeError("page", page, 1, "unbounded")
	}
	if size < 1 || size > MaxNotificationPageSize {
		return GetUserNotificationsQuery{}, errs.NewValueIsOutOfRangeError("size", size, 1, MaxNotificationPageSize)
	}

	return GetUserNotificationsQuery{
		userID: userID,
		page:   page,
		size:   size,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

func (q GetUserNotificationsQuery) Validate() error {
	return q.guard.Validate(ErrGetUserNotificationsQueryIsNotConstructed)
}

func (q GetUserNotificationsQuery) UserID() kernel.UUID { return q.userID }
func (q GetUserNotificationsQuery) Page() int           { return q.page }
func (q GetUserNotificationsQuery) Size() int           { return q.size }

// NotificationView is one notification as shown to its owner.
type NotificationView struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Seen      bool      `json:"seen"`
	CreatedAt time.Time `json:"createdAt"`
}

type GetUserNotificationsQueryResponse struct {
	Count      int64              `json:"count"`
	Unseen     int64              `json:"unseen"`
	TotalPages int64              `json:"totalPages"`
	Results    []NotificationView `json:"results"`
}
