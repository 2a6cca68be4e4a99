package notificationrepo

import (
	"context"
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/notification"
	"courierhub/internal/core/ports"
	"courierhub/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}
	dto := fromDomain(n)
	return r.db.WithContext(ctx).Create(&dto).Error
}

func (r *GormNotificationRepository) Get(ctx context.Context, id kernel.UUID) (*notification.Notification, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto NotificationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("notification", id.String())
		}
		return nil, err
	}
	return toDomain(dto)
}

// Update saves the seen flag of a notification.
func (r *GormNotificationRepository) Update(ctx context.Context, n *notification.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("id = ?", n.ID().Bytes()).
		Update("seen", n.IsSeen())
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("notification", n.ID().String())
	}
	return nil
}

// ListByUser returns one page of a user's notifications, newest first.
func (r *GormNotificationRepository) ListByUser(
	ctx context.Context,
	userID kernel.UUID,
	offset, limit int,
) (ports.NotificationPage, error) {
	if err := userID.Validate(); err != nil {
		return ports.NotificationPage{}, err
	}

	db := r.db.WithContext(ctx)
	var page ports.NotificationPage
	if err := db.Model(&NotificationDTO{}).Where("user_id = ?", userID.Bytes()).Count(&page.Count).Error; err != nil {
		return ports.NotificationPage{}, err
	}
	if err := db.Model(&NotificationDTO{}).
		Where("user_id = ? AND seen = ?", userID.Bytes(), false).
		Count(&page.Unseen).Error; err != nil {
		return ports.NotificationPage{}, err
	}

	var dtos []NotificationDTO
	if err := db.Where("user_id = ?", userID.Bytes()).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return ports.NotificationPage{}, err
	}

	page.Results = make([]*notification.Notification, 0, len(dtos))
	for _, dto := range dtos {
		n, err := toDomain(dto)
		if err != nil {
			return ports.NotificationPage{}, err
		}
		page.Results = append(page.Results, n)
	}
	return page, nil
}

func (r *GormNotificationRepository) MarkAllSeen(ctx context.Context, userID kernel.UUID) (int64, error) {
	if err := userID.Validate(); err != nil {
		return 0, err
	}
	result := r.db.WithContext(ctx).
		Model(&NotificationDTO{}).
		Where("user_id = ? AND seen = ?", userID.Bytes(), false).
		Update("seen", true)
	return result.RowsAffected, result.Error
}

func (r *GormNotificationRepository) DeleteSeenBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("seen = ? AND created_at < ?", true, cutoff).
		Delete(&NotificationDTO{})
	return result.RowsAffected, result.Error
}

// GormPushTokenRepository implements PushTokenRepository using GORM.
type GormPushTokenRepository struct {
	db *gorm.DB
}

func NewGormPushTokenRepository(db *gorm.DB) *GormPushTokenRepository {
	return &GormPushTokenRepository{db: db}
}

// Register stores a device token for a user. Registering twice is a no-op.
func (r *GormPushTokenRepository) Register(ctx context.Context, userID kernel.UUID, token string) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	if token == "" {
		return errs.NewValueIsRequiredError("token")
	}
	dto := PushTokenDTO{UserID: userID.Bytes(), Token: token, CreatedAt: time.Now().UTC()}
	return r.db.WithContext(ctx).Where(PushTokenDTO{UserID: dto.UserID, Token: token}).FirstOrCreate(&dto).Error
}

func (r *GormPushTokenRepository) ListTokens(ctx context.Context, userID kernel.UUID) ([]string, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}
	var tokens []string
	err := r.db.WithContext(ctx).
		Model(&PushTokenDTO{}).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at").
		Pluck("token", &tokens).Error
	return tokens, err
}
