package queries

import (
	"context"

	"courierhub/internal/core/ports"
)

// GetUserNotificationsQueryHandler reads notifications through the
// notification repository, which already owns paging and counting.
type GetUserNotificationsQueryHandler struct {
	repo ports.NotificationRepository
}

func NewGetUserNotificationsQueryHandler(repo ports.NotificationRepository) GetUserNotificationsQueryHandler {
	return GetUserNotificationsQueryHandler{repo: repo}
}

func (h GetUserNotificationsQueryHandler) Handle(
	ctx context.Context,
	query GetUserNotificationsQuery,
) (*GetUserNotificationsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	page, err := h.repo.ListByUser(ctx, query.UserID(), (query.Page()-1)*query.Size(), query.Size())
	if err != nil {
		return nil, err
	}

	size := int64(query.Size())
	resp := &GetUserNotificationsQueryResponse{
		Count:      page.Count,
		Unseen:     page.Unseen,
		TotalPages: (page.Count + size - 1) / size,
		Results:    make([]NotificationView, 0, len(page.Results)),
	}
	for _, n := range page.Results {
		resp.Results = append(resp.Results, NotificationView{
			ID:        n.ID().String(),
			Title:     n.Title(),
			Content:   n.Content(),
			Seen:      n.IsSeen(),
			CreatedAt: n.CreatedAt(),
		})
	}

	return resp, nil
}
