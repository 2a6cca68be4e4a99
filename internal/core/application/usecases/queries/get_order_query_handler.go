package queries

import (
	"context"
	"time"

	"courierhub/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads an order and its timeline.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (*GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	where := sq.Eq{"o.id": query.OrderID().String(), "o.deleted": false}
	if id := query.CompanyID(); id != nil {
		where["o.company_id"] = id.String()
	}

	sql, args, err := sq.Select(
		"o.id", "o.company_id", "o.client_id", "COALESCE(c.name, '')", "o.delivery_id",
		"o.status", "o.total", "o.shipping", "o.delivery_fee",
		"o.confirmed", "o.company_confirm", "o.delivery_confirm", "o.processed",
		"o.notes", "o.from_address", "o.to_address", "o.created_at",
	).From("orders o").
		LeftJoin("clients c ON c.id = o.client_id").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	var resp GetOrderQueryResponse
	if err = rows.Scan(
		&resp.ID, &resp.CompanyID, &resp.ClientID, &resp.ClientName, &resp.DeliveryID,
		&resp.Status, &resp.Total, &resp.Shipping, &resp.DeliveryFee,
		&resp.Confirmed, &resp.CompanyConfirm, &resp.DeliveryConfirm, &resp.Processed,
		&resp.Notes, &resp.From, &resp.To, &resp.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err = rows.Close(); err != nil {
		return nil, err
	}

	timeline, err := h.timeline(ctx, resp.ID)
	if err != nil {
		return nil, err
	}
	resp.Timeline = timeline

	return &resp, nil
}

func (h GetOrderQueryHandler) timeline(ctx context.Context, orderID string) ([]TimelineEntry, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT status, COALESCE(note, ''), changed_by, created_at
		FROM order_timeline
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]TimelineEntry, 0)
	for rows.Next() {
		var (
			entry     TimelineEntry
			createdAt time.Time
		)
		if err = rows.Scan(&entry.Status, &entry.Note, &entry.ChangedBy, &createdAt); err != nil {
			return nil, err
		}
		entry.CreatedAt = createdAt.UTC()
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}
