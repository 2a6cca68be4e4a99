package queries

import (
	"context"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/core/domain/model/order"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"
)

// GetOrderStatisticsQueryHandler computes the statistics with a handful of
// aggregate queries built with squirrel and executed through gorm.
type GetOrderStatisticsQueryHandler struct {
	db  *gorm.DB
	now func() time.Time
}

func NewGetOrderStatisticsQueryHandler(db *gorm.DB) GetOrderStatisticsQueryHandler {
	return GetOrderStatisticsQueryHandler{
		db:  db,
		now: time.Now,
	}
}

func (h GetOrderStatisticsQueryHandler) Handle(
	ctx context.Context,
	query GetOrderStatisticsQuery,
) (*GetOrderStatisticsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	scope := orderScope(query.CompanyID(), query.DeliveryID())
	resp := &GetOrderStatisticsQueryResponse{
		StatusCounts: make(map[string]int64),
		MonthlySales: make(map[string]MonthlySales),
	}
	for _, s := range order.AllStatuses() {
		resp.StatusCounts[s.String()] = 0
	}

	var totals struct {
		Orders   int64
		Total    float64
		Shipping float64
	}
	if err := h.scan(ctx, sq.Select(
		"COUNT(*) AS orders",
		"COALESCE(SUM(total), 0) AS total",
		"COALESCE(SUM(shipping), 0) AS shipping",
	).From("orders").Where(scope), &totals); err != nil {
		return nil, err
	}
	resp.TotalOrders = totals.Orders
	resp.TotalPaid = totals.Total
	resp.Shipping = totals.Shipping

	if err := h.scan(ctx, sq.Select("COUNT(*)").From("companies"), &resp.VendorCount); err != nil {
		return nil, err
	}

	agents := sq.Select("COUNT(*)").From("deliveries").Where(sq.Eq{"deleted": false})
	if id := query.CompanyID(); id != nil {
		agents = agents.Where(sq.Eq{"company_id": id.String()})
	}
	if err := h.scan(ctx, agents, &resp.ActiveDeliveries); err != nil {
		return nil, err
	}

	var statuses []struct {
		Status string
		Count  int64
	}
	if err := h.scan(ctx, sq.Select("status", "COUNT(*) AS count").
		From("orders").
		Where(scope).
		GroupBy("status"), &statuses); err != nil {
		return nil, err
	}
	for _, s := range statuses {
		resp.StatusCounts[s.Status] = s.Count
	}

	var months []struct {
		Year     int
		Month    int
		Total    float64
		Shipping float64
	}
	if err := h.scan(ctx, sq.Select(
		"EXTRACT(YEAR FROM created_at AT TIME ZONE 'UTC')::int AS year",
		"EXTRACT(MONTH FROM created_at AT TIME ZONE 'UTC')::int AS month",
		"COALESCE(SUM(total), 0) AS total",
		"COALESCE(SUM(shipping), 0) AS shipping",
	).From("orders").
		Where(scope).
		Where(sq.GtOrEq{"created_at": trailingYearStart(h.now())}).
		GroupBy("year", "month"), &months); err != nil {
		return nil, err
	}
	for _, m := range months {
		key := MonthKey(time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC))
		resp.MonthlySales[key] = MonthlySales{Total: m.Total, Shipping: m.Shipping}
	}

	return resp, nil
}

func (h GetOrderStatisticsQueryHandler) scan(ctx context.Context, builder sq.SelectBuilder, dest any) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	return h.db.WithContext(ctx).Raw(sql, args...).Scan(dest).Error
}

// orderScope is the filter shared by every order aggregate.
func orderScope(companyID, deliveryID *kernel.UUID) sq.And {
	scope := sq.And{sq.Eq{"deleted": false}}
	if companyID != nil {
		scope = append(scope, sq.Eq{"company_id": companyID.String()})
	}
	if deliveryID != nil {
		scope = append(scope, sq.Eq{"delivery_id": deliveryID.String()})
	}
	return scope
}

// trailingYearStart is the first instant of the month eleven months before now.
func trailingYearStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month()-11, 1, 0, 0, 0, 0, time.UTC)
}
