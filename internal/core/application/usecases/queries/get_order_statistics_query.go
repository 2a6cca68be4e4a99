// Package queries contains read-only operations of the order lifecycle.
// Query handlers read straight from the database and never go through the
// aggregates or the unit of work.
package queries

import (
	"errors"
	"time"

	"courierhub/internal/core/domain/model/kernel"
	"courierhub/internal/pkg/guard"
)

var ErrGetOrderStatisticsQueryIsNotConstructed = errors.New(
	"GetOrderStatisticsQuery must be created via NewGetOrderStatisticsQuery constructor",
)

// GetOrderStatisticsQuery aggregates the orders of a company, of an agent, or
// of the whole platform when both filters are nil.
//
// Example:
//
//	query, err := NewGetOrderStatisticsQuery(&companyID, nil)
//	if err != nil {
//	    return err
//	}
//	stats, err := handler.Handle(ctx, query)
//	fmt.Println(stats.StatusCounts["DELIVERED"], stats.MonthlySales["2026-10"].Total)
type GetOrderStatisticsQuery struct {
	companyID  *kernel.UUID
	deliveryID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderStatisticsQuery(companyID, deliveryID *kernel.UUID) (GetOrderStatisticsQuery, error) {
	var err error
	if companyID != nil {
		err = errors.Join(err, companyID.Validate())
	}
	if deliveryID != nil {
		err = errors.Join(err, deliveryID.Validate())
	}
	if err != nil {
		return GetOrderStatisticsQuery{}, err
	}

	return GetOrderStatisticsQuery{
		companyID:  companyID,
		deliveryID: deliveryID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (q GetOrderStatisticsQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderStatisticsQueryIsNotConstructed)
}

func (q GetOrderStatisticsQuery) CompanyID() *kernel.UUID {
	return q.companyID
}

func (q GetOrderStatisticsQuery) DeliveryID() *kernel.UUID {
	return q.deliveryID
}

// MonthlySales is the revenue of one calendar month.
type MonthlySales struct {
	Total    float64 `json:"total"`
	Shipping float64 `json:"shipping"`
}

// GetOrderStatisticsQueryResponse carries the dashboard figures.
//
// StatusCounts holds every status, zero when no order has it. MonthlySales is
// keyed "YYYY-M" (month not zero padded) and covers the current month and
// the eleven before it; months without orders are absent.
type GetOrderStatisticsQueryResponse struct {
	TotalOrders      int64                   `json:"totalOrders"`
	VendorCount      int64                   `json:"vendorCount"`
	ActiveDeliveries int64                   `json:"activeDeliveries"`
	TotalPaid        float64                 `json:"totalPaid"`
	Shipping         float64                 `json:"shipping"`
	StatusCounts     map[string]int64        `json:"statusCounts"`
	MonthlySales     map[string]MonthlySales `json:"monthlySales"`
}

// MonthKey formats the MonthlySales key of t.
func MonthKey(t time.Time) string {
	return t.Format("2006-1")
}
