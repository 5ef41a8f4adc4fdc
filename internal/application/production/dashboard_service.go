package production

import (
	"context"
	"fmt"
	"time"

	"github.com/atelier/backend/internal/domain/production"
	"github.com/atelier/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// dashboardDays is the length of the daily finished pieces series
const dashboardDays = 7

// DailyPieces is the number of pieces returned by seamstresses on one day
type DailyPieces struct {
	Date   string `json:"date"`
	Pieces int    `json:"pieces"`
}

// DashboardResponse summarizes the workshop
type DashboardResponse struct {
	OrdersByStatus     map[string]int64 `json:"orders_by_status"`
	ActiveSeamstresses int              `json:"active_seamstresses"`
	MonthPieces        int              `json:"month_pieces"`
	Daily              []DailyPieces    `json:"daily"`
	CutPieces          int              `json:"cut_pieces"`
	DistributedPieces  int              `json:"distributed_pieces"`
	RemainingPieces    int              `json:"remaining_pieces"`
	GeneratedAt        time.Time        `json:"generated_at"`
}

// DashboardService computes the production overview
type DashboardService struct {
	orderRepo production.OrderRepository
	now       func() time.Time
}

// NewDashboardService creates a new DashboardService
func NewDashboardService(orderRepo production.OrderRepository) *DashboardService {
	return &DashboardService{orderRepo: orderRepo, now: time.Now}
}

// Get computes the dashboard. Calendar days and months use the local time zone.
func (s *DashboardService) Get(ctx context.Context) (*DashboardResponse, error) {
	counts, err := s.orderRepo.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count orders: %w", err)
	}

	filter := shared.Filter{
		Page:    1,
		OrderBy: "created_at",
		Filters: map[string]interface{}{
			"status": []production.OrderStatus{
				production.OrderStatusCutting,
				production.OrderStatusSewing,
				production.OrderStatusFinished,
			},
		},
	}
	orders, err := s.orderRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to load orders: %w", err)
	}

	now := s.now()
	resp := &DashboardResponse{
		OrdersByStatus: make(map[string]int64, len(production.AllOrderStatuses)),
		GeneratedAt:    now,
	}
	for _, st := range production.AllOrderStatuses {
		resp.OrdersByStatus[string(st)] = counts[st]
	}

	today := startOfDay(now)
	first := today.AddDate(0, 0, -(dashboardDays - 1))
	daily := make([]int, dashboardDays)
	active := make(map[uuid.UUID]struct{})

	for i := range orders {
		o := &orders[i]
		resp.CutPieces += o.CutPieces()
		resp.DistributedPieces += o.DistributedPieces()
		resp.RemainingPieces += o.RemainingPieces()

		for j := range o.Splits {
			split := &o.Splits[j]
			if !split.IsFinished() {
				active[split.SeamstressID] = struct{}{}
				continue
			}
			if split.FinishedAt == nil {
				continue
			}
			at := split.FinishedAt.In(now.Location())
			if at.Year() == now.Year() && at.Month() == now.Month() {
				resp.MonthPieces += split.Pieces()
			}
			day := startOfDay(at)
			if day.Before(first) || day.After(today) {
				continue
			}
			daily[dayIndex(first, day)] += split.Pieces()
		}
	}

	resp.ActiveSeamstresses = len(active)
	resp.Daily = make([]DailyPieces, dashboardDays)
	for i := range daily {
		resp.Daily[i] = DailyPieces{
			Date:   first.AddDate(0, 0, i).Format("2006-01-02"),
			Pieces: daily[i],
		}
	}
	return resp, nil
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// dayIndex counts calendar days between two midnights. Hours are rounded so a
// daylight saving shift does not move a day.
func dayIndex(from, to time.Time) int {
	return int((to.Sub(from) + 12*time.Hour) / (24 * time.Hour))
}
