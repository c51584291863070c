package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/thrillee/glowshop/internal/database"
	"github.com/thrillee/glowshop/internal/logging"
	"github.com/thrillee/glowshop/internal/managerapi/handlers/dto"
)

const (
	defaultDashboardDays = 30
	maxDashboardDays     = 365
	topProductsLimit     = 5
)

type DashboardHandler struct {
	dbQueries    database.Querier
	baseCurrency string
	now          func() time.Time
}

func NewDashboardHandler(q database.Querier, baseCurrency string) *DashboardHandler {
	return &DashboardHandler{dbQueries: q, baseCurrency: baseCurrency, now: time.Now}
}

// GetDashboard handles GET /dashboard?days=30
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	logCtx := logging.ContextWithHandler(c.Request.Context(), "GetDashboard")

	days := defaultDashboardDays
	if v := c.Query("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxDashboardDays {
			badRequest(c, "days must be between 1 and 365")
			return
		}
		days = n
	}
	since := pgtype.Timestamptz{Time: h.now().AddDate(0, 0, -days), Valid: true}

	summary, err := h.dbQueries.GetSalesSummary(logCtx, since)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	byStatus, err := h.dbQueries.CountOrdersByStatus(logCtx, since)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	top, err := h.dbQueries.ListTopProducts(logCtx, database.ListTopProductsParams{Since: since, Limit: topProductsLimit})
	if err != nil {
		respondError(c, logCtx, err)
		return
	}
	daily, err := h.dbQueries.ListDailyRevenue(logCtx, since)
	if err != nil {
		respondError(c, logCtx, err)
		return
	}

	aov := decimal.Zero
	if summary.PaidOrders > 0 {
		aov = summary.Revenue.Div(decimal.NewFromInt(summary.PaidOrders)).Round(2)
	}
	resp := dto.DashboardResponse{
		Days:              days,
		Revenue:           dto.NewMoney(summary.Revenue, h.baseCurrency),
		Orders:            summary.TotalOrders,
		PaidOrders:        summary.PaidOrders,
		AverageOrderValue: dto.NewMoney(aov, h.baseCurrency),
		Customers:         summary.Customers,
		OrdersByStatus:    make(map[string]int64, len(byStatus)),
		TopProducts:       make([]dto.TopProductResponse, len(top)),
		DailyRevenue:      make([]dto.DailyRevenuePoint, len(daily)),
	}
	for _, row := range byStatus {
		resp.OrdersByStatus[row.Status] = row.Orders
	}
	for i, row := range top {
		resp.TopProducts[i] = dto.TopProductResponse{ProductID: row.ProductID, Name: row.ProductName, Units: row.Units, Revenue: row.Revenue}
	}
	for i, row := range daily {
		resp.DailyRevenue[i] = dto.DailyRevenuePoint{Date: row.Day.Time.Format(time.DateOnly), Revenue: row.Revenue, Orders: row.Orders}
	}

	slog.DebugContext(logCtx, "Dashboard computed", slog.Int("days", days), slog.Int64("orders", summary.TotalOrders))
	c.JSON(http.StatusOK, resp)
}
