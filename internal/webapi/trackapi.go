package webapi

import (
	"net/http"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"
)

func (s *WebServer) initTrackingRouter() {
	g := s.root.Group("/api/tracking", s.dashboardGuard())
	g.GET("/summary", s.trackingSummary)
	g.GET("/top-products", s.topProducts)
	g.GET("/top-categories", s.topCategories)
	g.GET("/recent-searches", s.recentSearches)
	g.GET("/recent-orders", s.recentOrders)
	g.GET("/recent-events", s.recentEvents)
	g.GET("/orders/export", s.exportOrders)
}

// trackingSummary serves the dashboard headline numbers.
func (s *WebServer) trackingSummary(c echo.Context) error {
	tracking := s.app.Tracking()

	summary := echo.Map{
		"views":         tracking.ViewCount(),
		"cart_adds":     tracking.AddToCartCount(),
		"purchases":     tracking.PurchaseCount(),
		"total_revenue": tracking.TotalRevenue(),
	}
	if totals := tracking.OrderTotals(); len(totals) > 0 {
		mean, _ := stats.Mean(totals)
		median, _ := stats.Median(totals)
		summary["avg_order_value"] = mean
		summary["median_order_value"] = median
	}
	return ok(c, summary)
}

func (s *WebServer) topProducts(c echo.Context) error {
	return ok(c, s.app.Tracking().TopProducts(parseLimit(c, 10)))
}

func (s *WebServer) topCategories(c echo.Context) error {
	return ok(c, s.app.Tracking().TopCategories())
}

func (s *WebServer) recentSearches(c echo.Context) error {
	return ok(c, s.app.Tracking().RecentSearches(parseLimit(c, 10)))
}

func (s *WebServer) recentOrders(c echo.Context) error {
	return ok(c, s.app.Tracking().RecentOrders(parseLimit(c, 10)))
}

// recentEvents serves the newest events, optionally cut off at a flexible
// since timestamp ("2026-02-10", "10 Feb 2026", unix seconds, ...).
func (s *WebServer) recentEvents(c echo.Context) error {
	events := s.app.Tracking().RecentEvents(parseLimit(c, 20))
	if since := strings.TrimSpace(c.QueryParam("since")); since != "" {
		cutoff, err := dateparse.ParseAny(since)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse since", err.Error())
		}
		filtered := events[:0]
		for _, ev := range events {
			if !ev.Timestamp.Before(cutoff) {
				filtered = append(filtered, ev)
			}
		}
		events = filtered
	}
	return ok(c, events)
}

type orderExportRow struct {
	OrderID     string `csv:"order_id"`
	CreatedAt   string `csv:"created_at"`
	Recipient   string `csv:"recipient"`
	Phone       string `csv:"phone"`
	Address     string `csv:"address"`
	GiftID      string `csv:"gift_id"`
	GiftName    string `csv:"gift_name"`
	Category    string `csv:"category"`
	Quantity    int    `csv:"quantity"`
	OrderTotal  int64  `csv:"order_total"`
}

// exportOrders streams the order log as CSV, one row per line item.
func (s *WebServer) exportOrders(c echo.Context) error {
	var rows []orderExportRow
	for _, o := range s.app.Tracking().AllOrders() {
		for _, it := range o.Items {
			rows = append(rows, orderExportRow{
				OrderID:    o.ID,
				CreatedAt:  o.CreatedAt.Format(time.RFC3339),
				Recipient:  o.Recipient.Name,
				Phone:      o.Recipient.Phone,
				Address:    o.Recipient.Address,
				GiftID:     it.Gift.ID,
				GiftName:   it.Gift.Name,
				Category:   string(it.Gift.Category),
				Quantity:   it.Quantity,
				OrderTotal: o.TotalAmount,
			})
		}
	}
	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="orders.csv"`)
	c.Response().WriteHeader(http.StatusOK)
	return gocsv.Marshal(&rows, c.Response())
}
