package webapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lunargift/giftmall/internal/domain"
)

func (s *WebServer) initStorefrontRouter() {
	s.root.GET("/api/gifts", s.listGifts)
	s.root.GET("/api/gifts/:id", s.getGift)
	s.root.GET("/api/categories", s.listCategories)
	s.root.GET("/api/promo", s.getPromo)
}

// listGifts serves the storefront grid. A non-blank q runs a search (and
// records it); otherwise category/popular/new filters apply.
func (s *WebServer) listGifts(c echo.Context) error {
	cat := s.app.Catalog()

	var rows []domain.Gift
	q := strings.TrimSpace(c.QueryParam("q"))
	switch {
	case q != "":
		rows = cat.Search(q)
		if err := s.app.Tracking().RecordSearch(q); err != nil {
			zap.L().Error("record search failed", zap.Error(err))
		}
	case c.QueryParam("popular") == "true":
		rows = cat.Popular()
	case c.QueryParam("new") == "true":
		rows = cat.NewArrivals()
	default:
		category := c.QueryParam("category")
		if category == "" {
			category = domain.CategoryAll
		}
		rows = cat.ByCategory(category)
	}

	page, pageSize := parsePagination(c)
	total := len(rows)
	lo := (page - 1) * pageSize
	if lo > total {
		lo = total
	}
	hi := lo + pageSize
	if hi > total {
		hi = total
	}
	return paged(c, rows[lo:hi], total, page, pageSize)
}

// getGift serves one gift detail and records the view.
func (s *WebServer) getGift(c echo.Context) error {
	g, found := s.app.Catalog().ByID(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Gift not found", nil)
	}
	if err := s.app.Tracking().RecordView(g.ID, g.Name, g.Category); err != nil {
		zap.L().Error("record view failed", zap.Error(err))
	}
	return ok(c, g)
}

func (s *WebServer) listCategories(c echo.Context) error {
	return ok(c, domain.Categories)
}

// getPromo serves runtime promo settings (banner text, open flag).
func (s *WebServer) getPromo(c echo.Context) error {
	settings := s.app.Settings()
	banner := settings.GetString("banner")
	if banner == "" {
		banner = "설맞이 감사 선물 대잔치"
	}
	return ok(c, echo.Map{
		"banner": banner,
		"open":   !settings.GetBool("promo_closed"),
	})
}
