package httphandler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lllypuk/userhub/internal/application/appcore"
	"github.com/lllypuk/userhub/internal/application/ranking"
	"github.com/lllypuk/userhub/internal/infrastructure/httpserver"
)

// RankingService computes post-count rankings.
type RankingService interface {
	Execute(ctx context.Context, query ranking.TopQuery) (ranking.Result, error)
}

// RankingHandler serves the post ranking endpoint.
type RankingHandler struct {
	rankingService RankingService
}

// NewRankingHandler creates a new RankingHandler.
func NewRankingHandler(rankingService RankingService) *RankingHandler {
	return &RankingHandler{rankingService: rankingService}
}

// RegisterRoutes registers ranking routes with the router.
func (h *RankingHandler) RegisterRoutes(r *httpserver.Router) {
	r.API().GET("/users/top/:top", h.Top)
}

// Top handles GET /api/v1/users/top/:top and responds with a bare array of
// ranking rows.
func (h *RankingHandler) Top(c echo.Context) error {
	result, err := h.rankingService.Execute(c.Request().Context(), ranking.TopQuery{Top: c.Param("top")})
	if err != nil {
		if errors.Is(err, appcore.ErrValidationFailed) {
			return httpserver.RespondErrorWithCode(c, http.StatusBadRequest, httpserver.MessageInvalidDetails)
		}
		return httpserver.RespondError(c, err)
	}

	return httpserver.RespondOK(c, result.Rows())
}
