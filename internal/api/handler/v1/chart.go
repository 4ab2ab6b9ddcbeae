package v1

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vietanh2810/student-report-api/internal/api/handler/v1/response"
	"github.com/vietanh2810/student-report-api/internal/domain"
	"github.com/vietanh2810/student-report-api/internal/service"
)

type ChartService interface {
	GenerateCharts(ctx context.Context) (domain.ChartSet, error)
}

type ChartHandler struct {
	svc ChartService
}

func NewChartHandler(svc ChartService) *ChartHandler {
	return &ChartHandler{
		svc: svc,
	}
}

// HandleGenerateGraphs godoc
// @Summary      Render the roster charts
// @Description  Returns base64 encoded PNG images keyed by chart name. Charts that could not be rendered are listed under errors.
// @Tags         charts
// @Produce      json
// @Success      200  {object}  domain.ChartSet
// @Failure      404  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /generate-graphs [get]
func (h *ChartHandler) HandleGenerateGraphs(ctx *gin.Context) {
	set, err := h.svc.GenerateCharts(ctx.Request.Context())
	if err != nil {
		if errors.Is(err, service.ErrNoData) {
			response.RenderErr(ctx, response.ErrNoData(err))
			return
		}

		if errors.Is(err, service.ErrNoChartRendered) {
			err = fmt.Errorf("HandleGenerateGraphs -> h.svc.GenerateCharts -> %w: %v", err, set.Errors)
		} else {
			err = fmt.Errorf("HandleGenerateGraphs -> h.svc.GenerateCharts -> %w", err)
		}
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, set)
}
