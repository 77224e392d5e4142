package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

func (c *Controller) GetDashboard(ctx echo.Context) error {
	dealerID := ctx.QueryParams().Get("dealer_id")
	if dealerID == "" {
		dealerID, _ = ctx.Get(constants.CtxKeyDealerID).(string)
	}
	if dealerID == "" {
		return constants.NewCodedError("dealer_id is required", http.StatusBadRequest)
	}

	var from, to *string
	if v := ctx.QueryParams().Get("from"); v != "" {
		from = &v
	}
	if v := ctx.QueryParams().Get("to"); v != "" {
		to = &v
	}

	data, err := c.dashboardService.GetDashboard(ctx.Request().Context(), dealerID, from, to)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, data)
}
