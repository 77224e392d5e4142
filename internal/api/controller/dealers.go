package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
)

func (c *Controller) CreateDealer(ctx echo.Context) error {
	request := new(domain.CreateDealerRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	dealer, err := c.dealerService.CreateDealer(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dealer)
}

func (c *Controller) ListDealers(ctx echo.Context) error {
	dealers, err := c.dealerService.ListDealers(ctx.Request().Context())
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dealers)
}

func (c *Controller) GetDealer(ctx echo.Context) error {
	dealer, err := c.dealerService.GetDealer(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, dealer)
}

func (c *Controller) UpsertSyncConfig(ctx echo.Context) error {
	request := new(domain.UpsertSyncConfigRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	request.DealerID = ctx.Param("id")
	if err := ctx.Validate(request); err != nil {
		return err
	}

	cfg, err := c.dealerService.UpsertSyncConfig(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, cfg)
}

func (c *Controller) GetSyncConfig(ctx echo.Context) error {
	cfg, err := c.dealerService.GetSyncConfig(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, cfg)
}

func (c *Controller) ListSyncLogs(ctx echo.Context) error {
	limit, err := strconv.ParseUint(ctx.QueryParams().Get("limit"), 10, 64)
	if err != nil {
		limit = 0
	}

	logs, err := c.dealerService.ListSyncLogs(ctx.Request().Context(), ctx.Param("id"), limit)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, logs)
}
