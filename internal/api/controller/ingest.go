package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

type ingestRecordsRequest struct {
	DealerID string             `json:"dealer_id" validate:"required"`
	Records  []domain.RawRecord `json:"records" validate:"required"`
}

type ingestRecordsResponse struct {
	Batch   *domain.BatchParserResult `json:"batch"`
	SyncLog *domain.SyncLog           `json:"sync_log"`
}

func (c *Controller) IngestRecords(ctx echo.Context) error {
	request := new(ingestRecordsRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	batch, syncLog, err := c.ingestService.IngestBatch(ctx.Request().Context(), request.DealerID, request.Records)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, ingestRecordsResponse{Batch: batch, SyncLog: syncLog})
}

func (c *Controller) RunSync(ctx echo.Context) error {
	dealerID, _ := ctx.Get(constants.CtxKeyDealerID).(string)
	if dealerID == "" {
		dealerID = ctx.QueryParams().Get("dealer_id")
	}
	if dealerID == "" {
		return constants.NewCodedError("dealer_id is required", http.StatusBadRequest)
	}

	cfg, err := c.dealerService.GetSyncConfig(ctx.Request().Context(), dealerID)
	if err != nil {
		return err
	}
	if !cfg.Enabled {
		return constants.NewCodedError("sync is disabled for this dealer", http.StatusConflict)
	}

	syncLog, err := c.ingestService.RunSync(ctx.Request().Context(), cfg)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, syncLog)
}
