package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/turnero/internal/domain"
	"github.com/ougirez/turnero/internal/service/bulk"
)

type bulkRequest struct {
	Field      string  `json:"field" validate:"required"`
	Value      *int    `json:"value" validate:"required"`
	TemplateID *int64  `json:"id_plantilla"`
	LeadDays   *int    `json:"dias_antes"`
	IDs        []int64 `json:"ids"`
}

func (c *Controller) BulkToggle(ctx echo.Context) error {
	var req bulkRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	opts := bulk.Options{
		TemplateID: req.TemplateID,
		LeadDays:   req.LeadDays,
	}

	report, err := c.service.BulkToggle(ctx.Request().Context(), ctx.Param("id"), domain.Flag(req.Field), *req.Value, req.IDs, opts)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, report)
}
