package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/turnero/internal/service/relation"
)

type updateSelectionRequest struct {
	Dimension string  `json:"dimension" validate:"required"`
	IDs       []int64 `json:"ids"`
}

func (c *Controller) UpdateSelection(ctx echo.Context) error {
	var req updateSelectionRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	view, err := c.service.SelectionChange(ctx.Request().Context(), ctx.Param("id"), relation.Dimension(req.Dimension), req.IDs)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}
