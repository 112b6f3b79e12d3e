package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type combinationRequest struct {
	ProviderIDs []int64 `json:"id_efectores" validate:"required,min=1"`
	ServiceIDs  []int64 `json:"id_servicios" validate:"required,min=1"`
}

func (c *Controller) RequestCombinations(ctx echo.Context) error {
	var req combinationRequest
	if err := ctx.Bind(&req); err != nil {
		return err
	}
	if err := ctx.Validate(&req); err != nil {
		return err
	}

	view, err := c.service.RequestCombination(ctx.Request().Context(), ctx.Param("id"), req.ProviderIDs, req.ServiceIDs)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, view)
}
