package controller

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

func (c *Controller) GetCatalog(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, c.service.Catalog())
}

func (c *Controller) GetTemplates(ctx echo.Context) error {
	typeID, err := strconv.ParseInt(ctx.QueryParams().Get("tipo"), 10, 64)
	if err != nil {
		typeID = 0
	}

	templates, err := c.service.Templates(ctx.Request().Context(), typeID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, templates)
}

func (c *Controller) GetReferrals(ctx echo.Context) error {
	providerID, err := strconv.ParseInt(ctx.QueryParams().Get("id_efector"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id_efector is required")
	}

	referrals, err := c.service.Referrals(ctx.Request().Context(), providerID)
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, referrals)
}
