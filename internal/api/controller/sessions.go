package controller

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/ougirez/turnero/internal/domain"
)

type createSessionResponse struct {
	SessionID string          `json:"session_id"`
	Catalog   *domain.Catalog `json:"catalog"`
}

func (c *Controller) CreateSession(ctx echo.Context) error {
	sess := c.service.CreateSession()

	return ctx.JSON(http.StatusOK, createSessionResponse{
		SessionID: sess.ID,
		Catalog:   c.service.Catalog(),
	})
}

func (c *Controller) GetCounts(ctx echo.Context) error {
	summary, err := c.service.Counts(ctx.Param("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(http.StatusOK, summary)
}
