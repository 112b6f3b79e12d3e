package controller

import (
	"github.com/ougirez/turnero/internal/service/dashboard"
)

type Controller struct {
	service *dashboard.Service
}

func NewController(service *dashboard.Service) *Controller {
	return &Controller{service: service}
}
