package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

type Handler struct {
	service string
	started time.Time
}

func NewHandler(service string) *Handler {
	return &Handler{service: service, started: time.Now().UTC()}
}

type healthResp struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Time    string `json:"time"`
	Uptime  string `json:"uptime"`
}

func (h *Handler) Health(c echo.Context) error {
	now := time.Now().UTC()
	return c.JSON(http.StatusOK, healthResp{
		Status:  "ok",
		Service: h.service,
		Time:    now.Format(time.RFC3339Nano),
		Uptime:  now.Sub(h.started).Truncate(time.Second).String(),
	})
}
