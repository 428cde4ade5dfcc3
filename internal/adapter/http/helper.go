package http

import (
	"net/http"
	"strconv"
	"strings"

	"farmfund-backend/internal/adapter/middleware"
	"farmfund-backend/internal/domain/identity"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

func actor(c echo.Context) (identity.Actor, error) {
	a, found := middleware.ActorFrom(c)
	if !found {
		return identity.Actor{}, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	return a, nil
}

// bindValid binds the body and runs the validator. The returned error has
// already been written to the response.
func bindValid(c echo.Context, req any) (bool, error) {
	if err := c.Bind(req); err != nil {
		return false, badRequest(c, "invalid body")
	}
	if err := c.Validate(req); err != nil {
		return false, invalid(c, err)
	}
	return true, nil
}

func money(f float64) decimal.Decimal { return decimal.NewFromFloat(f).Round(2) }

func moneyPtr(f *float64) *decimal.Decimal {
	if f == nil {
		return nil
	}
	d := money(*f)
	return &d
}

// queryList accepts both repeated and comma separated values.
func queryList(c echo.Context, name string) []string {
	var out []string
	for _, raw := range c.QueryParams()[name] {
		for _, v := range strings.Split(raw, ",") {
			if v = strings.TrimSpace(v); v != "" {
				out = append(out, v)
			}
		}
	}
	return out
}

func queryDecimal(c echo.Context, name string) (*decimal.Decimal, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return nil, true
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func queryInt(c echo.Context, name string) (int, bool) {
	raw := strings.TrimSpace(c.QueryParam(name))
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	return n, err == nil
}
