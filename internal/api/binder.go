package api

import (
	"io"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/labstack/echo/v4"

	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

// Binder decodes JSON bodies with sonic and falls back to echo's default
// binder for path/query parameters.
type Binder struct {
	fallback echo.DefaultBinder
}

func NewBinder() *Binder {
	return &Binder{}
}

func (b *Binder) Bind(i interface{}, c echo.Context) error {
	req := c.Request()
	if req.ContentLength != 0 && req.Header.Get(echo.HeaderContentType) == echo.MIMEApplicationJSON {
		body, err := io.ReadAll(req.Body)
		if err != nil {
			return constants.NewCodedError("failed to read request body", http.StatusBadRequest)
		}
		if err := sonic.Unmarshal(body, i); err != nil {
			return constants.NewCodedError("malformed json body", http.StatusBadRequest)
		}
		return b.fallback.BindPathParams(c, i)
	}

	return b.fallback.Bind(i, c)
}
