package controller

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

func (c *Controller) SignupUser(ctx echo.Context) error {
	request := new(domain.SignupUserRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	resp, err := c.authService.SignupUser(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	setAuthCookie(ctx, resp.AuthToken)
	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) LoginUser(ctx echo.Context) error {
	request := new(domain.LoginUserRequest)
	if err := ctx.Bind(request); err != nil {
		return err
	}
	if err := ctx.Validate(request); err != nil {
		return err
	}

	resp, err := c.authService.LoginUser(ctx.Request().Context(), request)
	if err != nil {
		return err
	}

	setAuthCookie(ctx, resp.AuthToken)
	return ctx.JSON(http.StatusOK, resp)
}

func (c *Controller) LogoutUser(ctx echo.Context) error {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeyAuthToken,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
	})

	return ctx.NoContent(http.StatusNoContent)
}

func setAuthCookie(ctx echo.Context, token string) {
	ctx.SetCookie(&http.Cookie{
		Name:     constants.CookieKeyAuthToken,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
}
