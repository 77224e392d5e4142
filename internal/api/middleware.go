package api

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/random"
	"github.com/spf13/viper"

	"github.com/TITANForecast/frontend-sub000/internal/domain"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
	"github.com/TITANForecast/frontend-sub000/internal/pkg/utils"
)

func (svc *APIService) AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeyAuthToken)
		if err != nil {
			return constants.ErrMissingAuthCookie
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if status, err := svc.store.GetUserStatus(ctx.Request().Context(), token.UserID); err != nil {
			return err
		} else if status != string(domain.UserStatusApproved) {
			return constants.ErrUnauthorized
		}

		ctx.Set(constants.CtxKeyUserID, token.UserID)
		ctx.Set(constants.CtxKeyDealerID, token.DealerID)

		return next(ctx)
	}
}

func (svc *APIService) AdminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		cookie, err := ctx.Cookie(constants.CookieKeySecretToken)
		if err != nil {
			return constants.ErrUnauthorized
		}

		token, err := utils.ParseAuthToken(cookie.Value)
		if err != nil {
			return err
		}

		if token.Secret != viper.GetString(constants.ViperSecretKey) {
			return constants.ErrUnauthorized
		}

		return next(ctx)
	}
}

// RequestIDMiddleware stamps every request with a random id for log
// correlation.
func RequestIDMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		id := ctx.Request().Header.Get(echo.HeaderXRequestID)
		if id == "" {
			id = random.String(16)
		}
		ctx.Response().Header().Set(echo.HeaderXRequestID, id)

		return next(ctx)
	}
}
