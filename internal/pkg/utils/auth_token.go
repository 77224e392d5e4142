package utils

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/spf13/viper"

	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

// AuthTokenWrapper is the claim set carried in auth cookies. Secret is only
// populated for admin tokens.
type AuthTokenWrapper struct {
	UserID   int64  `json:"user_id"`
	DealerID string `json:"dealer_id"`
	Secret   string `json:"secret,omitempty"`
	jwt.StandardClaims
}

func GenerateAuthToken(wrapper *AuthTokenWrapper) (string, error) {
	ttl := viper.GetInt(constants.ViperTokenTTLHours)
	if ttl == 0 {
		ttl = 24
	}
	wrapper.ExpiresAt = time.Now().Add(time.Duration(ttl) * time.Hour).Unix()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, wrapper)
	signed, err := token.SignedString([]byte(viper.GetString(constants.ViperSecretKey)))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

func ParseAuthToken(raw string) (*AuthTokenWrapper, error) {
	wrapper := &AuthTokenWrapper{}
	_, err := jwt.ParseWithClaims(raw, wrapper, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(viper.GetString(constants.ViperSecretKey)), nil
	})
	if err != nil {
		return nil, constants.ErrUnauthorized
	}

	return wrapper, nil
}
