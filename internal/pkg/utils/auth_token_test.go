package utils

import (
	"testing"

	"github.com/spf13/viper"

	"github.com/TITANForecast/frontend-sub000/internal/pkg/constants"
)

func TestAuthTokenRoundTrip(t *testing.T) {
	viper.Set(constants.ViperSecretKey, "test-secret")

	token, err := GenerateAuthToken(&AuthTokenWrapper{UserID: 7, DealerID: "D123"})
	if err != nil {
		t.Fatalf("GenerateAuthToken: %v", err)
	}

	parsed, err := ParseAuthToken(token)
	if err != nil {
		t.Fatalf("ParseAuthToken: %v", err)
	}
	if parsed.UserID != 7 || parsed.DealerID != "D123" {
		t.Errorf("claims = %+v, want user 7 dealer D123", parsed)
	}
}

func TestParseAuthTokenRejectsGarbage(t *testing.T) {
	viper.Set(constants.ViperSecretKey, "test-secret")

	if _, err := ParseAuthToken("not-a-token"); err == nil {
		t.Error("want an error for a malformed token")
	}
}
