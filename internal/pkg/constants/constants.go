package constants

const (
	CookieKeyAuthToken   = "titan_auth_token"
	CookieKeySecretToken = "titan_secret_token"

	CtxKeyUserID   = "user_id"
	CtxKeyDealerID = "dealer_id"

	ViperSecretKey     = "auth.secret"
	ViperTokenTTLHours = "auth.token_ttl_hours"
	ViperListenAddr    = "server.addr"
	ViperAllowedOrigin = "server.allowed_origin"
	ViperPostgresDSN   = "postgres.dsn"
)
