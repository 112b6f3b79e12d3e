package constants

// viper keys
const (
	ViperListenAddr      = "listen_addr"
	ViperUpstreamBaseURL = "upstream_base_url"
	ViperUpstreamTimeout = "upstream_timeout"
	ViperSecretKey       = "secret"
	ViperCORSOrigin      = "cors_origin"
)

const CookieKeySecretToken = "secret_token"

const CtxKeyUserID = "user_id"
