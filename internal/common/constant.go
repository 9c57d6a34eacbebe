package common

const (
	// AuthorizationHeaderName carries "Bearer <token>" in header transport mode.
	AuthorizationHeaderName = "Authorization"

	// DefaultAuthCookieName is the cookie that carries the token in cookie transport mode.
	DefaultAuthCookieName = "authToken"
)
