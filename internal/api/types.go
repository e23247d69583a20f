package api

// UnauthorizedResponse is the flat envelope returned by the auth middleware's
// 401. It is intentionally a different shape from ErrorResponse.
type UnauthorizedResponse struct {
	Error string `json:"error"`
}
