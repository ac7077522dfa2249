// internal/api/types/response.go
package types

// ErrorResponse is the structured error body returned by every failing
// endpoint.
type ErrorResponse struct {
	Error string `json:"error"`
}

// TokenResponse carries a freshly issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType"`
}
