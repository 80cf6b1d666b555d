package i

import (
	"time"
)

// Tokenizer signs and verifies the access tokens handed to designers.
type Tokenizer interface {
	// Generate signs claims into a token valid for expTime.
	Generate(claims map[string]interface{}, expTime time.Duration) (string, error)

	// Decode returns the claims of a valid token. Expired, tampered and foreign tokens are errors.
	Decode(token string) (map[string]interface{}, error)
}
