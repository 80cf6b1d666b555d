package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/vinom-backrooms/service/i"
	"github.com/dgrijalva/jwt-go"
)

var (
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnexpectedSigning    = errors.New("unexpected signing method")
	ErrIssuerMismatch       = errors.New("token issuer mismatch")
	errReservedClaimChanged = errors.New("reserved claim cannot be overridden")
)

// JwtService signs and verifies the HS256 access tokens handed to designers.
type JwtService struct {
	secretKey string
	issuer    string
}

var _ i.Tokenizer = &JwtService{}

// NewJwtService creates a JwtService that signs with secretKey and stamps issuer on
// every token.
func NewJwtService(secretKey, issuer string) *JwtService {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Generate creates a token carrying claims that expires after expTime.
func (s *JwtService) Generate(claims map[string]interface{}, expTime time.Duration) (string, error) {
	now := time.Now().UTC()
	jwtClaims := jwt.MapClaims{
		"exp": now.Add(expTime).Unix(),
		"iat": now.Unix(),
		"iss": s.issuer,
	}
	for key, val := range claims {
		if _, reserved := jwtClaims[key]; reserved {
			return "", errReservedClaimChanged
		}
		jwtClaims[key] = val
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Decode validates the token signature, expiry and issuer and returns its claims.
func (s *JwtService) Decode(tokenString string) (map[string]interface{}, error) {
	token, err := jwt.Parse(tokenString, s.signingKey)
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if s.issuer != "" && !claims.VerifyIssuer(s.issuer, true) {
		return nil, ErrIssuerMismatch
	}
	return claims, nil
}

func (s *JwtService) signingKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, ErrUnexpectedSigning
	}
	return []byte(s.secretKey), nil
}
