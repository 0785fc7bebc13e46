package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessExpiresSoon reports whether the access token expires within the
// given skew window. The token is parsed without signature verification;
// the client only reads its own token's exp claim. Tokens that cannot be
// parsed report false; the 401 path still covers them.
func AccessExpiresSoon(token string, skew time.Duration) bool {
	parser := jwt.NewParser(jwt.WithoutClaimsValidation())
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Until(exp.Time) < skew
}
