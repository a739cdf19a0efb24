package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DisplayClaims are read from the token payload without checking its signature.
// They are for display only; authorization stays with the backend.
type DisplayClaims struct {
	Subject   string    `json:"subject,omitempty"`
	Email     string    `json:"email,omitempty"`
	Name      string    `json:"name,omitempty"`
	Role      string    `json:"role,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
}

// DecodeDisplayClaims returns ok=false for tokens that are not JWTs.
func DecodeDisplayClaims(token string) (DisplayClaims, bool) {
	if token == "" {
		return DisplayClaims{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return DisplayClaims{}, false
	}
	var out DisplayClaims
	out.Subject, _ = claims.GetSubject()
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		out.ExpiresAt = exp.UTC()
	}
	out.Email = stringClaim(claims, "email")
	out.Name = stringClaim(claims, "name")
	out.Role = stringClaim(claims, "role")
	return out, true
}

// Expired is false when the token carries no expiry.
func (c DisplayClaims) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && now.After(c.ExpiresAt)
}

func stringClaim(claims jwt.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return v
	}
	return ""
}
