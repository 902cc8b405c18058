package ports

import "time"

// Claims is the identity carried by a verified session token.
type Claims struct {
	UserID   string
	Username string
}

// TokenVerifier validates session tokens. It is all the auth middleware needs.
type TokenVerifier interface {
	Verify(token string) (*Claims, error)
}

// TokenIssuer issues and validates stateless session tokens.
type TokenIssuer interface {
	TokenVerifier
	Issue(userID, username string) (string, time.Time, error)
}
