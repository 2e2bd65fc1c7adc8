package auth

import "time"

// Token is a signed operator access token.
type Token struct {
	AccessToken string
	ExpiresAt   time.Time
}

// OperatorClaims describes the validated identity extracted from an access token.
type OperatorClaims struct {
	Email     string
	ExpiresAt time.Time
	IssuedAt  time.Time
}
