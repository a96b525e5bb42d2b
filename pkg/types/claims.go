package types

import "github.com/golang-jwt/jwt/v5"

type Claims struct {
	UserID    uint   `json:"user_id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CanReview bool   `json:"can_review"`
	jwt.RegisteredClaims
}
