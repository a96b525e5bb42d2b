package utils

import (
	"errors"
	"strconv"

	"github.com/fundbridge/intake-go/pkg/types"
	"github.com/gin-gonic/gin"
)

var ErrNoClaims = errors.New("no token claims in context")

func GetClaims(c *gin.Context) (*types.Claims, error) {
	value, exists := c.Get("claims")
	if !exists {
		return nil, ErrNoClaims
	}
	claims, ok := value.(*types.Claims)
	if !ok {
		return nil, ErrNoClaims
	}
	return claims, nil
}

func GetUserIDFromContext(c *gin.Context) (uint, error) {
	claims, err := GetClaims(c)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}

func ParseIDParam(c *gin.Context, name string) (uint, error) {
	idStr := c.Param(name)
	id64, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil {
		return 0, errors.New("invalid " + name + " parameter")
	}
	return uint(id64), nil
}
