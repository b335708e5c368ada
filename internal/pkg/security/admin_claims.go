package security

import (
	"github.com/golang-jwt/jwt/v5"
)

// AdminClaims 管理会话 Token 中的业务信息
type AdminClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}
