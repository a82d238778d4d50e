package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	"terminal-terrace/exercise-service/internal/dto"
	userModel "terminal-terrace/exercise-service/internal/model/user"
	"terminal-terrace/exercise-service/pkg/response"
)

const (
	principalKey = "principal"
	cookieName   = "access_token"
)

var errNoToken = errors.New("no token provided")

// PrincipalResolver 由令牌解析出已认证用户
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, token string) (*userModel.User, error)
}

// extractToken 优先读取 Authorization: Bearer，其次读取 access_token cookie
func extractToken(c *gin.Context) (string, error) {
	if authHeader := c.GetHeader("Authorization"); authHeader != "" {
		scheme, token, ok := strings.Cut(authHeader, " ")
		if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			return "", errors.New("malformed authorization header")
		}
		return strings.TrimSpace(token), nil
	}

	if token, err := c.Cookie(cookieName); err == nil && token != "" {
		return token, nil
	}
	return "", errNoToken
}

// JWTAuth JWT 认证中间件（必需认证）
func JWTAuth(resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := extractToken(c)
		if err != nil {
			abortUnauthorized(c, err)
			return
		}

		principal, err := resolver.ResolvePrincipal(c.Request.Context(), token)
		if err != nil {
			if response.CodeOf(err) == response.Unauthorized {
				abortUnauthorized(c, err)
				return
			}
			dto.ErrorResponse(c, err)
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// CurrentUser 返回中间件写入的已认证用户
func CurrentUser(c *gin.Context) (*userModel.User, bool) {
	v, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := v.(*userModel.User)
	return principal, ok && principal != nil
}

func abortUnauthorized(c *gin.Context, err error) {
	c.Header("WWW-Authenticate", "Bearer")
	dto.ErrorResponse(c, response.NewBusinessError(
		response.WithErrorCode(response.Unauthorized),
		response.WithErrorMessage("Could not validate credentials"),
		response.WithError(err),
	))
	c.Abort()
}
