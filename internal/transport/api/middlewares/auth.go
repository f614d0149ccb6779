package middlewares

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/fsdevblog/groph-crm/internal/service/tokens"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

var ErrTokenNotExist = errors.New("token not exist")

const (
	CurrentUserIDKey   = "currentUserID"
	CurrentRoleIDKey   = "currentRoleID"
	CurrentRoleNameKey = "currentRoleName"
)

// PermissionChecker интерфейс сервиса разрешений для middleware RequirePermission.
type PermissionChecker interface {
	HasPermission(ctx context.Context, roleID int64, roleName string, requiredCodes ...string) (bool, error)
}

// checkAuthorization извлекает токен из заголовка Authorization и проверяет его.
// Если токен не передан, вернется ошибка ErrTokenNotExist.
func checkAuthorization(c *gin.Context, jwtTokenSecret []byte) (*jwt.Token, error) {
	tokenHeader := c.GetHeader("Authorization")
	bearer := "Bearer "

	if len(tokenHeader) < len(bearer) || tokenHeader[:len(bearer)] != bearer {
		return nil, ErrTokenNotExist
	}

	tokenStr := tokenHeader[len(bearer):]
	token, err := tokens.ValidateUserJWT(tokenStr, jwtTokenSecret)
	if err != nil {
		return nil, fmt.Errorf("check authorization: %w", err)
	}
	return token, nil
}

// AuthRequired проверяет, что запрос авторизован. Записывает в контекст id юзера
// и его роль (CurrentUserIDKey, CurrentRoleIDKey, CurrentRoleNameKey).
func AuthRequired(jwtTokenSecret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := checkAuthorization(c, jwtTokenSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			if !errors.Is(err, ErrTokenNotExist) {
				_ = c.Error(err).SetType(gin.ErrorTypePrivate)
			}
			return
		}
		userClaim, ok := token.Claims.(*tokens.UserClaims)
		if !ok {
			_ = c.AbortWithError(http.StatusInternalServerError, errors.New("invalid jwt claims type")).
				SetType(gin.ErrorTypePrivate)
			return
		}
		c.Set(CurrentUserIDKey, userClaim.ID)
		c.Set(CurrentRoleIDKey, userClaim.RoleID)
		c.Set(CurrentRoleNameKey, userClaim.RoleName)
		c.Next()
	}
}

// RequirePermission пропускает запрос, только если роль текущего юзера владеет
// хотя бы одним из требуемых кодов разрешений. Ставится после AuthRequired.
func RequirePermission(perms PermissionChecker, requiredCodes ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleID := c.GetInt64(CurrentRoleIDKey)
		roleName := c.GetString(CurrentRoleNameKey)

		ok, err := perms.HasPermission(c, roleID, roleName, requiredCodes...)
		if err != nil {
			_ = c.AbortWithError(http.StatusInternalServerError, err).
				SetType(gin.ErrorTypePrivate)
			return
		}
		if !ok {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"error": "you do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}
