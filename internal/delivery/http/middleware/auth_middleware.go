package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"meup-backend/internal/delivery/http/response"
	"meup-backend/internal/domain"
)

// AuthMiddleware validates the HS256 session token and loads the fresh
// profile, so role changes and suspensions take effect immediately instead
// of waiting for token expiry.
func AuthMiddleware(jwtSecret string, authUC domain.AuthUsecase) gin.HandlerFunc {
	secret := []byte(jwtSecret)
	return func(c *gin.Context) {
		var tokenString string

		if authHeader := c.GetHeader("Authorization"); authHeader != "" {
			tokenString = strings.TrimPrefix(authHeader, "Bearer ")
		} else if cookie, err := c.Cookie("auth_token"); err == nil && cookie != "" {
			tokenString = cookie
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return secret, nil
		})
		if err != nil || !token.Valid {
			response.Error(c, http.StatusUnauthorized, "Invalid token", nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "Invalid claims", nil)
			c.Abort()
			return
		}
		sub, _ := claims["sub"].(string)

		user, err := authUC.GetCurrentUser(c.Request.Context(), sub)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "User not found", nil)
			c.Abort()
			return
		}
		if user.IsSuspended {
			response.Error(c, http.StatusForbidden, "Account suspended", nil)
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), user.ID)
		c.Set(string(domain.KeyUserEmail), user.Email)
		c.Set(string(domain.KeyUserRole), user.Role)
		c.Next()
	}
}
