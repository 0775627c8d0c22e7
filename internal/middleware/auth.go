package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/BruksfildServices01/barber-queue/internal/models"
)

const (
	// ContextUserID carries the barber id, which is also the tenant key.
	ContextUserID       = "userID"
	ContextBarbershopID = "barbershopID"
	ContextUserRole     = "userRole"

	tokenTTL = 24 * time.Hour
)

var errBadToken = errors.New("invalid token")

type Claims struct {
	BarbershopID uint   `json:"barbershopId"`
	Role         string `json:"role"`
	jwt.RegisteredClaims
}

func IssueToken(secret string, user *models.User, now time.Time) (string, error) {
	claims := Claims{
		BarbershopID: user.BarbershopID,
		Role:         user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(user.ID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseToken validates raw and returns the barber id it was issued for.
func ParseToken(secret, raw string) (uint, *Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenMalformed
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return 0, nil, errBadToken
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return 0, nil, errBadToken
	}
	return uint(id), claims, nil
}

func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := bearer(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_authorization_header"})
			return
		}

		userID, claims, err := ParseToken(secret, raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(ContextUserID, userID)
		c.Set(ContextBarbershopID, claims.BarbershopID)
		c.Set(ContextUserRole, claims.Role)

		c.Next()
	}
}

// bearer reads the Authorization header. Browsers can't set headers on a
// websocket handshake, so ?token= is accepted there.
func bearer(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		if c.IsWebsocket() {
			if t := c.Query("token"); t != "" {
				return t, true
			}
		}
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
