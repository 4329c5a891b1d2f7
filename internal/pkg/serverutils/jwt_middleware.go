package serverutils

import (
	"fmt"

	"quicknote-be/internal/repository/contract"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// NewJwtMiddleware authenticates requests. A token is only accepted when
// its signature verifies AND its session record still exists: logout and
// account deletion revoke the record, so an unexpired JWT alone is not
// enough.
func NewJwtMiddleware(secret string, sessions contract.SessionRepository) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get("Authorization")
		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "missing token"))
		}
		tokenStr := authHeader[7:]

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "invalid token"))
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "invalid claims"))
		}

		sid, _ := claims["sid"].(string)
		userId, _ := claims["user_id"].(string)

		session, err := sessions.Find(ctx.Context(), sid)
		if err != nil {
			return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse(fiber.StatusInternalServerError, "session lookup failed"))
		}
		if session == nil || session.UserID.String() != userId {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "session expired or revoked"))
		}

		ctx.Locals("user_id", userId)
		ctx.Locals("session_id", sid)
		return ctx.Next()
	}
}
