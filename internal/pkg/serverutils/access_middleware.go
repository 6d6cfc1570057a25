package serverutils

import (
	"context"

	"winetour-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AccessChecker reports whether the user currently holds access to gated
// features. Admins are let through by the checker itself.
type AccessChecker func(ctx context.Context, userId uuid.UUID) (bool, error)

// AccessGateMiddleware guards trip routes behind an active subscription
// window. It runs after JwtMiddleware; an expired or never-selected tier
// yields UNAUTHORIZED without touching the route handler.
func AccessGateMiddleware(check AccessChecker) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := UserIdFromLocals(ctx)
		if err != nil {
			return err
		}

		ok, err := check(ctx.Context(), userId)
		if err != nil {
			return err
		}
		if !ok {
			return apperror.Unauthorized("active subscription required")
		}
		return ctx.Next()
	}
}

// UserIdFromLocals reads the user_id claim JwtMiddleware stored on the
// request context.
func UserIdFromLocals(ctx *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := ctx.Locals("user_id").(string)
	userId, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.Unauthorized("invalid user identity")
	}
	return userId, nil
}
