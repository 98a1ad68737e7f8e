package auth

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/kultura-id/go-auth/middleware/jwtware"
)

// ContextEnricherAdapter adapts jwtware.AuthClaims to auth.AuthClaims and
// stores the claims in the standard context for downstream gate usage.
func ContextEnricherAdapter(c context.Context, claims jwtware.AuthClaims) context.Context {
	authClaims, ok := claims.(AuthClaims)
	if !ok {
		return c
	}
	return WithClaimsContext(c, authClaims)
}

type validatorAdapter struct {
	validator TokenValidator
}

func (v validatorAdapter) Validate(tokenString string) (jwtware.AuthClaims, error) {
	claims, err := v.validator.Validate(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// JWTWareValidator bridges an auth.TokenValidator into the middleware's
// validator contract.
func JWTWareValidator(v TokenValidator) jwtware.TokenValidator {
	return validatorAdapter{validator: v}
}

// ProtectedRoute returns the token-resolving middleware: it extracts the
// bearer credential, validates it, and stores the claims under the
// configured context key. Role gating happens separately in RequireRoles.
func ProtectedRoute(cfg Config, validator TokenValidator, errorHandler fiber.ErrorHandler) fiber.Handler {
	return jwtware.New(jwtware.Config{
		ErrorHandler:    errorHandler,
		TokenValidator:  JWTWareValidator(validator),
		AuthScheme:      cfg.GetAuthScheme(),
		ContextKey:      cfg.GetContextKey(),
		TokenLookup:     cfg.GetTokenLookup(),
		ContextEnricher: ContextEnricherAdapter,
	})
}
