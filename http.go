package auth

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
)

// ResponseMeta carries the human readable outcome of a request.
type ResponseMeta struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// ResponseEnvelope is the JSON shape for every auth endpoint.
type ResponseEnvelope struct {
	Meta ResponseMeta `json:"meta"`
	Data any          `json:"data,omitempty"`
}

// Success writes a 200 envelope.
func Success(c *fiber.Ctx, data any, message string) error {
	return c.Status(fiber.StatusOK).JSON(ResponseEnvelope{
		Meta: ResponseMeta{Code: fiber.StatusOK, Message: message},
		Data: data,
	})
}

// RespondError maps the error taxonomy onto an HTTP status and writes the
// envelope. Only the taxonomy kind and its message leak to the caller; store
// internals never do.
func RespondError(c *fiber.Ctx, err error, message string) error {
	status := fiber.StatusInternalServerError
	data := any(nil)

	var rich *goerrors.Error
	if goerrors.As(err, &rich) {
		status = statusFromError(rich)
		if rich.Category == goerrors.CategoryValidation {
			if fields := FormatValidationErrorToMap(err); len(fields) > 0 {
				data = fields
			}
		}
		if rich.Message != "" {
			message = rich.Message
		}
	}

	return c.Status(status).JSON(ResponseEnvelope{
		Meta: ResponseMeta{Code: status, Message: message},
		Data: data,
	})
}

func statusFromError(rich *goerrors.Error) int {
	if rich.Code > 0 {
		return int(rich.Code)
	}

	switch rich.Category {
	case goerrors.CategoryValidation, goerrors.CategoryBadInput:
		return fiber.StatusBadRequest
	case goerrors.CategoryAuth:
		return fiber.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return fiber.StatusForbidden
	case goerrors.CategoryNotFound:
		return fiber.StatusNotFound
	case goerrors.CategoryConflict:
		return fiber.StatusConflict
	case goerrors.CategoryRateLimit:
		return fiber.StatusTooManyRequests
	default:
		return fiber.StatusInternalServerError
	}
}

// FormatValidationErrorToMap flattens ozzo validation errors into a
// field -> message map, unwrapping the rich error envelope if present.
func FormatValidationErrorToMap(err error) map[string]string {
	out := map[string]string{}

	var verrs validation.Errors
	if !goerrors.As(err, &verrs) {
		var rich *goerrors.Error
		if goerrors.As(err, &rich) && rich.Source != nil {
			if ve, ok := rich.Source.(validation.Errors); ok {
				verrs = ve
			}
		}
	}

	for field, ferr := range verrs {
		if ferr != nil {
			out[field] = ferr.Error()
		}
	}

	return out
}
