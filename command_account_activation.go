package auth

import (
	"context"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
)

type AccountActivationMessage struct {
	Code string `json:"code"`
}

func (e AccountActivationMessage) Type() string { return "user.activate" }

// Validate ensures a code was submitted at all.
func (e AccountActivationMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.Code, validation.Required),
	)
}

// AccountActivationHandler consumes one-time activation codes. A matching
// code flips the account to active; an unknown code is a NotFound error, not
// a silent no-op. Codes are not cleared on use, so re-activating with the
// same code succeeds and leaves the account active.
type AccountActivationHandler struct {
	store Users
}

// NewAccountActivationHandler wires the handler to an account store.
func NewAccountActivationHandler(store Users) *AccountActivationHandler {
	return &AccountActivationHandler{store: store}
}

func (h *AccountActivationHandler) Execute(ctx context.Context, event AccountActivationMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during account activation",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *AccountActivationHandler) execute(ctx context.Context, event AccountActivationMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, WrapValidationError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	user, err := h.store.ActivateByCode(ctx, event.Code)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "account activation failed")
	}

	return user, nil
}
