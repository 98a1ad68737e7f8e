package auth

import (
	"context"
	"regexp"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
)

var (
	hasUppercase = regexp.MustCompile(`[A-Z]`)
	hasDigit     = regexp.MustCompile(`[0-9]`)
)

type RegisterUserMessage struct {
	FullName        string `json:"full_name"`
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role,omitempty"`
	UseHashid       bool   `json:"-"`
}

func (e RegisterUserMessage) Type() string { return "user.register" }

// Validate runs every registration rule and reports all violations at once.
func (e RegisterUserMessage) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.FullName, validation.Required),
		validation.Field(&e.Username, validation.Required),
		validation.Field(&e.Email, validation.Required, is.Email),
		validation.Field(&e.Password,
			validation.Required,
			validation.Length(6, 100),
			validation.Match(hasUppercase).Error("must contain at least one uppercase letter"),
			validation.Match(hasDigit).Error("must contain at least one digit"),
		),
		validation.Field(&e.ConfirmPassword,
			validation.By(ValidateStringEquals(e.Password)),
		),
	)
}

// ValidateStringEquals builds an equality rule, used to confirm passwords.
func ValidateStringEquals(str string) validation.RuleFunc {
	return func(value any) error {
		s, _ := value.(string)
		if s != str {
			return goerrors.New("Passwords must match", goerrors.CategoryValidation)
		}
		return nil
	}
}

// RegisterUserHandler creates inactive accounts from validated registrations.
type RegisterUserHandler struct {
	store Users
}

// NewRegisterUserHandler wires the handler to an account store.
func NewRegisterUserHandler(store Users) *RegisterUserHandler {
	return &RegisterUserHandler{store: store}
}

func (h *RegisterUserHandler) Execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	select {
	case <-ctx.Done():
		return nil, goerrors.Wrap(
			ctx.Err(),
			goerrors.CategoryOperation,
			"context cancelled during user registration",
		)
	default:
		return h.execute(ctx, event)
	}
}

func (h *RegisterUserHandler) execute(ctx context.Context, event RegisterUserMessage) (*User, error) {
	if err := event.Validate(); err != nil {
		return nil, WrapValidationError(err)
	}

	ctx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()

	hash, err := HashPassword(event.Password)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, goerrors.Wrap(richErr, goerrors.CategoryValidation, "invalid password provided")
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to hash password")
	}

	role := RoleUser
	if event.Role != "" {
		parsed, ok := ParseRole(event.Role)
		if !ok {
			return nil, WrapValidationError(goerrors.New("unknown role", goerrors.CategoryValidation))
		}
		role = parsed
	}

	user := &User{
		FullName:       event.FullName,
		Username:       event.Username,
		Email:          event.Email,
		PasswordHash:   hash,
		Role:           role,
		IsActive:       false,
		ActivationCode: NewActivationCode(),
	}

	if event.UseHashid {
		if id, err := hashid.NewUUID(event.Email); err == nil {
			user.ID = id
		}
	}

	user, err = h.store.Create(ctx, user)
	if err != nil {
		var richErr *goerrors.Error
		if goerrors.As(err, &richErr) {
			return nil, richErr
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "user registration failed")
	}

	return user, nil
}
