package auth

import (
	"fmt"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/kultura-id/go-auth/middleware/jwtware"
)

// AuthControllerRoutes are the mounted paths.
type AuthControllerRoutes struct {
	Register   string
	Login      string
	Me         string
	Activation string
}

// AuthController exposes the JSON inbound surface: register, login, me,
// and activation. Transport stays thin; all failure semantics live in the
// handlers and the authenticator.
type AuthController struct {
	Debug  bool
	Logger Logger
	Store  Users
	Auther Authenticator
	Config Config
	Routes *AuthControllerRoutes

	register   *RegisterUserHandler
	activation *AccountActivationHandler
}

// AuthControllerOption configures the controller.
type AuthControllerOption func(*AuthController) *AuthController

// WithControllerStore sets the account store.
func WithControllerStore(store Users) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Store = store
		return c
	}
}

// WithControllerAuther sets the authenticator.
func WithControllerAuther(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

// WithControllerConfig sets the auth configuration.
func WithControllerConfig(cfg Config) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Config = cfg
		return c
	}
}

// WithControllerLogger sets the logger.
func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

// WithControllerDebug toggles payload debug printing.
func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

// NewAuthController builds the controller and its command handlers.
func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger: defLogger{},
		Routes: &AuthControllerRoutes{
			Register:   "/auth/register",
			Login:      "/auth/login",
			Me:         "/auth/me",
			Activation: "/auth/activation",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Store == nil {
		panic("Missing Users store in auth controller...")
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Config == nil {
		panic("Missing Config in auth controller...")
	}

	c.register = NewRegisterUserHandler(c.Store)
	c.activation = NewAccountActivationHandler(c.Store)

	return c
}

// RegisterAuthRoutes mounts the auth endpoints. The "me" route is wrapped by
// the token-resolving middleware so the handler only ever sees verified claims.
func RegisterAuthRoutes(app fiber.Router, controller *AuthController) {
	app.Post(controller.Routes.Register, controller.Register)
	app.Post(controller.Routes.Login, controller.Login)
	app.Get(controller.Routes.Me, controller.Protected(), controller.Me)
	app.Post(controller.Routes.Activation, controller.Activation)
}

// Protected returns the bearer-resolving middleware bound to this
// controller's configuration.
func (a *AuthController) Protected() fiber.Handler {
	validator := TokenValidatorFunc(a.Auther.ClaimsFromToken)
	return ProtectedRoute(a.Config, validator, func(c *fiber.Ctx, err error) error {
		a.Logger.Error("protected route rejected request", "error", err)
		if goerrors.Is(err, jwtware.ErrJWTMissingOrMalformed) {
			err = ErrTokenMalformed
		}
		return RespondError(c, err, "Unauthorized")
	})
}

// Register handles new account creation.
func (a *AuthController) Register(c *fiber.Ctx) error {
	payload := new(RegisterUserMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("register user parse payload", "error", err)
		return RespondError(c, WrapValidationError(err), "Failed registration")
	}

	if a.Debug {
		fmt.Println("======= AUTH REGISTER ===")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	user, err := a.register.Execute(c.UserContext(), *payload)
	if err != nil {
		a.Logger.Error("register user execute", "error", err)
		return RespondError(c, err, "Failed registration")
	}

	return Success(c, user, "Successfully registration!")
}

// LoginRequest payload
type LoginRequest struct {
	Identifier string `form:"identifier" json:"identifier"`
	Password   string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Identifier, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// Login handles credential verification and token issuance.
func (a *AuthController) Login(c *fiber.Ctx) error {
	payload := new(LoginRequest)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("login parse payload", "error", err)
		return RespondError(c, WrapValidationError(err), "Failed login")
	}

	if err := payload.Validate(); err != nil {
		return RespondError(c, WrapValidationError(err), "Failed login")
	}

	if a.Debug {
		fmt.Println("======= AUTH LOGIN ======")
		fmt.Println(print.MaybePrettyJSON(payload))
		fmt.Println("=========================")
	}

	token, err := a.Auther.Login(c.UserContext(), payload.Identifier, payload.Password)
	if err != nil {
		return RespondError(c, err, "Failed login")
	}

	return Success(c, token, "Login successfully")
}

// Me returns the account referenced by the verified claim on the request.
func (a *AuthController) Me(c *fiber.Ctx) error {
	claims, ok := c.Locals(a.Config.GetContextKey()).(AuthClaims)
	if !ok {
		return RespondError(c, ErrUserNotFound, "Failed get user profile")
	}

	user, err := a.Store.GetByID(c.UserContext(), claims.UserID())
	if err != nil {
		a.Logger.Error("me load user", "error", err)
		if goerrors.IsNotFound(err) {
			return RespondError(c, ErrIdentityNotFound, "Failed get user profile")
		}
		return RespondError(c, err, "Failed get user profile")
	}

	return Success(c, user, "Successfully get user profile")
}

// Activation consumes a one-time code and reports the activated account.
func (a *AuthController) Activation(c *fiber.Ctx) error {
	payload := new(AccountActivationMessage)

	if err := c.BodyParser(payload); err != nil {
		a.Logger.Error("activation parse payload", "error", err)
		return RespondError(c, WrapValidationError(err), "Failed to activate account")
	}

	user, err := a.activation.Execute(c.UserContext(), *payload)
	if err != nil {
		return RespondError(c, err, "Failed to activate account")
	}

	return Success(c, user, "Account activated successfully")
}
