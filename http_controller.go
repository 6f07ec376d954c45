package identity

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-print"
	"github.com/goliatone/go-router"
)

// AuthControllerRoutes holds the paths the controller mounts
type AuthControllerRoutes struct {
	Login    string
	Register string
	Me       string
}

// AuthController is the JSON transport over the identity service. It maps
// Failure outcomes to 400/401 responses and Success to a 200 carrying the
// token and a redacted user representation.
type AuthController struct {
	Debug        bool
	Logger       Logger
	Auther       Authenticator
	Tokens       TokenService
	Routes       *AuthControllerRoutes
	ErrorHandler router.ErrorHandler
}

type AuthControllerOption func(*AuthController) *AuthController

func WithControllerAuthenticator(auther Authenticator) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Auther = auther
		return c
	}
}

func WithControllerTokenService(tokens TokenService) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Tokens = tokens
		return c
	}
}

func WithControllerLogger(logger Logger) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Logger = logger
		return c
	}
}

func WithControllerDebug(debug bool) AuthControllerOption {
	return func(c *AuthController) *AuthController {
		c.Debug = debug
		return c
	}
}

func NewAuthController(opts ...AuthControllerOption) *AuthController {
	c := &AuthController{
		Logger:       defLogger{},
		ErrorHandler: defaultErrHandler,
		Routes: &AuthControllerRoutes{
			Login:    "/auth/login",
			Register: "/auth/register",
			Me:       "/auth/me",
		},
	}

	for _, opt := range opts {
		c = opt(c)
	}

	if c.Auther == nil {
		panic("Missing Authenticator in auth controller...")
	}

	if c.Tokens == nil {
		panic("Missing TokenService in auth controller...")
	}

	return c
}

// RegisterAuthRoutes mounts the register, login and me endpoints; the
// protected middleware guards the me route.
func RegisterAuthRoutes[T any](app router.Router[T], protected router.MiddlewareFunc, opts ...AuthControllerOption) {
	controller := NewAuthController(opts...)

	app.Post(controller.Routes.Register, controller.RegisterPost).
		SetName("auth.register")

	app.Post(controller.Routes.Login, controller.LoginPost).
		SetName("auth.login")

	app.Get(controller.Routes.Me, protected(controller.Me)).
		SetName("auth.me")
}

// UserDTO is the redacted wire representation of a user. It never carries
// the password hash.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// AuthResponse is returned by both register and login on success
type AuthResponse struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

type errorResponse struct {
	Message string `json:"message"`
}

func redactUser(user *User) UserDTO {
	return UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
}

// RegisterRequest payload
type RegisterRequest struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r RegisterRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.FirstName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.LastName, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Password, validation.Required, validation.Length(8, 100)),
	)
}

// LoginRequest payload
type LoginRequest struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

// Validate will run validation rules
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
		validation.Field(&r.Password, validation.Required),
	)
}

func (a *AuthController) RegisterPost(ctx router.Context) error {
	payload := new(RegisterRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	if a.Debug {
		// Never dump the payload itself here, it carries the plaintext password.
		a.Logger.Debug("register request", "email", payload.Email)
	}

	outcome, err := a.Auther.Register(ctx.Context(), RegisterInput{
		Email:     payload.Email,
		Password:  payload.Password,
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
	})
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if !outcome.OK() {
		return ctx.JSON(router.StatusBadRequest, errorResponse{Message: string(outcome.Reason())})
	}

	return a.respondWithToken(ctx, outcome.User())
}

func (a *AuthController) LoginPost(ctx router.Context) error {
	payload := new(LoginRequest)

	if err := ctx.Bind(payload); err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if err := payload.Validate(); err != nil {
		return ctx.JSON(router.StatusBadRequest, errorResponse{Message: err.Error()})
	}

	outcome, err := a.Auther.Login(ctx.Context(), payload.Email, payload.Password)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	if !outcome.OK() {
		return ctx.JSON(router.StatusUnauthorized, errorResponse{Message: string(outcome.Reason())})
	}

	return a.respondWithToken(ctx, outcome.User())
}

// Me resolves the verified token subject to the current user. The subject
// is read from the claims the verification middleware stashed in the
// request context and handed over as a plain value.
func (a *AuthController) Me(ctx router.Context) error {
	subject := SubjectFromContext(ctx)

	user, err := a.Auther.CurrentUser(ctx.Context(), subject)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return ctx.JSON(router.StatusUnauthorized, errorResponse{Message: "unauthenticated"})
		}
		if errors.Is(err, ErrIdentityNotFound) {
			return ctx.JSON(router.StatusNotFound, errorResponse{Message: "identity not found"})
		}
		return a.ErrorHandler(ctx, err)
	}

	return ctx.JSON(router.StatusOK, redactUser(user))
}

func (a *AuthController) respondWithToken(ctx router.Context, user *User) error {
	token, err := a.Tokens.Issue(user)
	if err != nil {
		return a.ErrorHandler(ctx, err)
	}

	response := AuthResponse{
		Token: token,
		User:  redactUser(user),
	}

	if a.Debug {
		a.Logger.Debug("auth response", "body", print.MaybePrettyJSON(response.User))
	}

	return ctx.JSON(router.StatusOK, response)
}

func defaultErrHandler(c router.Context, err error) error {
	var richErr *errors.Error
	if !errors.As(err, &richErr) {
		richErr = errors.Wrap(err, errors.CategoryInternal, "An unexpected server error occurred").
			WithCode(errors.CodeInternal)
	}

	switch richErr.Category {
	case errors.CategoryAuth, errors.CategoryAuthz:
		return c.JSON(router.StatusUnauthorized, errorResponse{Message: richErr.Message})
	case errors.CategoryValidation, errors.CategoryBadInput:
		return c.JSON(router.StatusBadRequest, errorResponse{Message: richErr.Message})
	case errors.CategoryConflict:
		return c.JSON(router.StatusConflict, errorResponse{Message: richErr.Message})
	default:
		return c.JSON(router.StatusInternalServerError, errorResponse{Message: "internal server error"})
	}
}

// NewServer returns a fiber backed router server with default options
func NewServer() router.Server[*fiber.App] {
	return router.NewFiberAdapter(func(a *fiber.App) *fiber.App {
		return router.DefaultFiberOptions(fiber.New(fiber.Config{
			AppName: "go-identity",
		}))
	})
}
