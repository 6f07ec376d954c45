package identity

import (
	"context"

	"github.com/goliatone/go-errors"
	"github.com/google/uuid"
)

// UserStore is the narrow persistence port consumed by the service. The
// storage layer must enforce email uniqueness and surface duplicate
// inserts as ErrEmailTaken; see repo_users.go for the bun adapter.
type UserStore interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
	Register(ctx context.Context, user *User) (*User, error)
}

// Auth owns the registration and login state transitions and their
// failure semantics.
type Auth struct {
	store  UserStore
	hasher PasswordHasher
	logger Logger
}

// NewAuth returns a new identity service over the given store
func NewAuth(store UserStore) *Auth {
	return &Auth{
		store:  store,
		hasher: NewPasswordHasher(),
		logger: defLogger{},
	}
}

func (s *Auth) WithLogger(logger Logger) *Auth {
	if logger != nil {
		s.logger = logger
	}
	return s
}

func (s *Auth) WithHasher(hasher PasswordHasher) *Auth {
	if hasher != nil {
		s.hasher = hasher
	}
	return s
}

// Register creates a new identity. A duplicate email yields the
// ReasonEmailTaken failure whether the pre-check catches it or the insert
// loses the uniqueness race; the plaintext password is hashed before the
// user record is built and is never stored or logged.
func (s *Auth) Register(ctx context.Context, input RegisterInput) (Outcome, error) {
	taken, err := s.store.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return Outcome{}, errors.Wrap(err, errors.CategoryInternal, "failed to check email availability")
	}

	if taken {
		return Failure(ReasonEmailTaken), nil
	}

	hash, err := s.hasher.HashPassword(input.Password)
	if err != nil {
		return Outcome{}, err
	}

	// Bail out before the insert if the caller already went away; no
	// partial writes after cancellation is observed.
	select {
	case <-ctx.Done():
		return Outcome{}, errors.Wrap(ctx.Err(), errors.CategoryOperation, "context cancelled during registration")
	default:
	}

	user := &User{
		Email:        input.Email,
		PasswordHash: hash,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
	}
	prepareUserDefaults(user)

	created, err := s.store.Register(ctx, user)
	if err != nil {
		if IsDuplicateIdentity(err) {
			s.logger.Debug("registration lost uniqueness race", "email", input.Email)
			return Failure(ReasonEmailTaken), nil
		}
		return Outcome{}, errors.Wrap(err, errors.CategoryInternal, "failed to create user")
	}

	return Success(created), nil
}

// Login verifies the given credentials. The unknown-email and the
// wrong-password branches return the identical failure reason, and the
// unknown-email branch burns a dummy hash comparison so the two are not
// distinguishable by latency.
func (s *Auth) Login(ctx context.Context, email, password string) (Outcome, error) {
	user, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		if errors.IsNotFound(err) {
			DummyCompare(password)
			return Failure(ReasonInvalidCredentials), nil
		}
		return Outcome{}, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user during verification")
	}

	if err := s.hasher.ComparePasswordAndHash(password, user.PasswordHash); err != nil {
		if IsInvalidCredentials(err) {
			return Failure(ReasonInvalidCredentials), nil
		}
		return Outcome{}, errors.Wrap(err, errors.CategoryInternal, "password verification failed")
	}

	return Success(user), nil
}

// GetByID is a pure lookup passthrough; absence is not an error, just an
// empty result.
func (s *Auth) GetByID(ctx context.Context, id string) (*User, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, nil
	}

	user, err := s.store.GetByID(ctx, uid)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, nil
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to retrieve user")
	}

	return user, nil
}

// CurrentUser resolves an externally verified token subject back to a
// user record. A missing or malformed subject is ErrUnauthenticated; a
// well-formed subject with no matching user is ErrIdentityNotFound,
// which callers must keep distinct.
func (s *Auth) CurrentUser(ctx context.Context, subject string) (*User, error) {
	if subject == "" {
		return nil, ErrUnauthenticated
	}

	uid, err := uuid.Parse(subject)
	if err != nil {
		return nil, ErrUnauthenticated
	}

	user, err := s.store.GetByID(ctx, uid)
	if err != nil {
		if errors.IsNotFound(err) {
			return nil, ErrIdentityNotFound
		}
		return nil, errors.Wrap(err, errors.CategoryInternal, "failed to resolve session user")
	}

	if user == nil {
		return nil, ErrIdentityNotFound
	}

	return user, nil
}

var _ Authenticator = (*Auth)(nil)
