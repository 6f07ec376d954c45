package identity

// FailureReason is the user-visible explanation of a failed auth attempt
type FailureReason string

const (
	// ReasonEmailTaken is returned for duplicate registrations, whether the
	// pre-check caught them or the insert lost the uniqueness race.
	ReasonEmailTaken FailureReason = "email already registered"
	// ReasonInvalidCredentials is shared by the unknown-email and the
	// wrong-password login paths.
	ReasonInvalidCredentials FailureReason = "invalid credentials"
)

// Outcome is the tagged result of an authentication attempt: either
// Success carrying the user, or Failure carrying a reason. It is never
// persisted.
type Outcome struct {
	user   *User
	reason FailureReason
}

// Success wraps an authenticated or freshly created user
func Success(user *User) Outcome {
	return Outcome{user: user}
}

// Failure wraps a user-visible failure reason
func Failure(reason FailureReason) Outcome {
	return Outcome{reason: reason}
}

// OK reports whether the attempt succeeded
func (o Outcome) OK() bool {
	return o.user != nil
}

// User returns the authenticated user, nil on failure
func (o Outcome) User() *User {
	return o.user
}

// Reason returns the failure reason, empty on success
func (o Outcome) Reason() FailureReason {
	return o.reason
}
