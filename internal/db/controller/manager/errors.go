package manager

import "errors"

var (
	// ErrIdentityNotFound is returned when no registered account exists for the given email.
	// The prospective manager has to sign up first.
	ErrIdentityNotFound = errors.New("no user found with this email, the manager must first create an account")

	// ErrDuplicateManager is returned when the account is already a manager of the property.
	ErrDuplicateManager = errors.New("user is already a manager of this property")

	// ErrImmutableField is returned when an update tries to change the email or the property of a manager.
	ErrImmutableField = errors.New("field cannot be changed after creation")

	// ErrNameEmpty is returned when a manager name is empty after trimming.
	ErrNameEmpty = errors.New("manager name can not be empty")

	// ErrManagerNotFound is returned when a manager id does not exist within the owner's property.
	ErrManagerNotFound = errors.New("manager not found")

	// ErrDBNil is returned when the database connection is nil.
	ErrDBNil = errors.New("database connection is nil")
)
