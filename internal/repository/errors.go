package repository

import "errors"

// Sentinels returned by repository operations. Callers classify with
// errors.Is; wrapped store errors keep their chain.
var (
	// ErrAlreadyExists indicates the username is already registered.
	ErrAlreadyExists = errors.New("username already exists")

	// ErrAuthFailure indicates an unknown user or a wrong credential.
	// Deliberately one sentinel for both so callers cannot probe which
	// usernames exist.
	ErrAuthFailure = errors.New("invalid username or password")

	// ErrNotFound indicates an unknown username.
	ErrNotFound = errors.New("user not found")

	// ErrItemNotFound indicates the clothing item id is absent from the
	// user's collection.
	ErrItemNotFound = errors.New("clothing item not found")

	// ErrOutfitNotFound indicates the outfit id is absent from the user's
	// collection.
	ErrOutfitNotFound = errors.New("outfit not found")

	// ErrInvalidArgument indicates a malformed input, e.g. an outfit whose
	// DateAdded does not parse.
	ErrInvalidArgument = errors.New("invalid argument")
)
