package gist

import "errors"

var (
	// ErrUnsavedDocument is returned when an operation needs a remote identity but the gist is new.
	ErrUnsavedDocument = errors.New("gist: cannot get an unsaved gist")
	// ErrNoFiles is returned when creating a gist without any file attached.
	ErrNoFiles = errors.New("gist: you must attach at least one file to the gist")
	// ErrAlreadyCreated is returned by Create on a gist that already has an identity.
	ErrAlreadyCreated = errors.New("gist: gist already created")
)
