package ui

import "errors"

var errNoRepositories = errors.New("no repositories to choose from")

// ErrNoRepositories is returned by SelectRepository for an empty list.
var ErrNoRepositories = errNoRepositories
