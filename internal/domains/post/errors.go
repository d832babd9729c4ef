package post

import "errors"

var (
	ErrPostNotFound = errors.New("post not found")

	// ErrForbidden - the acting author does not own the post
	ErrForbidden = errors.New("not enough permissions")
)
