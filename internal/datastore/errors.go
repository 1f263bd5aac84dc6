package datastore

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrInvalidRole         = errors.New("invalid role")
	ErrCapacityReached     = errors.New("capacity reached")
	ErrDuplicateSubmission = errors.New("exam already submitted by this student")
)
