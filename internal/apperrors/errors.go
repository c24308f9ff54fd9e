package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the caller is not allowed to perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrRender indicates that document layout failed while drawing.
var ErrRender = errors.New("render error")

// ErrEnvironment indicates that rich rendering is unavailable in the current environment.
var ErrEnvironment = errors.New("rendering environment unavailable")
