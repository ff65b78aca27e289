package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrReferenceNotFound indicates that a reference field named an entity that
// does not exist.
var ErrReferenceNotFound = errors.New("referenced resource not found")

// ErrUnsupportedFilter indicates that a filter touched a field that cannot be
// pushed to storage as an equality predicate (versioned, derived or
// many-to-many fields).
var ErrUnsupportedFilter = errors.New("unsupported filter field")

// ErrInvariantViolation indicates that more than one active version record
// exists for a parent. It points at a bug or a concurrent-write race and must
// abort the enclosing transaction.
var ErrInvariantViolation = errors.New("active version invariant violated")
