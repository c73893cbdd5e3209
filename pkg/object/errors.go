package object

import (
	"errors"
	"fmt"
)

// MinPrefixLen is the shortest abbreviated hash a prefix lookup accepts.
const MinPrefixLen = 4

var (
	// ErrNotFound reports that no stored object matches a hash or prefix.
	ErrNotFound = errors.New("object not found")

	// ErrAmbiguous reports that a prefix matches more than one stored object.
	ErrAmbiguous = errors.New("ambiguous object prefix")

	// ErrPrefixTooShort is returned for prefixes below MinPrefixLen. It is a
	// not-found class error: errors.Is(err, ErrNotFound) holds.
	ErrPrefixTooShort = fmt.Errorf("%w: prefix shorter than %d characters", ErrNotFound, MinPrefixLen)
)
