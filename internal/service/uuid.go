package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// ErrInvalidSubjectID indicates the subject id is not a usable UUID
var ErrInvalidSubjectID = errors.New("invalid subject id")

// ValidateSubjectID checks that id is a non-nil UUID in canonical or
// compact form. Returns nil if valid, or an error wrapping ErrInvalidSubjectID.
func ValidateSubjectID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", ErrInvalidSubjectID)
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSubjectID, err)
	}

	if parsed == uuid.Nil {
		return fmt.Errorf("%w: nil UUID", ErrInvalidSubjectID)
	}

	return nil
}
