package theory

import "errors"

var (
	ErrEmptyPitch        = errors.New("pitch cannot be empty")
	ErrInvalidRoot       = errors.New("invalid root")
	ErrInvalidAccidental = errors.New("invalid accidental (valid characters: '#', 'b', 'x')")
	ErrUnknownQuality    = errors.New("unknown chord quality")
	ErrUnknownExtension  = errors.New("unknown chord extension")
)

// IsInputError reports whether err was caused by a bad pitch, quality or
// extension name rather than an internal failure.
func IsInputError(err error) bool {
	return errors.Is(err, ErrEmptyPitch) ||
		errors.Is(err, ErrInvalidRoot) ||
		errors.Is(err, ErrInvalidAccidental) ||
		errors.Is(err, ErrUnknownQuality) ||
		errors.Is(err, ErrUnknownExtension)
}
