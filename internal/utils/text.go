package utils

import (
	"errors"
	"unicode/utf8"
)

// ErrInvalidText reports content that is not valid UTF-8.
var ErrInvalidText = errors.New("invalid UTF-8 content")

// DecodeText returns data as a string when it is valid UTF-8.
func DecodeText(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return EmptyString, ErrInvalidText
	}
	return string(data), nil
}
