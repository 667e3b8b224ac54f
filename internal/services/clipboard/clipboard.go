// Package clipboard places bundles on the system clipboard.
package clipboard

import (
	"github.com/atotto/clipboard"
)

// Copier copies textual data to the system clipboard.
type Copier interface {
	Copy(text string) error
}

// CopierFunc adapts a function to the Copier interface.
type CopierFunc func(text string) error

// Copy calls function(text).
func (function CopierFunc) Copy(text string) error {
	return function(text)
}

// Service implements Copier using github.com/atotto/clipboard. On hosts without
// a clipboard utility (xclip, xsel, wl-copy, pbcopy) Copy returns an error.
type Service struct {
	write func(text string) error
}

// NewService constructs a clipboard service backed by the system clipboard.
func NewService() *Service {
	return &Service{write: clipboard.WriteAll}
}

// Available reports whether a clipboard utility was found on this host.
func (service *Service) Available() bool {
	return !clipboard.Unsupported
}

// Copy writes text to the system clipboard.
func (service *Service) Copy(text string) error {
	return service.write(text)
}

var (
	_ Copier = (*Service)(nil)
	_ Copier = CopierFunc(nil)
)
