package fx

import "fmt"

// Size holds frame dimensions in pixels.
type Size struct {
	Width  int
	Height int
}

// String returns a WxH representation of the size.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsValid reports whether both dimensions are positive.
func (s Size) IsValid() bool {
	return s.Width > 0 && s.Height > 0
}
