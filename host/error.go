package host

import "github.com/ardnew/randl/pkg"

// ErrFilter is returned when a target filter cannot be compiled or run.
var ErrFilter = pkg.MakeErrorf("invalid filter")

// ErrApply is returned when a routed entry cannot be applied to a file.
var ErrApply = pkg.MakeErrorf("failed to apply entry")
