package binder

import "github.com/Carmen-Shannon/oxy-gles/common"

// BinderBuilderOption is a functional option applied to a binder during construction via NewBinder.
type BinderBuilderOption func(*binder)

// WithScreenViewport sets the viewport applied whenever the default screen is bound.
//
// Parameters:
//   - r: the screen viewport
//
// Returns:
//   - BinderBuilderOption: a function that applies the screen viewport option to a binder
func WithScreenViewport(r common.Rect) BinderBuilderOption {
	return func(b *binder) {
		b.screenViewport = r
	}
}

// WithDefaultFramebuffer sets the handle of the default screen framebuffer up front instead
// of capturing it on the first offscreen bind. Platforms where the screen is not framebuffer 0
// (iOS style layer-backed surfaces) know the handle at startup.
//
// Parameters:
//   - handle: the default framebuffer name
//
// Returns:
//   - BinderBuilderOption: a function that applies the default framebuffer option to a binder
func WithDefaultFramebuffer(handle uint32) BinderBuilderOption {
	return func(b *binder) {
		b.defaultHandle = handle
		b.defaultCaptured = true
	}
}
