//go:build !gldebug

package gles

const checkErrors = false
