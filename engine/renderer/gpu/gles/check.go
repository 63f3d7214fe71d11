package gles

import (
	"log"
	"runtime"

	"golang.org/x/mobile/gl"
)

// check logs any pending GL error together with the calling file and line.
// It is a no-op unless the package is built with the gldebug tag.
func (d *device) check() {
	if !checkErrors {
		return
	}
	if e := d.ctx.GetError(); e != gl.NO_ERROR {
		_, file, line, _ := runtime.Caller(1)
		log.Printf("[GLES] error 0x%04x at %s:%d", uint32(e), file, line)
	}
}
