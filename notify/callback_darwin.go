//go:build darwin && cgo

package notify

/*
#include <stdint.h>
*/
import "C"

import (
	"runtime/cgo"
	"unsafe"
)

//export goPlayerInfo
func goPlayerInfo(handle C.uintptr_t, data *C.char, length C.int) {
	d, ok := cgo.Handle(handle).Value().(*distributed)
	if !ok {
		return
	}
	d.deliver(C.GoBytes(unsafe.Pointer(data), length))
}
