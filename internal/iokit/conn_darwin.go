//go:build darwin && cgo

package iokit

/*
#cgo LDFLAGS: -framework IOKit
#include <stdlib.h>
#include <IOKit/IOKitLib.h>
#include <mach/mach.h>
#include <mach/mach_error.h>
*/
import "C"

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/danmuck/smcctl/internal/smc"
	"github.com/danmuck/smcctl/internal/smc/wire"
)

var ErrNoService = errors.New("iokit: no AppleSMC service found")

// Conn is an open connection to the AppleSMC kernel service. It
// implements smc.Channel.
type Conn struct {
	conn C.io_connect_t
}

// Open locates the AppleSMC service in the registry and opens a
// connection to it.
func Open() (*Conn, error) {
	var mainPort C.mach_port_t
	if res := C.IOMainPort(0, &mainPort); res != C.KERN_SUCCESS {
		return nil, fmt.Errorf("iokit: init main port: %s", Describe(int32(res)))
	}

	name := C.CString("AppleSMC")
	defer C.free(unsafe.Pointer(name))
	matching := C.IOServiceMatching(name)

	var iterator C.io_iterator_t
	res := C.IOServiceGetMatchingServices(mainPort, matching, &iterator)
	if res != C.KERN_SUCCESS {
		return nil, fmt.Errorf("iokit: match AppleSMC: %s", Describe(int32(res)))
	}
	device := C.IOIteratorNext(iterator)
	C.IOObjectRelease(iterator)
	if device == 0 {
		return nil, ErrNoService
	}

	var conn C.io_connect_t
	res = C.IOServiceOpen(device, C.mach_task_self_, 0, &conn)
	C.IOObjectRelease(device)
	if res != C.KERN_SUCCESS {
		return nil, fmt.Errorf("iokit: open service: %s", Describe(int32(res)))
	}
	return &Conn{conn: conn}, nil
}

// Call performs one struct-method round trip: the marshaled request
// record out, a same-sized record back. Non-success statuses come back
// verbatim as *smc.CallError.
func (c *Conn) Call(selector uint32, req, resp *wire.Record) error {
	in := req.Marshal()
	var out [wire.RecordLen]byte
	outLen := C.size_t(len(out))

	res := C.IOConnectCallStructMethod(
		c.conn,
		C.uint32_t(selector),
		unsafe.Pointer(&in[0]),
		C.size_t(len(in)),
		unsafe.Pointer(&out[0]),
		&outLen,
	)
	if res != C.KERN_SUCCESS {
		return &smc.CallError{Code: int32(res)}
	}
	r, err := wire.UnmarshalRecord(out[:])
	if err != nil {
		return err
	}
	*resp = r
	return nil
}

// Close releases the service connection.
func (c *Conn) Close() error {
	if res := C.IOServiceClose(c.conn); res != C.KERN_SUCCESS {
		return fmt.Errorf("iokit: close service: %s", Describe(int32(res)))
	}
	return nil
}

// Describe renders a kernel return code via mach_error_string.
func Describe(code int32) string {
	return C.GoString(C.mach_error_string(C.kern_return_t(code)))
}
