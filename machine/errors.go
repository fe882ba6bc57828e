// SPDX-License-Identifier: EPL-2.0

package machine

import "errors"

var (
	ErrNoSound         = errors.New("no sound subsystem")
	ErrLocked          = errors.New("sound system already locked")
	ErrNotLocked       = errors.New("sound system not locked")
	ErrUnknownRegister = errors.New("unknown register")
	ErrUnsupported     = errors.New("not supported by this machine")
	ErrNoMemory        = errors.New("out of memory")
	ErrBadFree         = errors.New("buffer was not allocated by this machine")
	ErrUnknownProfile  = errors.New("unknown machine profile")
	ErrInvalidProfile  = errors.New("invalid machine profile")
)
