// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	// ErrValidation reports a malformed desired spec. No hardware was touched.
	ErrValidation = errors.New("invalid audio spec")

	// ErrUnavailable reports missing sound hardware or hardware owned by
	// another session.
	ErrUnavailable = errors.New("sound hardware unavailable")

	// ErrUnsupportedConfiguration reports that no format or no frequency
	// survived negotiation.
	ErrUnsupportedConfiguration = errors.New("unsupported audio configuration")

	// ErrResource reports a failed scratch buffer allocation during clock
	// detection.
	ErrResource = errors.New("out of sound memory")

	ErrNotActive = errors.New("session is not active")
)
