// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"strings"
)

// AudioFormat is a PCM sample encoding. The declaration order is the
// preference order used by Negotiate when several formats qualify.
type AudioFormat int

const (
	FormatSigned8 AudioFormat = iota
	FormatSigned16LSB
	FormatSigned16MSB
	FormatUnsigned8
	FormatUnsigned16LSB
	FormatUnsigned16MSB

	formatCount
)

var formatNames = [formatCount]string{
	"S8", "S16LSB", "S16MSB", "U8", "U16LSB", "U16MSB",
}

func (f AudioFormat) String() string {
	if !f.Valid() {
		return fmt.Sprintf("AudioFormat(%d)", int(f))
	}
	return formatNames[f]
}

// ParseFormat accepts the names printed by String, case insensitive.
func ParseFormat(s string) (AudioFormat, error) {
	for i, n := range formatNames {
		if strings.EqualFold(n, s) {
			return AudioFormat(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown format %q", ErrValidation, s)
}

func (f AudioFormat) Valid() bool { return f >= 0 && f < formatCount }

func (f AudioFormat) Is16Bit() bool { return f.Valid() && f != FormatSigned8 && f != FormatUnsigned8 }

func (f AudioFormat) Signed() bool { return f >= FormatSigned8 && f <= FormatSigned16MSB }

// BigEndian is false for 8-bit formats, which have no byte order.
func (f AudioFormat) BigEndian() bool { return f == FormatSigned16MSB || f == FormatUnsigned16MSB }

func (f AudioFormat) BytesPerSample() int {
	if f.Is16Bit() {
		return 2
	}
	return 1
}

// withSign returns the format with the same width and byte order and the
// given signedness.
func (f AudioFormat) withSign(signed bool) AudioFormat {
	if f.Signed() == signed {
		return f
	}
	if signed {
		return f - FormatUnsigned8
	}
	return f + FormatUnsigned8
}

// FormatSet is a set of AudioFormat values.
type FormatSet uint8

func NewFormatSet(formats ...AudioFormat) FormatSet {
	var s FormatSet
	for _, f := range formats {
		s = s.Add(f)
	}
	return s
}

func (s FormatSet) Add(f AudioFormat) FormatSet {
	if !f.Valid() {
		return s
	}
	return s | 1<<uint(f)
}

func (s FormatSet) Has(f AudioFormat) bool { return f.Valid() && s&(1<<uint(f)) != 0 }

func (s FormatSet) Empty() bool { return s == 0 }

// Formats lists the members in enumeration order.
func (s FormatSet) Formats() []AudioFormat {
	var out []AudioFormat
	for f := range formatCount {
		if s.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

func (s FormatSet) String() string {
	names := make([]string, 0, formatCount)
	for _, f := range s.Formats() {
		names = append(names, f.String())
	}
	return "{" + strings.Join(names, ",") + "}"
}

// first returns the lowest member accepted by match.
func (s FormatSet) first(match func(AudioFormat) bool) (AudioFormat, bool) {
	for f := range formatCount {
		if s.Has(f) && match(f) {
			return f, true
		}
	}
	return 0, false
}

// Negotiate picks the available format closest to desired:
//  1. desired itself
//  2. same width and byte order, other signedness
//  3. 16-bit desired only: same signedness, other byte order
//  4. any 16-bit format
//  5. 16-bit desired only: the 8-bit format of the same signedness
//  6. anything available
//
// It fails only when available is empty.
func Negotiate(desired AudioFormat, available FormatSet) (AudioFormat, error) {
	if !desired.Valid() {
		return 0, fmt.Errorf("%w: format %v", ErrValidation, desired)
	}
	if available.Empty() {
		return 0, fmt.Errorf("%w: no sample format available", ErrUnsupportedConfiguration)
	}

	if available.Has(desired) {
		return desired, nil
	}

	if f, ok := available.first(func(f AudioFormat) bool {
		return f == desired.withSign(!desired.Signed())
	}); ok {
		return f, nil
	}

	if desired.Is16Bit() {
		if f, ok := available.first(func(f AudioFormat) bool {
			return f.Is16Bit() && f.Signed() == desired.Signed()
		}); ok {
			return f, nil
		}
	}

	if f, ok := available.first(AudioFormat.Is16Bit); ok {
		return f, nil
	}

	if desired.Is16Bit() {
		eight := FormatSigned8.withSign(desired.Signed())
		if available.Has(eight) {
			return eight, nil
		}
	}

	f, _ := available.first(func(AudioFormat) bool { return true })
	return f, nil
}
