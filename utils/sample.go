// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"encoding/binary"

	"github.com/ik5/sndsetup/audio"
)

func clamp(x float64) float64 {
	if x > 1 {
		return 1
	} else if x < -1 {
		return -1
	}
	return x
}

// FloatToInt16 scales x in [-1, 1] to the signed 16-bit range.
func FloatToInt16(x float64) int16 {
	// Use 32767 for positive max to avoid overflow
	return int16(clamp(x) * 32767.0)
}

// FloatToInt8 scales x in [-1, 1] to the signed 8-bit range.
func FloatToInt8(x float64) int8 {
	return int8(clamp(x) * 127.0)
}

// PutSample encodes x at the start of dst in format f and returns the number
// of bytes written. Unsigned formats are offset binary. dst must hold
// f.BytesPerSample() bytes.
func PutSample(dst []byte, x float64, f audio.AudioFormat) int {
	switch f {
	case audio.FormatSigned8:
		dst[0] = uint8(FloatToInt8(x))
	case audio.FormatUnsigned8:
		dst[0] = uint8(FloatToInt8(x)) ^ 0x80
	case audio.FormatSigned16LSB:
		binary.LittleEndian.PutUint16(dst, uint16(FloatToInt16(x)))
	case audio.FormatSigned16MSB:
		binary.BigEndian.PutUint16(dst, uint16(FloatToInt16(x)))
	case audio.FormatUnsigned16LSB:
		binary.LittleEndian.PutUint16(dst, uint16(FloatToInt16(x))^0x8000)
	case audio.FormatUnsigned16MSB:
		binary.BigEndian.PutUint16(dst, uint16(FloatToInt16(x))^0x8000)
	default:
		return 0
	}
	return f.BytesPerSample()
}
