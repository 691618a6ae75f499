// Package shortvec implements the compact-u16 length prefix used throughout
// the Solana wire format: seven bits per byte, least significant group first,
// with the high bit set on every byte but the last.
package shortvec

import (
	"io"
	"math"

	"github.com/pkg/errors"
)

// MaxEncodedLen is the longest encoding of a compact-u16.
const MaxEncodedLen = 3

var (
	ErrLenOutOfRange = errors.Errorf("shortvec: len must be within [0, %d]", math.MaxUint16)
	ErrTooLong       = errors.Errorf("shortvec: encoding exceeds %d bytes", MaxEncodedLen)
	ErrOverflow      = errors.New("shortvec: value overflows u16")
	ErrNonCanonical  = errors.New("shortvec: non-canonical encoding")
)

// AppendLen appends the encoding of n to dst.
func AppendLen(dst []byte, n int) ([]byte, error) {
	if n < 0 || n > math.MaxUint16 {
		return dst, ErrLenOutOfRange
	}

	for n >= 0x80 {
		dst = append(dst, byte(n&0x7f)|0x80)
		n >>= 7
	}
	return append(dst, byte(n)), nil
}

// EncodeLen writes the encoding of n to w and returns the bytes written.
func EncodeLen(w io.Writer, n int) (int, error) {
	var buf [MaxEncodedLen]byte
	encoded, err := AppendLen(buf[:0], n)
	if err != nil {
		return 0, err
	}
	return w.Write(encoded)
}

// DecodeLen reads one compact-u16 from r. It consumes at most MaxEncodedLen
// bytes and rejects encodings the runtime would reject: overflowing values and
// ones padded with a trailing zero group.
func DecodeLen(r io.Reader) (int, error) {
	var (
		val int
		b   [1]byte
	)

	for i := 0; i < MaxEncodedLen; i++ {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return 0, err
		}

		group := int(b[0] & 0x7f)
		if i > 0 && b[0] == 0 {
			return 0, ErrNonCanonical
		}

		val |= group << (7 * i)
		if val > math.MaxUint16 {
			return 0, ErrOverflow
		}

		if b[0]&0x80 == 0 {
			return val, nil
		}
	}
	return 0, ErrTooLong
}
