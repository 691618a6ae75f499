package binary

import (
	"crypto/ed25519"
	"encoding/binary"
	"errors"
)

// ErrBufferTooShort is returned by the Read* helpers when the buffer ends before
// the value being decoded.
var ErrBufferTooShort = errors.New("buffer too short")

func PutKey32(dst []byte, src []byte, offset *int) {
	copy(dst, src)
	*offset += ed25519.PublicKeySize
}

func PutUint64(dst []byte, v uint64, offset *int) {
	binary.LittleEndian.PutUint64(dst, v)
	*offset += 8
}

func PutUint32(dst []byte, v uint32, offset *int) {
	binary.LittleEndian.PutUint32(dst, v)
	*offset += 4
}

func PutUint8(dst []byte, v uint8, offset *int) {
	dst[0] = v
	*offset += 1
}

func PutBool(dst []byte, v bool, offset *int) {
	if v {
		dst[0] = 1
	} else {
		dst[0] = 0
	}
	*offset += 1
}

// PutCompactOptionalKey32 writes a presence flag followed by the key only when
// the key is set.
func PutCompactOptionalKey32(dst []byte, src []byte, offset *int) {
	if len(src) == 0 {
		dst[0] = 0
		*offset += 1
		return
	}

	dst[0] = 1
	copy(dst[1:], src)
	*offset += 1 + ed25519.PublicKeySize
}

// PutCompactOptionalUint64 writes a presence flag followed by the value only
// when the value is set.
func PutCompactOptionalUint64(dst []byte, v *uint64, offset *int) {
	if v == nil {
		dst[0] = 0
		*offset += 1
		return
	}

	dst[0] = 1
	binary.LittleEndian.PutUint64(dst[1:], *v)
	*offset += 1 + 8
}

func GetKey32(src []byte, dst *ed25519.PublicKey, offset *int) {
	*dst = make([]byte, ed25519.PublicKeySize)
	copy(*dst, src)
	*offset += ed25519.PublicKeySize
}

func GetOptionalKey32(src []byte, dst *ed25519.PublicKey, offset *int, optionSize int) {
	if src[0] == 1 {
		*dst = make([]byte, ed25519.PublicKeySize)
		copy(*dst, src[optionSize:])
	}
	*offset += optionSize + ed25519.PublicKeySize
}

func GetUint64(src []byte, dst *uint64, offset *int) {
	*dst = binary.LittleEndian.Uint64(src)
	*offset += 8
}

func GetUint32(src []byte, dst *uint32, offset *int) {
	*dst = binary.LittleEndian.Uint32(src)
	*offset += 4
}

func GetUint8(src []byte, dst *uint8, offset *int) {
	*dst = src[0]
	*offset += 1
}

// ReadKey32 decodes a 32 byte key at offset and returns the offset past it.
func ReadKey32(data []byte, offset int) (ed25519.PublicKey, int, error) {
	if offset < 0 || len(data)-offset < ed25519.PublicKeySize {
		return nil, offset, ErrBufferTooShort
	}

	key := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(key, data[offset:])
	return key, offset + ed25519.PublicKeySize, nil
}

// ReadUint64 decodes a little endian uint64 at offset and returns the offset past it.
func ReadUint64(data []byte, offset int) (uint64, int, error) {
	if offset < 0 || len(data)-offset < 8 {
		return 0, offset, ErrBufferTooShort
	}
	return binary.LittleEndian.Uint64(data[offset:]), offset + 8, nil
}

func ReadUint8(data []byte, offset int) (uint8, int, error) {
	if offset < 0 || len(data)-offset < 1 {
		return 0, offset, ErrBufferTooShort
	}
	return data[offset], offset + 1, nil
}

// ReadBool treats any non-zero byte as true.
func ReadBool(data []byte, offset int) (bool, int, error) {
	v, next, err := ReadUint8(data, offset)
	if err != nil {
		return false, offset, err
	}
	return v != 0, next, nil
}

// ReadOptional reads a one byte presence flag at offset. When the flag is 1 the
// payload is decoded with read, otherwise only the flag is consumed and nil is
// returned.
func ReadOptional[T any](data []byte, offset int, read func([]byte, int) (T, int, error)) (*T, int, error) {
	flag, next, err := ReadUint8(data, offset)
	if err != nil {
		return nil, offset, err
	}
	if flag != 1 {
		return nil, next, nil
	}

	v, next, err := read(data, next)
	if err != nil {
		return nil, offset, err
	}
	return &v, next, nil
}
