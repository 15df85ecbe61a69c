// Package rlp implements the sliver of recursive-length-prefix encoding the
// engine needs: encoding (and, for tests, decoding) of the two-element list
// [sender, nonce] that CREATE address derivation hashes. It is not a
// general-purpose RLP codec; core/vm never builds or consumes an RLP
// encoding the original Ethereum wire format wouldn't consider canonical.
package rlp

import "errors"

var (
	ErrCanonInt         = errors.New("rlp: non-canonical integer encoding")
	ErrCanonSize        = errors.New("rlp: non-canonical size information")
	ErrExpectedList     = errors.New("rlp: expected list")
	ErrExpectedString   = errors.New("rlp: expected string")
	ErrUint64Range      = errors.New("rlp: uint64 overflow")
	ErrNonCanonicalSize = errors.New("rlp: non-canonical size")
	ErrTrailingData     = errors.New("rlp: trailing data after list")
)

// EncodeSenderNonce returns the RLP encoding of the two-element list
// [sender, nonce], using the short-form optimization for nonces below 0x80
// (encode the nonce as a single byte, or 0x80 for a zero nonce) and a
// length-prefixed string for larger nonces.
func EncodeSenderNonce(sender []byte, nonce uint64) []byte {
	payload := append(encodeString(sender), encodeUint(nonce)...)
	return wrapList(payload)
}

// DecodeSenderNonce parses the encoding EncodeSenderNonce produces, for use
// by round-trip tests against a reference decoder.
func DecodeSenderNonce(b []byte) (sender []byte, nonce uint64, err error) {
	s := &stream{data: b}
	size, err := s.enterList()
	if err != nil {
		return nil, 0, err
	}
	listEnd := s.pos + size
	sender, err = s.readString()
	if err != nil {
		return nil, 0, err
	}
	nonce, err = s.readUint64()
	if err != nil {
		return nil, 0, err
	}
	if s.pos != listEnd {
		return nil, 0, ErrTrailingData
	}
	return sender, nonce, nil
}

func encodeUint(u uint64) []byte {
	if u == 0 {
		return []byte{0x80}
	}
	if u < 0x80 {
		return []byte{byte(u)}
	}
	return encodeString(putUintBigEndian(u))
}

func encodeString(data []byte) []byte {
	n := len(data)
	if n == 1 && data[0] < 0x80 {
		return data
	}
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0x80 + byte(n)
		copy(buf[1:], data)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xb7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], data)
	return buf
}

func wrapList(payload []byte) []byte {
	n := len(payload)
	if n <= 55 {
		buf := make([]byte, 1+n)
		buf[0] = 0xc0 + byte(n)
		copy(buf[1:], payload)
		return buf
	}
	lenBytes := putUintBigEndian(uint64(n))
	buf := make([]byte, 1+len(lenBytes)+n)
	buf[0] = 0xf7 + byte(len(lenBytes))
	copy(buf[1:], lenBytes)
	copy(buf[1+len(lenBytes):], payload)
	return buf
}

func putUintBigEndian(u uint64) []byte {
	switch {
	case u < 1<<8:
		return []byte{byte(u)}
	case u < 1<<16:
		return []byte{byte(u >> 8), byte(u)}
	case u < 1<<24:
		return []byte{byte(u >> 16), byte(u >> 8), byte(u)}
	case u < 1<<32:
		return []byte{byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < 1<<40:
		return []byte{byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < 1<<48:
		return []byte{byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	case u < 1<<56:
		return []byte{byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	default:
		return []byte{byte(u >> 56), byte(u >> 48), byte(u >> 40), byte(u >> 32), byte(u >> 24), byte(u >> 16), byte(u >> 8), byte(u)}
	}
}

// stream is a minimal cursor over an RLP byte string, just enough to read
// back the list EncodeSenderNonce produces.
type stream struct {
	data []byte
	pos  int
}

func (s *stream) enterList() (size int, err error) {
	if s.pos >= len(s.data) {
		return 0, ErrExpectedList
	}
	prefix := s.data[s.pos]
	switch {
	case prefix >= 0xc0 && prefix <= 0xf7:
		size = int(prefix - 0xc0)
		s.pos++
		return size, nil
	case prefix > 0xf7:
		lenOfLen := int(prefix - 0xf7)
		if s.pos+1+lenOfLen > len(s.data) {
			return 0, ErrExpectedList
		}
		size = int(readBigEndian(s.data[s.pos+1 : s.pos+1+lenOfLen]))
		if size <= 55 {
			return 0, ErrNonCanonicalSize
		}
		s.pos += 1 + lenOfLen
		return size, nil
	default:
		return 0, ErrExpectedList
	}
}

func (s *stream) readString() ([]byte, error) {
	if s.pos >= len(s.data) {
		return nil, ErrExpectedString
	}
	prefix := s.data[s.pos]
	switch {
	case prefix <= 0x7f:
		s.pos++
		return s.data[s.pos-1 : s.pos], nil
	case prefix <= 0xb7:
		size := int(prefix - 0x80)
		start := s.pos + 1
		end := start + size
		if end > len(s.data) {
			return nil, ErrExpectedString
		}
		if size == 1 && s.data[start] < 0x80 {
			return nil, ErrCanonSize
		}
		s.pos = end
		return s.data[start:end], nil
	case prefix <= 0xbf:
		lenOfLen := int(prefix - 0xb7)
		start := s.pos + 1 + lenOfLen
		if start > len(s.data) {
			return nil, ErrExpectedString
		}
		size := int(readBigEndian(s.data[s.pos+1 : start]))
		end := start + size
		if end > len(s.data) || size <= 55 {
			return nil, ErrExpectedString
		}
		s.pos = end
		return s.data[start:end], nil
	default:
		return nil, ErrExpectedString
	}
}

func (s *stream) readUint64() (uint64, error) {
	b, err := s.readString()
	if err != nil {
		return 0, err
	}
	if len(b) == 0 {
		return 0, nil
	}
	if len(b) > 8 {
		return 0, ErrUint64Range
	}
	if len(b) > 1 && b[0] == 0 {
		return 0, ErrCanonInt
	}
	return readBigEndian(b), nil
}

func readBigEndian(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}
