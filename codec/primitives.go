// Package codec implements the canonical binary primitives shared by the
// proof package's wire (de)serialization: fixed-width little-endian
// integers, the Bitcoin-style compact_size variable-length count, and
// length-prefixed byte strings. It has no knowledge of the proof domain
// types themselves — those own their own Encode/Decode methods built on
// top of these primitives, the same way the original implementation's
// Stake/SignedStake/Proof classes stream their fields through a generic
// primitive writer.
package codec

import (
	"encoding/binary"
	"io"

	"github.com/btcsuite/btcd/wire"
)

// wireProtocolVersion is passed to the underlying btcd wire helpers,
// which accept a protocol version for historical wire-format
// compatibility. This codec has no notion of protocol versioning, so a
// constant zero is used throughout.
const wireProtocolVersion = 0

// MaxVectorLen bounds the element count of any compact_size-prefixed
// vector before allocation, independent of any type-specific ceiling
// (e.g. AVALANCHE_MAX_PROOF_STAKES) that a caller enforces afterward.
const MaxVectorLen = 1 << 20

// MaxByteStringLen bounds any length-prefixed byte string read through
// ReadBytes before allocation.
const MaxByteStringLen = 1 << 20

func WriteCompactSize(w io.Writer, n uint64) error {
	return wire.WriteVarInt(w, wireProtocolVersion, n)
}

func ReadCompactSize(r io.Reader) (uint64, error) {
	n, err := wire.ReadVarInt(r, wireProtocolVersion)
	if err != nil {
		return 0, NewMalformedEncodingError("compact_size: %v", err)
	}
	return n, nil
}

// ReadVectorLen reads a compact_size and enforces MaxVectorLen before the
// caller allocates a slice of that length.
func ReadVectorLen(r io.Reader) (uint64, error) {
	n, err := ReadCompactSize(r)
	if err != nil {
		return 0, err
	}
	if n > MaxVectorLen {
		return 0, NewMalformedEncodingError("vector length %d exceeds safety ceiling %d", n, MaxVectorLen)
	}
	return n, nil
}

func WriteUint32LE(w io.Writer, v uint32) error {
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint32LE(r io.Reader) (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, NewMalformedEncodingError("uint32: %v", err)
	}
	return binary.LittleEndian.Uint32(buf[:]), nil
}

func WriteUint64LE(w io.Writer, v uint64) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], v)
	_, err := w.Write(buf[:])
	return err
}

func ReadUint64LE(r io.Reader) (uint64, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return 0, NewMalformedEncodingError("uint64: %v", err)
	}
	return binary.LittleEndian.Uint64(buf[:]), nil
}

func WriteInt64LE(w io.Writer, v int64) error {
	return WriteUint64LE(w, uint64(v))
}

func ReadInt64LE(r io.Reader) (int64, error) {
	v, err := ReadUint64LE(r)
	return int64(v), err
}

// WriteBytes writes a compact_size(len) followed by the raw bytes, the
// canonical encoding for any variable-length byte string (scripts,
// pubkeys).
func WriteBytes(w io.Writer, b []byte) error {
	if err := WriteCompactSize(w, uint64(len(b))); err != nil {
		return err
	}
	_, err := w.Write(b)
	return err
}

// ReadBytes reads a compact_size(len) ‖ bytes byte string, rejecting a
// declared length over maxLen before allocating.
func ReadBytes(r io.Reader, maxLen uint64) ([]byte, error) {
	n, err := ReadCompactSize(r)
	if err != nil {
		return nil, err
	}
	if n > maxLen {
		return nil, NewMalformedEncodingError("byte string length %d exceeds max %d", n, maxLen)
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, NewMalformedEncodingError("byte string: %v", err)
	}
	return buf, nil
}

// WriteRaw writes b with no length prefix, for fixed-size fields
// (hashes, signatures) whose length is implicit in the wire layout.
func WriteRaw(w io.Writer, b []byte) error {
	_, err := w.Write(b)
	return err
}

// ReadRaw reads exactly n unprefixed bytes.
func ReadRaw(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, NewMalformedEncodingError("raw %d bytes: %v", n, err)
	}
	return buf, nil
}
