package core

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Binary wire sizes for the persisted transform and color formats: fixed
// width, big-endian, sequential, no compression or version header.
const (
	Matrix4x4BinarySize = 16 * 8
	ColorBinarySize     = 3 * 8
)

// MarshalBinary encodes the matrix as 16 consecutive big-endian float64
// values in row-major order.
func (m Matrix4x4) MarshalBinary() ([]byte, error) {
	buf := make([]byte, Matrix4x4BinarySize)
	offset := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			binary.BigEndian.PutUint64(buf[offset:], math.Float64bits(m[i][j]))
			offset += 8
		}
	}
	return buf, nil
}

// UnmarshalBinary decodes a matrix written by MarshalBinary, failing on
// short input.
func (m *Matrix4x4) UnmarshalBinary(data []byte) error {
	if len(data) < Matrix4x4BinarySize {
		return fmt.Errorf("decode matrix: need %d bytes, got %d", Matrix4x4BinarySize, len(data))
	}
	offset := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			m[i][j] = math.Float64frombits(binary.BigEndian.Uint64(data[offset:]))
			offset += 8
		}
	}
	return nil
}

// MarshalBinary encodes the color as 3 consecutive big-endian float64
// values.
func (c Color) MarshalBinary() ([]byte, error) {
	buf := make([]byte, ColorBinarySize)
	binary.BigEndian.PutUint64(buf[0:], math.Float64bits(c.R))
	binary.BigEndian.PutUint64(buf[8:], math.Float64bits(c.G))
	binary.BigEndian.PutUint64(buf[16:], math.Float64bits(c.B))
	return buf, nil
}

// UnmarshalBinary decodes a color written by MarshalBinary, failing on
// short input.
func (c *Color) UnmarshalBinary(data []byte) error {
	if len(data) < ColorBinarySize {
		return fmt.Errorf("decode color: need %d bytes, got %d", ColorBinarySize, len(data))
	}
	c.R = math.Float64frombits(binary.BigEndian.Uint64(data[0:]))
	c.G = math.Float64frombits(binary.BigEndian.Uint64(data[8:]))
	c.B = math.Float64frombits(binary.BigEndian.Uint64(data[16:]))
	return nil
}
