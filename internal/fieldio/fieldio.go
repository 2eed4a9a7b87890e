// Package fieldio reads and writes the raw field files exchanged with the
// external Laplace-Dirichlet solver: little-endian float64 payloads, one
// value per sample point for scalar fields and three interleaved components
// per point for vector fields.
package fieldio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"

	"cardiofiber/pkg/geometry"
)

// ReadScalarField reads a scalar field file (n float64 values).
func ReadScalarField(path string) ([]float64, error) {
	vals, err := readFloats(path)
	if err != nil {
		return nil, err
	}
	return vals, nil
}

// ReadVectorField reads a vector field file (3n float64 values, interleaved
// x, y, z per sample point).
func ReadVectorField(path string) ([]geometry.Vec3, error) {
	vals, err := readFloats(path)
	if err != nil {
		return nil, err
	}
	if len(vals)%3 != 0 {
		return nil, fmt.Errorf("fieldio: %s holds %d values, not a multiple of 3", path, len(vals))
	}
	out := make([]geometry.Vec3, len(vals)/3)
	for i := range out {
		out[i] = geometry.Vec3{X: vals[3*i], Y: vals[3*i+1], Z: vals[3*i+2]}
	}
	return out, nil
}

// WriteVectorField writes a vector field in the same interleaved layout.
func WriteVectorField(path string, field []geometry.Vec3) error {
	vals := make([]float64, 0, 3*len(field))
	for _, v := range field {
		vals = append(vals, v.X, v.Y, v.Z)
	}
	var buf bytes.Buffer
	if err := binary.Write(&buf, binary.LittleEndian, vals); err != nil {
		return fmt.Errorf("fieldio: encoding %s: %w", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("fieldio: writing %s: %w", path, err)
	}
	return nil
}

func readFloats(path string) ([]float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fieldio: reading %s: %w", path, err)
	}
	if len(data)%8 != 0 {
		return nil, fmt.Errorf("fieldio: %s is %d bytes, not a multiple of 8", path, len(data))
	}
	vals := make([]float64, len(data)/8)
	if err := binary.Read(bytes.NewReader(data), binary.LittleEndian, vals); err != nil {
		return nil, fmt.Errorf("fieldio: decoding %s: %w", path, err)
	}
	return vals, nil
}
