package persist

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Minimal NPY v1.0 codec, enough to read and write the entries the
// conditioned-signal archives carry: float64 arrays, int64 scalars and
// unicode strings. The format is the numpy on-disk layout, so archives stay
// loadable by the Python tooling that consumes this dataset.

var npyMagic = []byte("\x93NUMPY")

// writeNPY emits one array with the given dtype descriptor, shape and raw
// little-endian payload
func writeNPY(w io.Writer, descr string, shape []int, payload []byte) error {
	dims := make([]string, len(shape))
	for i, d := range shape {
		dims[i] = strconv.Itoa(d)
	}

	var shapeStr string
	switch len(shape) {
	case 0:
		shapeStr = "()"
	case 1:
		shapeStr = "(" + dims[0] + ",)"
	default:
		shapeStr = "(" + strings.Join(dims, ", ") + ")"
	}

	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': %s, }", descr, shapeStr)

	// Total header block (magic + version + length + dict) pads to 64 bytes
	padded := len(npyMagic) + 2 + 2 + len(header) + 1
	padding := (64 - padded%64) % 64
	header += strings.Repeat(" ", padding) + "\n"

	if _, err := w.Write(npyMagic); err != nil {
		return err
	}
	if _, err := w.Write([]byte{1, 0}); err != nil {
		return err
	}
	if err := binary.Write(w, binary.LittleEndian, uint16(len(header))); err != nil {
		return err
	}
	if _, err := io.WriteString(w, header); err != nil {
		return err
	}
	_, err := w.Write(payload)
	return err
}

// writeFloat64Array writes a float64 array of the given shape in row-major
// order
func writeFloat64Array(w io.Writer, shape []int, values []float64) error {
	payload := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(payload[8*i:], math.Float64bits(v))
	}
	return writeNPY(w, "<f8", shape, payload)
}

// writeInt64Scalar writes a 0-d int64 array
func writeInt64Scalar(w io.Writer, v int64) error {
	payload := make([]byte, 8)
	binary.LittleEndian.PutUint64(payload, uint64(v))
	return writeNPY(w, "<i8", nil, payload)
}

// writeStringScalar writes a 0-d unicode array (4 bytes per code point,
// numpy's '<U' layout)
func writeStringScalar(w io.Writer, s string) error {
	runes := []rune(s)
	payload := make([]byte, 4*len(runes))
	for i, r := range runes {
		binary.LittleEndian.PutUint32(payload[4*i:], uint32(r))
	}
	return writeNPY(w, fmt.Sprintf("<U%d", len(runes)), nil, payload)
}

// npyEntry is one parsed array
type npyEntry struct {
	descr   string
	shape   []int
	payload []byte
}

// readNPY parses one array written by this package (or numpy itself, for
// the dtypes above)
func readNPY(r io.Reader) (*npyEntry, error) {
	head := make([]byte, len(npyMagic)+2)
	if _, err := io.ReadFull(r, head); err != nil {
		return nil, err
	}
	if !bytes.Equal(head[:len(npyMagic)], npyMagic) {
		return nil, fmt.Errorf("not an NPY stream")
	}

	var headerLen uint16
	if err := binary.Read(r, binary.LittleEndian, &headerLen); err != nil {
		return nil, err
	}

	headerBytes := make([]byte, headerLen)
	if _, err := io.ReadFull(r, headerBytes); err != nil {
		return nil, err
	}
	header := string(headerBytes)

	descr, err := headerField(header, "descr")
	if err != nil {
		return nil, err
	}
	shapeStr, err := headerField(header, "shape")
	if err != nil {
		return nil, err
	}
	shape, err := parseShape(shapeStr)
	if err != nil {
		return nil, err
	}

	payload, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	return &npyEntry{descr: descr, shape: shape, payload: payload}, nil
}

// headerField pulls one value out of the header dict literal
func headerField(header, key string) (string, error) {
	idx := strings.Index(header, "'"+key+"':")
	if idx < 0 {
		return "", fmt.Errorf("NPY header missing %q", key)
	}
	rest := header[idx+len(key)+3:]
	rest = strings.TrimLeft(rest, " ")

	if strings.HasPrefix(rest, "'") {
		end := strings.Index(rest[1:], "'")
		if end < 0 {
			return "", fmt.Errorf("unterminated NPY header value for %q", key)
		}
		return rest[1 : 1+end], nil
	}
	if strings.HasPrefix(rest, "(") {
		end := strings.Index(rest, ")")
		if end < 0 {
			return "", fmt.Errorf("unterminated NPY header value for %q", key)
		}
		return rest[:end+1], nil
	}

	end := strings.IndexAny(rest, ",}")
	if end < 0 {
		return "", fmt.Errorf("malformed NPY header value for %q", key)
	}
	return strings.TrimSpace(rest[:end]), nil
}

// parseShape reads a Python tuple literal like (6000, 12) or ()
func parseShape(s string) ([]int, error) {
	s = strings.Trim(s, "() ")
	if s == "" {
		return nil, nil
	}

	var shape []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("malformed NPY shape %q: %w", s, err)
		}
		shape = append(shape, d)
	}
	return shape, nil
}

// floats decodes the payload as little-endian float64s
func (e *npyEntry) floats() ([]float64, error) {
	if e.descr != "<f8" {
		return nil, fmt.Errorf("expected float64 entry, got dtype %q", e.descr)
	}
	values := make([]float64, len(e.payload)/8)
	for i := range values {
		values[i] = math.Float64frombits(binary.LittleEndian.Uint64(e.payload[8*i:]))
	}
	return values, nil
}

// int64Scalar decodes a 0-d int64 entry
func (e *npyEntry) int64Scalar() (int64, error) {
	if e.descr != "<i8" || len(e.payload) < 8 {
		return 0, fmt.Errorf("expected int64 scalar, got dtype %q", e.descr)
	}
	return int64(binary.LittleEndian.Uint64(e.payload)), nil
}

// stringScalar decodes a 0-d unicode entry
func (e *npyEntry) stringScalar() (string, error) {
	if !strings.HasPrefix(e.descr, "<U") {
		return "", fmt.Errorf("expected unicode scalar, got dtype %q", e.descr)
	}
	var sb strings.Builder
	for i := 0; i+4 <= len(e.payload); i += 4 {
		r := rune(binary.LittleEndian.Uint32(e.payload[i:]))
		if r == 0 {
			break
		}
		if !utf8.ValidRune(r) {
			return "", fmt.Errorf("invalid code point in unicode entry")
		}
		sb.WriteRune(r)
	}
	return sb.String(), nil
}
