package snapshot

import (
	"bytes"
	"encoding/binary"
	"math"

	"github.com/hexark/orient/internal/conv"
)

// Format layout:
//
//	magic(4) | version(u16) | compression(u8) | codecNameLen(u8) | codecName
//	then sections until EOF:
//	nameLen(u16) | name | blockLen(u64) | block
//
// All integers are little-endian.
var magic = [4]byte{'O', 'R', 'N', 'T'}

const formatVersion uint16 = 1

// Section names. Property columns use the "prop:" prefix.
const (
	sectionMeta      = "meta"
	sectionRotations = "rotations"
	sectionPhaseIDs  = "phase_ids"
	sectionX         = "x"
	sectionY         = "y"
	propSection      = "prop:"
)

type header struct {
	version     uint16
	compression Compression
	codecName   string
}

func writeHeader(buf *bytes.Buffer, h header) error {
	buf.Write(magic[:])
	var v [2]byte
	binary.LittleEndian.PutUint16(v[:], h.version)
	buf.Write(v[:])
	buf.WriteByte(byte(h.compression))
	if len(h.codecName) > math.MaxUint8 {
		return &ErrCorrupt{Reason: "codec name too long"}
	}
	buf.WriteByte(byte(len(h.codecName)))
	buf.WriteString(h.codecName)
	return nil
}

func parseHeader(data []byte) (header, int, error) {
	if len(data) < len(magic)+4 {
		return header{}, 0, ErrBadMagic
	}
	if !bytes.Equal(data[:4], magic[:]) {
		return header{}, 0, ErrBadMagic
	}
	h := header{
		version:     binary.LittleEndian.Uint16(data[4:6]),
		compression: Compression(data[6]),
	}
	if h.version != formatVersion {
		return header{}, 0, &ErrUnsupportedVersion{Version: h.version}
	}
	if !h.compression.valid() {
		return header{}, 0, &ErrCorrupt{Reason: "unknown compression id"}
	}
	nameLen := int(data[7])
	if len(data) < 8+nameLen {
		return header{}, 0, &ErrCorrupt{Reason: "header truncated"}
	}
	h.codecName = string(data[8 : 8+nameLen])
	return h, 8 + nameLen, nil
}

func writeSection(buf *bytes.Buffer, name string, block []byte) error {
	nameLen, err := conv.IntToUint32(len(name))
	if err != nil || nameLen > math.MaxUint16 {
		return &ErrCorrupt{Section: name, Reason: "section name too long"}
	}
	var n [2]byte
	binary.LittleEndian.PutUint16(n[:], uint16(nameLen))
	buf.Write(n[:])
	buf.WriteString(name)

	blockLen, err := conv.IntToUint64(len(block))
	if err != nil {
		return err
	}
	var l [8]byte
	binary.LittleEndian.PutUint64(l[:], blockLen)
	buf.Write(l[:])
	buf.Write(block)
	return nil
}

// parseSections splits the body into named blocks, preserving order.
func parseSections(data []byte) (map[string][]byte, error) {
	sections := make(map[string][]byte)
	for len(data) > 0 {
		if len(data) < 2 {
			return nil, &ErrCorrupt{Reason: "truncated section name length"}
		}
		nameLen := int(binary.LittleEndian.Uint16(data))
		data = data[2:]
		if len(data) < nameLen+8 {
			return nil, &ErrCorrupt{Reason: "truncated section header"}
		}
		name := string(data[:nameLen])
		blockLen, err := conv.Uint64ToInt(binary.LittleEndian.Uint64(data[nameLen:]))
		if err != nil {
			return nil, &ErrCorrupt{Section: name, Reason: "section length overflow"}
		}
		data = data[nameLen+8:]
		if len(data) < blockLen {
			return nil, &ErrCorrupt{Section: name, Reason: "section body truncated"}
		}
		sections[name] = data[:blockLen]
		data = data[blockLen:]
	}
	return sections, nil
}

// metaRecord is the codec-encoded snapshot inventory.
type metaRecord struct {
	Points    int           `json:"points"`
	Phases    []phaseRecord `json:"phases"`
	Shape     *shapeRecord  `json:"shape,omitempty"`
	Props     []string      `json:"props,omitempty"`
	HasCoords bool          `json:"has_coords"`
}

type phaseRecord struct {
	ID         int            `json:"id"`
	Name       string         `json:"name"`
	PointGroup string         `json:"point_group"`
	SpaceGroup int            `json:"space_group,omitempty"`
	Color      string         `json:"color,omitempty"`
	Lattice    *latticeRecord `json:"lattice,omitempty"`
}

// latticeRecord stores cell angles in degrees, matching the lattice
// constructor.
type latticeRecord struct {
	A     float64 `json:"a"`
	B     float64 `json:"b"`
	C     float64 `json:"c"`
	Alpha float64 `json:"alpha"`
	Beta  float64 `json:"beta"`
	Gamma float64 `json:"gamma"`
}

type shapeRecord struct {
	Rows  int     `json:"rows"`
	Cols  int     `json:"cols"`
	StepY float64 `json:"step_y"`
	StepX float64 `json:"step_x"`
}

func encodeFloats(values []float64) []byte {
	out := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(out[8*i:], math.Float64bits(v))
	}
	return out
}

func decodeFloats(section string, data []byte, want int) ([]float64, error) {
	if len(data) != 8*want {
		return nil, &ErrCorrupt{Section: section, Reason: "column length mismatch"}
	}
	out := make([]float64, want)
	for i := range out {
		out[i] = math.Float64frombits(binary.LittleEndian.Uint64(data[8*i:]))
	}
	return out, nil
}

func encodeInts(values []int) []byte {
	out := make([]byte, 8*len(values))
	for i, v := range values {
		binary.LittleEndian.PutUint64(out[8*i:], uint64(int64(v)))
	}
	return out
}

func decodeInts(section string, data []byte, want int) ([]int, error) {
	if len(data) != 8*want {
		return nil, &ErrCorrupt{Section: section, Reason: "column length mismatch"}
	}
	out := make([]int, want)
	for i := range out {
		out[i] = int(int64(binary.LittleEndian.Uint64(data[8*i:])))
	}
	return out, nil
}
