// SPDX-License-Identifier: MIT

package storage

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// SerialVersion is the version written into the storage header.
const SerialVersion = 1

const (
	tagStorage     = "storage"
	tagUnitCube    = "unitcube"
	tagBoundingBox = "boundingbox"
	tagStretching  = "stretching"
)

// Serialize writes the versioned text encoding:
//
//	storage <version> <dim> <size>
//	l0 i0 l1 i1 ... leaf          (one line per point, sequence order)
//	unitcube | boundingbox | stretching
//	<one line per dimension for boundingbox/stretching>
//
// Bounding-box lines are "left right dirichletLeft dirichletRight";
// stretching lines are "type left right x0 xsi dirichletLeft dirichletRight".
// Floats use the shortest representation that parses back exactly.
func (s *Storage) Serialize(w io.Writer) error {
	bw := bufio.NewWriter(w)
	var line []byte
	line = append(line, tagStorage...)
	line = appendInts(line, SerialVersion, s.dim, len(s.points))
	line = append(line, '\n')
	if _, err := bw.Write(line); err != nil {
		return err
	}
	for _, p := range s.points {
		line = line[:0]
		for d := 0; d < s.dim; d++ {
			if d > 0 {
				line = append(line, ' ')
			}
			line = strconv.AppendUint(line, uint64(p.levels[d]), 10)
			line = append(line, ' ')
			line = strconv.AppendUint(line, uint64(p.indices[d]), 10)
		}
		line = append(line, ' ')
		line = appendBool(line, p.leaf)
		line = append(line, '\n')
		if _, err := bw.Write(line); err != nil {
			return err
		}
	}
	switch {
	case s.stretch != nil:
		if _, err := bw.WriteString(tagStretching + "\n"); err != nil {
			return err
		}
		for _, sd := range s.stretch.dims {
			line = append(line[:0], sd.Type.String()...)
			line = append(line, ' ')
			line = appendInterval(line, sd.Interval, sd.X0, sd.Xsi)
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	case s.bbox != nil && !s.bbox.IsUnitCube():
		if _, err := bw.WriteString(tagBoundingBox + "\n"); err != nil {
			return err
		}
		for _, iv := range s.bbox.intervals {
			line = appendInterval(line[:0], iv)
			if _, err := bw.Write(line); err != nil {
				return err
			}
		}
	default:
		if _, err := bw.WriteString(tagUnitCube + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// String returns the serialized encoding.
func (s *Storage) String() string {
	var sb strings.Builder
	_ = s.Serialize(&sb)
	return sb.String()
}

func appendInts(b []byte, vs ...int) []byte {
	for _, v := range vs {
		b = append(b, ' ')
		b = strconv.AppendInt(b, int64(v), 10)
	}
	return b
}

func appendBool(b []byte, v bool) []byte {
	if v {
		return append(b, '1')
	}
	return append(b, '0')
}

// appendInterval writes "left right [extra...] dirichletLeft dirichletRight\n".
func appendInterval(b []byte, iv Interval, extra ...float64) []byte {
	b = strconv.AppendFloat(b, iv.Left, 'g', -1, 64)
	b = append(b, ' ')
	b = strconv.AppendFloat(b, iv.Right, 'g', -1, 64)
	for _, v := range extra {
		b = append(b, ' ')
		b = strconv.AppendFloat(b, v, 'g', -1, 64)
	}
	b = append(b, ' ')
	b = appendBool(b, iv.DirichletLeft)
	b = append(b, ' ')
	b = appendBool(b, iv.DirichletRight)
	return append(b, '\n')
}

// Unserialize parses a block written by Serialize. On any error it returns
// ErrDeserialization (wrapped with the offending line) and no storage.
func Unserialize(r io.Reader) (*Storage, error) {
	sc := &lineScanner{sc: bufio.NewScanner(r)}
	sc.sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	header, err := sc.fields()
	if err != nil {
		return nil, err
	}
	if len(header) != 4 || header[0] != tagStorage {
		return nil, sc.errorf("malformed header %q", strings.Join(header, " "))
	}
	nums, err := sc.ints(header[1:])
	if err != nil {
		return nil, err
	}
	version, dim, size := nums[0], nums[1], nums[2]
	if version != SerialVersion {
		return nil, sc.errorf("unsupported version %d", version)
	}
	if dim < 1 || size < 0 {
		return nil, sc.errorf("invalid dim=%d size=%d", dim, size)
	}

	s, _ := New(dim)
	for k := 0; k < size; k++ {
		f, err := sc.fields()
		if err != nil {
			return nil, errors.Wrapf(err, "point %d of %d", k, size)
		}
		if len(f) != 2*dim+1 {
			return nil, sc.errorf("point %d: want %d fields, got %d", k, 2*dim+1, len(f))
		}
		p := &Point{levels: make([]Level, dim), indices: make([]Index, dim)}
		for d := 0; d < dim; d++ {
			l, err := strconv.ParseUint(f[2*d], 10, 32)
			if err != nil {
				return nil, sc.wrap(err)
			}
			i, err := strconv.ParseUint(f[2*d+1], 10, 32)
			if err != nil {
				return nil, sc.wrap(err)
			}
			p.levels[d], p.indices[d] = Level(l), Index(i)
		}
		if p.leaf, err = sc.bool(f[2*dim]); err != nil {
			return nil, err
		}
		if _, err := s.insertRaw(p); err != nil {
			return nil, sc.wrap(err)
		}
	}

	f, err := sc.fields()
	if err != nil {
		return nil, errors.Wrap(err, "transform block")
	}
	if len(f) != 1 {
		return nil, sc.errorf("malformed transform tag %q", strings.Join(f, " "))
	}
	switch f[0] {
	case tagUnitCube:
	case tagBoundingBox:
		ivs := make([]Interval, dim)
		for d := range ivs {
			f, err := sc.fields()
			if err != nil {
				return nil, err
			}
			if len(f) != 4 {
				return nil, sc.errorf("bounding box dim %d: want 4 fields, got %d", d, len(f))
			}
			if ivs[d], err = sc.interval(f[0], f[1], f[2], f[3]); err != nil {
				return nil, err
			}
		}
		b, err := NewBoundingBox(ivs...)
		if err != nil {
			return nil, sc.wrap(err)
		}
		s.bbox = b
	case tagStretching:
		sds := make([]Stretching1D, dim)
		for d := range sds {
			f, err := sc.fields()
			if err != nil {
				return nil, err
			}
			if len(f) != 7 {
				return nil, sc.errorf("stretching dim %d: want 7 fields, got %d", d, len(f))
			}
			typ, err := ParseStretchingType(f[0])
			if err != nil {
				return nil, sc.wrap(err)
			}
			iv, err := sc.interval(f[1], f[2], f[5], f[6])
			if err != nil {
				return nil, err
			}
			x0, err := strconv.ParseFloat(f[3], 64)
			if err != nil {
				return nil, sc.wrap(err)
			}
			xsi, err := strconv.ParseFloat(f[4], 64)
			if err != nil {
				return nil, sc.wrap(err)
			}
			sds[d] = Stretching1D{Type: typ, Interval: iv, X0: x0, Xsi: xsi}
		}
		st, err := NewStretching(sds...)
		if err != nil {
			return nil, sc.wrap(err)
		}
		s.stretch = st
	default:
		return nil, sc.errorf("unknown transform tag %q", f[0])
	}

	if f, err := sc.fields(); err == nil {
		return nil, sc.errorf("trailing data %q", strings.Join(f, " "))
	} else if !errors.Is(err, io.EOF) {
		return nil, err
	}
	return s, nil
}

// UnserializeString is Unserialize over a string.
func UnserializeString(str string) (*Storage, error) {
	return Unserialize(strings.NewReader(str))
}

// lineScanner yields whitespace-separated fields of non-blank lines and
// tags every error with ErrDeserialization and the line number.
type lineScanner struct {
	sc   *bufio.Scanner
	line int
}

// fields returns the next non-blank line split on whitespace. At end of
// input it returns an error matching both io.EOF and ErrDeserialization.
func (ls *lineScanner) fields() ([]string, error) {
	for ls.sc.Scan() {
		ls.line++
		if f := strings.Fields(ls.sc.Text()); len(f) > 0 {
			return f, nil
		}
	}
	if err := ls.sc.Err(); err != nil {
		return nil, ls.wrap(err)
	}
	return nil, errors.Mark(errors.Wrapf(ErrDeserialization, "line %d: unexpected end of input", ls.line), io.EOF)
}

func (ls *lineScanner) ints(fs []string) ([]int, error) {
	out := make([]int, len(fs))
	for k, f := range fs {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, ls.wrap(err)
		}
		out[k] = v
	}
	return out, nil
}

func (ls *lineScanner) bool(f string) (bool, error) {
	switch f {
	case "0":
		return false, nil
	case "1":
		return true, nil
	}
	return false, ls.errorf("invalid flag %q", f)
}

func (ls *lineScanner) interval(left, right, dl, dr string) (Interval, error) {
	var iv Interval
	var err error
	if iv.Left, err = strconv.ParseFloat(left, 64); err != nil {
		return iv, ls.wrap(err)
	}
	if iv.Right, err = strconv.ParseFloat(right, 64); err != nil {
		return iv, ls.wrap(err)
	}
	if iv.DirichletLeft, err = ls.bool(dl); err != nil {
		return iv, err
	}
	if iv.DirichletRight, err = ls.bool(dr); err != nil {
		return iv, err
	}
	return iv, nil
}

func (ls *lineScanner) errorf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrDeserialization, "line %d: "+format, append([]interface{}{ls.line}, args...)...)
}

func (ls *lineScanner) wrap(err error) error {
	return errors.Wrapf(errors.Mark(err, ErrDeserialization), "line %d", ls.line)
}
