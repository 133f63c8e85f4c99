package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/SGpp/SGpp-sub016/basis"
	"github.com/SGpp/SGpp-sub016/generator"
	"github.com/SGpp/SGpp-sub016/storage"
)

// Grid couples a storage with its type. The grid owns the storage: callers
// mutate it only through the generator returned by Generator.
type Grid struct {
	typ  Type
	st   *storage.Storage
	opts Options
}

// New returns an empty grid of type t and dimension dim.
//
// Errors: ErrUnknownType, storage.ErrInvalidDimension.
func New(t Type, dim int, opts ...Option) (*Grid, error) {
	if !t.valid() {
		return nil, errors.Wrapf(ErrUnknownType, "%d", int(t))
	}
	st, err := storage.New(dim)
	if err != nil {
		return nil, err
	}
	return wrap(t, st, opts), nil
}

func wrap(t Type, st *storage.Storage, opts []Option) *Grid {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Grid{typ: t, st: st, opts: o}
}

// NewLinearGrid returns an empty Linear grid.
func NewLinearGrid(dim int, opts ...Option) (*Grid, error) { return New(Linear, dim, opts...) }

// NewLinearBoundaryGrid returns an empty LinearBoundary grid.
func NewLinearBoundaryGrid(dim int, opts ...Option) (*Grid, error) {
	return New(LinearBoundary, dim, opts...)
}

// NewModLinearGrid returns an empty ModLinear grid.
func NewModLinearGrid(dim int, opts ...Option) (*Grid, error) { return New(ModLinear, dim, opts...) }

// Type returns the grid type.
func (g *Grid) Type() Type { return g.typ }

// Storage returns the underlying storage.
func (g *Grid) Storage() *storage.Storage { return g.st }

// Basis returns the basis family of the grid type.
func (g *Grid) Basis() basis.Basis { return g.typ.Basis() }

// Dim returns the dimensionality.
func (g *Grid) Dim() int { return g.st.Dim() }

// Size returns the number of points.
func (g *Grid) Size() int { return g.st.Size() }

// Boundary reports whether the grid carries boundary points.
func (g *Grid) Boundary() bool { return g.typ.Boundary() }

// Logger returns the configured logger.
func (g *Grid) Logger() *zap.Logger { return g.opts.Logger }

// Generator returns a generator bound to the grid's storage, configured for
// the grid type. Extra options are applied after the grid's own.
func (g *Grid) Generator(extra ...generator.Option) (*generator.Generator, error) {
	opts := []generator.Option{
		generator.WithBoundary(g.typ.Boundary()),
		generator.WithMaxLevel(g.opts.MaxLevel),
		generator.WithWorkers(g.opts.Workers),
		generator.WithLogger(g.opts.Logger),
	}
	return generator.New(g.st, append(opts, extra...)...)
}

// Serialize writes "grid <type>" followed by the storage block.
func (g *Grid) Serialize(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "grid %s\n", g.typ); err != nil {
		return errors.Wrap(err, "grid: serialize")
	}
	return g.st.Serialize(w)
}

// String returns the serialized form.
func (g *Grid) String() string {
	var sb strings.Builder
	_ = g.Serialize(&sb)
	return sb.String()
}

// Unserialize parses the output of Serialize. Grids without boundary
// support must not contain level-0 points. No partial grid is returned on
// error.
//
// Errors: ErrDeserialization (matched by storage.ErrDeserialization too).
func Unserialize(r io.Reader, opts ...Option) (*Grid, error) {
	br := bufio.NewReader(r)
	header, err := br.ReadString('\n')
	if err != nil && header == "" {
		return nil, errors.Mark(errors.Wrap(err, "grid: missing header"), ErrDeserialization)
	}
	fields := strings.Fields(header)
	if len(fields) != 2 || fields[0] != "grid" {
		return nil, errors.Wrapf(ErrDeserialization, "grid: bad header %q", strings.TrimSpace(header))
	}
	t, err := ParseType(fields[1])
	if err != nil {
		return nil, errors.Mark(err, ErrDeserialization)
	}
	st, err := storage.Unserialize(br)
	if err != nil {
		return nil, err
	}
	if !t.Boundary() {
		for seq, p := range st.Points() {
			if !p.IsInner() {
				return nil, errors.Wrapf(ErrDeserialization, "grid: %s grid holds boundary point %s at seq %d", t, p, seq)
			}
		}
	}
	return wrap(t, st, opts), nil
}

// UnserializeString is Unserialize on a string.
func UnserializeString(s string, opts ...Option) (*Grid, error) {
	return Unserialize(strings.NewReader(s), opts...)
}
