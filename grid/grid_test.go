package grid_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
	"gopkg.in/yaml.v3"

	"github.com/SGpp/SGpp-sub016/basis"
	"github.com/SGpp/SGpp-sub016/functor"
	"github.com/SGpp/SGpp-sub016/grid"
	"github.com/SGpp/SGpp-sub016/storage"
)

func TestType_Tags(t *testing.T) {
	for _, typ := range []grid.Type{grid.Linear, grid.LinearBoundary, grid.ModLinear} {
		back, err := grid.ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, back)
	}
	_, err := grid.ParseType("polynomial")
	require.ErrorIs(t, err, grid.ErrUnknownType)
	require.Equal(t, "unknown", grid.Type(42).String())

	require.IsType(t, basis.LinearBoundary{}, grid.LinearBoundary.Basis())
	require.IsType(t, basis.ModLinear{}, grid.ModLinear.Basis())
	require.True(t, grid.LinearBoundary.Boundary())
	require.False(t, grid.ModLinear.Boundary())
}

func TestNew_Errors(t *testing.T) {
	_, err := grid.New(grid.Type(9), 2)
	require.ErrorIs(t, err, grid.ErrUnknownType)
	_, err = grid.NewLinearGrid(0)
	require.ErrorIs(t, err, storage.ErrInvalidDimension)
}

func TestGenerator_ConfiguredForType(t *testing.T) {
	g, err := grid.NewLinearBoundaryGrid(2, grid.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	gen, err := g.Generator()
	require.NoError(t, err)
	require.True(t, gen.Boundary())
	require.NoError(t, gen.Regular(3))
	require.Equal(t, 49, g.Size())

	m, err := grid.NewModLinearGrid(2, grid.WithMaxLevel(3))
	require.NoError(t, err)
	gen, err = m.Generator()
	require.NoError(t, err)
	require.False(t, gen.Boundary())
	require.Equal(t, storage.Level(3), gen.MaxLevel())
	require.NoError(t, gen.Regular(3))
	require.Equal(t, 17, m.Size())
}

func TestSerialize_RoundTrip(t *testing.T) {
	g, err := grid.NewLinearBoundaryGrid(2)
	require.NoError(t, err)
	gen, err := g.Generator()
	require.NoError(t, err)
	require.NoError(t, gen.Regular(2))
	alpha := make([]float64, g.Size())
	alpha[len(alpha)-1] = 1
	_, err = gen.Refine(functor.NewSurplusRefinement(alpha, 1, 0))
	require.NoError(t, err)

	s := g.String()
	require.True(t, strings.HasPrefix(s, "grid linearBoundary\nstorage 1 2 "))

	back, err := grid.UnserializeString(s)
	require.NoError(t, err)
	require.Equal(t, grid.LinearBoundary, back.Type())
	require.Equal(t, g.Size(), back.Size())
	require.Equal(t, s, back.String())
	for seq := 0; seq < g.Size(); seq++ {
		require.Equal(t, g.Storage().IsLeaf(seq), back.Storage().IsLeaf(seq))
	}
}

func TestUnserialize_Errors(t *testing.T) {
	cases := map[string]string{
		"Empty":         "",
		"NoHeader":      "storage 1 1 0\nunitcube\n",
		"UnknownType":   "grid wavelet\nstorage 1 1 0\nunitcube\n",
		"BadStorage":    "grid linear\nstorage 1 1 2\n1 1 1\nunitcube\n",
		"BoundaryPoint": "grid linear\nstorage 1 1 1\n0 0 1\nunitcube\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			g, err := grid.UnserializeString(in)
			require.ErrorIs(t, err, grid.ErrDeserialization)
			require.Nil(t, g)
		})
	}
}

//----------------------------------------------------------------------------//
// YAML config
//----------------------------------------------------------------------------//

const sampleConfig = `
type: linearBoundary
dim: 2
level: 3
maxLevel: 6
boundingBox:
  - {left: 0, right: 2}
  - {left: -1, right: 1, dirichletLeft: true}
`

func TestLoadConfig_Build(t *testing.T) {
	c, err := grid.LoadConfig(strings.NewReader(sampleConfig))
	require.NoError(t, err)
	require.Equal(t, grid.LinearBoundary, c.Type)
	require.Equal(t, storage.Level(6), c.MaxLevel)

	g, err := c.Build(grid.WithLogger(zaptest.NewLogger(t)))
	require.NoError(t, err)
	require.Equal(t, 49, g.Size())
	bb := g.Storage().BoundingBox()
	require.Equal(t, 2.0, bb.Width(0))
	require.True(t, bb.Interval(1).DirichletLeft)

	gen, err := g.Generator()
	require.NoError(t, err)
	require.Equal(t, storage.Level(6), gen.MaxLevel())

	out, err := yaml.Marshal(c)
	require.NoError(t, err)
	require.Contains(t, string(out), "type: linearBoundary")
	again, err := grid.LoadConfig(strings.NewReader(string(out)))
	require.NoError(t, err)
	require.Equal(t, c, again)
}

func TestLoadConfig_Errors(t *testing.T) {
	cases := map[string]string{
		"UnknownType":  "type: sinc\ndim: 1\nlevel: 1\n",
		"UnknownField": "type: linear\ndim: 1\nlevel: 1\ncolour: red\n",
		"ZeroDim":      "type: linear\ndim: 0\nlevel: 1\n",
		"ZeroLevel":    "type: linear\ndim: 1\nlevel: 0\n",
		"CapBelow":     "type: linear\ndim: 1\nlevel: 3\nmaxLevel: 2\n",
		"BoxDims":      "type: linear\ndim: 2\nlevel: 1\nboundingBox:\n  - {left: 0, right: 1}\n",
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := grid.LoadConfig(strings.NewReader(in))
			require.ErrorIs(t, err, grid.ErrInvalidConfig)
		})
	}

	c := grid.Config{Type: grid.Linear, Dim: 1, Level: 1, BoundingBox: []grid.IntervalConfig{{Left: 1, Right: 1}}}
	_, err := c.Build()
	require.ErrorIs(t, err, grid.ErrInvalidConfig)
}
