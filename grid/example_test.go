package grid_test

import (
	"fmt"
	"strings"

	"github.com/SGpp/SGpp-sub016/grid"
)

func ExampleNewLinearBoundaryGrid() {
	g, _ := grid.NewLinearBoundaryGrid(2)
	gen, _ := g.Generator()
	_ = gen.Regular(3)
	fmt.Println(g.Type(), g.Dim(), g.Size())
	fmt.Println(gen.Regular(3) != nil)
	// Output:
	// linearBoundary 2 49
	// true
}

func ExampleLoadConfig() {
	c, _ := grid.LoadConfig(strings.NewReader("type: linear\ndim: 3\nlevel: 3\n"))
	g, _ := c.Build()
	fmt.Println(g.Size())
	// Output:
	// 31
}
