package costmap

import (
	"image"
	"image/color"
	"math"
	"testing"

	"go.viam.com/test"
)

func TestGridConversions(t *testing.T) {
	g, err := NewGrid(10, 5, 0.5, -1, 2)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.SizeX(), test.ShouldEqual, 10)
	test.That(t, g.SizeY(), test.ShouldEqual, 5)
	test.That(t, g.Resolution(), test.ShouldEqual, 0.5)

	for _, c := range []Cell{{0, 0}, {9, 4}, {3, 2}} {
		wx, wy := g.MapToWorld(c)
		back, ok := g.WorldToMap(wx, wy)
		test.That(t, ok, test.ShouldBeTrue)
		test.That(t, back, test.ShouldResemble, c)
	}

	wx, wy := g.MapToWorld(Cell{0, 0})
	test.That(t, wx, test.ShouldAlmostEqual, -0.75)
	test.That(t, wy, test.ShouldAlmostEqual, 2.25)

	for _, pt := range [][2]float64{
		{-1.01, 2.1}, {-0.9, 1.9}, {4.0, 2.1}, {0, 4.5},
		{math.NaN(), 2.1}, {0, math.NaN()}, {math.Inf(1), 2.1}, {math.Inf(-1), 2.1}, {0, math.Inf(1)},
	} {
		_, ok := g.WorldToMap(pt[0], pt[1])
		test.That(t, ok, test.ShouldBeFalse)
	}

	_, err = NewGrid(0, 3, 1, 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
	_, err = NewGrid(3, 3, 0, 0, 0)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestGridCosts(t *testing.T) {
	g, err := NewGrid(4, 4, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	g.SetCost(Cell{1, 1}, LethalObstacle)
	g.SetCost(Cell{-1, 1}, LethalObstacle)
	test.That(t, g.Cost(Cell{1, 1}), test.ShouldEqual, LethalObstacle)
	test.That(t, g.Cost(Cell{5, 5}), test.ShouldEqual, NoInformation)

	g.Fill(Cell{3, 3}, Cell{2, 2}, InscribedInflatedObstacle)
	test.That(t, g.Cost(Cell{2, 3}), test.ShouldEqual, InscribedInflatedObstacle)
	test.That(t, IsImpassable(g.Cost(Cell{2, 2})), test.ShouldBeTrue)
	test.That(t, IsImpassable(NoInformation), test.ShouldBeFalse)

	clone := g.Clone()
	clone.SetCost(Cell{0, 0}, 9)
	test.That(t, g.Cost(Cell{0, 0}), test.ShouldEqual, FreeSpace)

	test.That(t, g.Resize(6, 2, NoInformation), test.ShouldBeNil)
	test.That(t, g.SizeX(), test.ShouldEqual, 6)
	test.That(t, g.Cost(Cell{1, 1}), test.ShouldEqual, LethalObstacle)
	test.That(t, g.Cost(Cell{5, 0}), test.ShouldEqual, NoInformation)
	test.That(t, g.Cost(Cell{2, 3}), test.ShouldEqual, NoInformation)
	test.That(t, g.Resize(0, 2, 0), test.ShouldNotBeNil)
}

func TestInflate(t *testing.T) {
	g, err := NewGrid(11, 11, 0.1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	g.SetCost(Cell{5, 5}, LethalObstacle)
	g.SetCost(Cell{0, 0}, NoInformation)

	cfg := InflationConfig{InscribedRadius: 0.15, InflationRadius: 0.4, CostScalingFactor: 5}
	test.That(t, Inflate(g, cfg), test.ShouldBeNil)

	test.That(t, g.Cost(Cell{5, 5}), test.ShouldEqual, LethalObstacle)
	test.That(t, g.Cost(Cell{6, 5}), test.ShouldEqual, InscribedInflatedObstacle)
	test.That(t, g.Cost(Cell{6, 6}), test.ShouldEqual, InscribedInflatedObstacle)
	near := g.Cost(Cell{7, 5})
	far := g.Cost(Cell{9, 5})
	test.That(t, near, test.ShouldBeLessThan, InscribedInflatedObstacle)
	test.That(t, near, test.ShouldBeGreaterThan, far)
	test.That(t, far, test.ShouldBeGreaterThan, FreeSpace)
	test.That(t, g.Cost(Cell{10, 5}), test.ShouldEqual, FreeSpace)
	test.That(t, g.Cost(Cell{0, 0}), test.ShouldEqual, NoInformation)

	test.That(t, Inflate(g, InflationConfig{InscribedRadius: 1, InflationRadius: 0.5}), test.ShouldNotBeNil)
}

func TestGridFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 3, 2))
	// top row: occupied, unknown, free
	img.Set(0, 0, color.NRGBA{0, 0, 0, 255})
	img.Set(1, 0, color.NRGBA{205, 205, 205, 255})
	img.Set(2, 0, color.NRGBA{255, 255, 255, 255})
	// bottom row: free, transparent, free
	img.Set(0, 1, color.NRGBA{254, 254, 254, 255})
	img.Set(1, 1, color.NRGBA{0, 0, 0, 0})
	img.Set(2, 1, color.NRGBA{255, 255, 255, 255})

	cfg := DefaultImageConfig()
	cfg.Resolution = 1
	g, err := GridFromImage(img, cfg)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, g.SizeX(), test.ShouldEqual, 3)
	test.That(t, g.SizeY(), test.ShouldEqual, 2)
	test.That(t, g.Cost(Cell{0, 1}), test.ShouldEqual, LethalObstacle)
	test.That(t, g.Cost(Cell{1, 1}), test.ShouldEqual, NoInformation)
	test.That(t, g.Cost(Cell{2, 1}), test.ShouldEqual, FreeSpace)
	test.That(t, g.Cost(Cell{0, 0}), test.ShouldEqual, FreeSpace)
	test.That(t, g.Cost(Cell{1, 0}), test.ShouldEqual, NoInformation)

	cfg.FreeThresh = 0.9
	_, err = GridFromImage(img, cfg)
	test.That(t, err, test.ShouldNotBeNil)
}

func TestStaticProvider(t *testing.T) {
	a, err := NewGrid(2, 2, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)
	b, err := NewGrid(3, 3, 1, 0, 0)
	test.That(t, err, test.ShouldBeNil)

	p := NewStaticProvider("map", a)
	test.That(t, p.GlobalFrame(), test.ShouldEqual, "map")
	test.That(t, p.Costmap(), test.ShouldEqual, a)
	p.Update(b)
	test.That(t, p.Costmap().SizeX(), test.ShouldEqual, 3)
}
