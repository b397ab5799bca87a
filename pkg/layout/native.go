package layout

import (
	"math"
	"math/rand/v2"
)

// circle spaces n points evenly on the unit circle, clockwise from
// 12 o'clock.
func circle(n int) []point {
	pts := make([]point, n)
	for i := range pts {
		a := math.Pi/2 - 2*math.Pi*float64(i)/float64(n)
		pts[i] = point{math.Cos(a), math.Sin(a)}
	}
	return pts
}

// random draws n points uniformly from the unit square.
func random(n int, seed int64) []point {
	r := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
	pts := make([]point, n)
	for i := range pts {
		pts[i] = point{r.Float64(), r.Float64()}
	}
	return pts
}

// normalize fits pts into a w x h frame inside [Margin], keeping the aspect
// ratio and centring the drawing. A degenerate drawing collapses onto the
// frame centre. Input y grows upwards, output y grows downwards.
func normalize(pts []point, w, h float64) []point {
	if len(pts) == 0 {
		return pts
	}
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	for _, p := range pts {
		minX, maxX = math.Min(minX, p.x), math.Max(maxX, p.x)
		minY, maxY = math.Min(minY, p.y), math.Max(maxY, p.y)
	}
	innerW := math.Max(w-2*Margin, 0)
	innerH := math.Max(h-2*Margin, 0)
	dx, dy := maxX-minX, maxY-minY

	scale := math.Inf(1)
	if dx > 0 {
		scale = innerW / dx
	}
	if dy > 0 {
		scale = math.Min(scale, innerH/dy)
	}
	if math.IsInf(scale, 1) {
		scale = 0
	}

	offX := (w - dx*scale) / 2
	offY := (h - dy*scale) / 2
	out := make([]point, len(pts))
	for i, p := range pts {
		out[i] = point{
			x: offX + (p.x-minX)*scale,
			y: h - (offY + (p.y-minY)*scale),
		}
	}
	return out
}
