package mesh

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Cube returns an axis-aligned cube of the given edge length centered on
// the origin, with per-face normals.
func Cube(size float32) *Data {
	h := size / 2
	d := &Data{Name: "cube"}

	faces := []struct {
		normal, u, v mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	}

	for _, f := range faces {
		center := f.normal.Mul(h)
		du, dv := f.u.Mul(h), f.v.Mul(h)

		a := d.add(center.Sub(du).Sub(dv), f.normal, 0, 0)
		b := d.add(center.Add(du).Sub(dv), f.normal, 1, 0)
		c := d.add(center.Add(du).Add(dv), f.normal, 1, 1)
		e := d.add(center.Sub(du).Add(dv), f.normal, 0, 1)
		d.Indices = append(d.Indices, a, b, c, a, c, e)
	}
	return d
}

// Cylinder returns an open-ended cylinder standing on y = 0.
func Cylinder(radius, height float32, segments int) *Data {
	segments = max(segments, 3)
	d := &Data{Name: "cylinder"}

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		theta := float64(u) * 2 * math.Pi
		n := mgl32.Vec3{float32(math.Cos(theta)), 0, float32(math.Sin(theta))}
		p := n.Mul(radius)

		d.add(p, n, u, 0)
		d.add(mgl32.Vec3{p[0], height, p[2]}, n, u, 1)
	}

	for i := 0; i < segments; i++ {
		b0 := uint32(i * 2)
		t0, b1, t1 := b0+1, b0+2, b0+3
		d.Indices = append(d.Indices, b0, t0, b1, b1, t0, t1)
	}
	return d
}

// Cone returns a cone with its base on y = 0 and apex at y = height.
func Cone(radius, height float32, segments int) *Data {
	segments = max(segments, 3)
	d := &Data{Name: "cone"}

	slant := float32(math.Hypot(float64(radius), float64(height)))
	ny := radius / slant
	nr := height / slant

	for i := 0; i <= segments; i++ {
		u := float32(i) / float32(segments)
		theta := float64(u) * 2 * math.Pi
		cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))
		n := mgl32.Vec3{cos * nr, ny, sin * nr}

		d.add(mgl32.Vec3{cos * radius, 0, sin * radius}, n, u, 0)
		d.add(mgl32.Vec3{0, height, 0}, n, u, 1)
	}

	for i := 0; i < segments; i++ {
		b0 := uint32(i * 2)
		apex, b1 := b0+1, b0+2
		d.Indices = append(d.Indices, b0, apex, b1)
	}
	return d
}

// Island returns a radial heightfield that peaks at y = peak in the center
// and sinks to y = -depth at radius. The part below y = 0 is what the
// refraction pass sees through the water.
func Island(radius, peak, depth float32, rings, segments int) *Data {
	rings = max(rings, 1)
	segments = max(segments, 3)
	d := &Data{Name: "island"}

	span := peak + depth
	height := func(r float32) float32 {
		t := r / radius
		return peak - span*t*t
	}

	d.add(mgl32.Vec3{0, peak, 0}, mgl32.Vec3{0, 1, 0}, 0.5, 0.5)

	for ring := 1; ring <= rings; ring++ {
		r := radius * float32(ring) / float32(rings)
		y := height(r)
		// Slope of the profile: dy/dr = -2*span*r/radius^2.
		slope := 2 * span * r / (radius * radius)

		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) / float64(segments) * 2 * math.Pi
			cos, sin := float32(math.Cos(theta)), float32(math.Sin(theta))

			pos := mgl32.Vec3{cos * r, y, sin * r}
			n := mgl32.Vec3{cos * slope, 1, sin * slope}.Normalize()
			u := 0.5 + 0.5*cos*r/radius
			v := 0.5 + 0.5*sin*r/radius
			d.add(pos, n, u, v)
		}
	}

	row := uint32(segments + 1)
	// Center fan.
	for seg := uint32(0); seg < uint32(segments); seg++ {
		d.Indices = append(d.Indices, 0, 1+seg+1, 1+seg)
	}
	for ring := uint32(1); ring < uint32(rings); ring++ {
		inner := 1 + (ring-1)*row
		outer := 1 + ring*row
		for seg := uint32(0); seg < uint32(segments); seg++ {
			a, b := inner+seg, inner+seg+1
			c, e := outer+seg, outer+seg+1
			d.Indices = append(d.Indices, a, b, c, b, e, c)
		}
	}
	return d
}

// FromVertices wraps interleaved unindexed vertices.
func FromVertices(name string, vertices []float32) *Data {
	return &Data{Name: name, Vertices: vertices}
}
