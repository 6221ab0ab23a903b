package scene

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/island/internal/engine/gfx"
	"github.com/Faultbox/island/internal/engine/mesh"
)

// Island dimensions in world units.
const (
	IslandRadius = 14
	IslandPeak   = 3
	IslandDepth  = 5
)

var (
	sand  = Material{Color: mgl32.Vec3{0.86, 0.78, 0.55}, Shininess: 8, Specular: 0.1}
	bark  = Material{Color: mgl32.Vec3{0.45, 0.32, 0.2}, Shininess: 4, Specular: 0.05}
	leaf  = Material{Color: mgl32.Vec3{0.2, 0.55, 0.18}, Shininess: 16, Specular: 0.3}
	stone = Material{Color: mgl32.Vec3{0.5, 0.5, 0.52}, Shininess: 32, Specular: 0.4}
)

// Scene is the island content: lit instances plus the lamp marker mesh.
type Scene struct {
	Instances []*Instance
	Lamp      *mesh.Mesh

	meshes []*mesh.Mesh
}

// IslandHeight returns the island surface height at distance r from its
// center. It matches the profile of mesh.Island.
func IslandHeight(r float32) float32 {
	t := r / IslandRadius
	return IslandPeak - (IslandPeak+IslandDepth)*t*t
}

// BuildIsland uploads the island, its palms and rocks, and the lamp cube.
func BuildIsland(dev gfx.Device) *Scene {
	s := &Scene{}

	ground := s.upload(dev, mesh.Island(IslandRadius, IslandPeak, IslandDepth, 24, 48))
	trunk := s.upload(dev, mesh.Cylinder(0.18, 3.2, 10))
	crown := s.upload(dev, mesh.Cone(1.6, 0.7, 12))
	rock := s.upload(dev, mesh.Cube(1))
	s.Lamp = s.upload(dev, mesh.Cube(1))

	s.add("island", ground, mgl32.Ident4(), sand)

	palms := []struct {
		angle, r, lean float32
	}{
		{0.3, 2.5, 0.12},
		{2.1, 4.0, -0.18},
		{4.0, 3.2, 0.2},
		{5.2, 6.0, 0.25},
	}
	for _, p := range palms {
		base := polar(p.angle, p.r)
		base[1] = IslandHeight(p.r) - 0.1

		lean := mgl32.HomogRotate3DZ(p.lean).Mul4(mgl32.HomogRotate3DY(p.angle))
		trunkModel := mgl32.Translate3D(base.Elem()).Mul4(lean)
		s.add("palm trunk", trunk, trunkModel, bark)

		top := trunkModel.Mul4x1(mgl32.Vec4{0, 3.1, 0, 1}).Vec3()
		s.add("palm crown", crown, mgl32.Translate3D(top.Elem()), leaf)
	}

	// Rocks straddle the shoreline so both water passes have something to show.
	rocks := []struct {
		angle, r, size float32
	}{
		{1.0, 10.5, 1.4},
		{3.3, 11.5, 1.8},
		{4.7, 9.8, 1.1},
	}
	for _, k := range rocks {
		pos := polar(k.angle, k.r)
		pos[1] = IslandHeight(k.r)
		model := mgl32.Translate3D(pos.Elem()).
			Mul4(mgl32.HomogRotate3DY(k.angle * 2)).
			Mul4(mgl32.Scale3D(k.size, k.size*0.8, k.size))
		s.add("rock", rock, model, stone)
	}

	return s
}

func polar(angle, r float32) mgl32.Vec3 {
	a := float64(angle)
	return mgl32.Vec3{r * float32(math.Cos(a)), 0, r * float32(math.Sin(a))}
}

func (s *Scene) upload(dev gfx.Device, d *mesh.Data) *mesh.Mesh {
	m := mesh.Upload(dev, d)
	s.meshes = append(s.meshes, m)
	return m
}

func (s *Scene) add(name string, m *mesh.Mesh, model mgl32.Mat4, mat Material) {
	s.Instances = append(s.Instances, NewInstance(name, m, model, mat))
}

// Destroy releases all meshes.
func (s *Scene) Destroy() {
	for _, m := range s.meshes {
		m.Destroy()
	}
	s.meshes = nil
}
