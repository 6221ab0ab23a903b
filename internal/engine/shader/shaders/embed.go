// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// SceneVertex transforms lit scene geometry and writes the water clip distance.
//
//go:embed scene.vert
var SceneVertex string

// SceneFragment shades scene geometry with one directional and one point light.
//
//go:embed scene.frag
var SceneFragment string

// WaterVertex projects the water quad and passes clip space to the fragment stage.
//
//go:embed water.vert
var WaterVertex string

// WaterFragment combines the reflection and refraction targets.
//
//go:embed water.frag
var WaterFragment string

// LampVertex draws the point light marker.
//
//go:embed lamp.vert
var LampVertex string

// LampFragment outputs the lamp's flat color.
//
//go:embed lamp.frag
var LampFragment string
