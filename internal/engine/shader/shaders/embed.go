// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// LitVertexShader transforms meshes for the lit pass.
//
//go:embed lit.vert
var LitVertexShader string

// LitFragmentShader shades meshes with diffuse/specular maps and scene lights.
//
//go:embed lit.frag
var LitFragmentShader string

// LineVertexShader is the vertex shader for colored debug lines.
//
//go:embed line.vert
var LineVertexShader string

// LineFragmentShader is the fragment shader for colored debug lines.
//
//go:embed line.frag
var LineFragmentShader string

// SkyboxVertexShader draws the cubemap box around the camera.
//
//go:embed skybox.vert
var SkyboxVertexShader string

// SkyboxFragmentShader samples the skybox cubemap.
//
//go:embed skybox.frag
var SkyboxFragmentShader string
