// Package shaders embeds the default GLSL sources.
package shaders

import _ "embed"

//go:embed basic.vert
var BasicVertex string

//go:embed basic.frag
var BasicFragment string
