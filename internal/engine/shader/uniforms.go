package shader

// Parameter names declared by the viewer shaders.
const (
	UniformView       = "viewMat"
	UniformProjection = "projMat"
	UniformModel      = "modelMat"
	UniformNormal     = "normMat"
	UniformLightPos   = "light.pos"
	UniformLightColor = "light.color"
)

// Uniforms lists every parameter the renderer writes.
var Uniforms = []string{
	UniformView,
	UniformProjection,
	UniformModel,
	UniformNormal,
	UniformLightPos,
	UniformLightColor,
}
