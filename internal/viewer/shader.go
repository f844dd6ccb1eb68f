package viewer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const partVertexShader = `#version 410 core
layout(location = 0) in vec3 aPosition;
layout(location = 1) in vec3 aNormal;
layout(location = 2) in vec2 aUV;

uniform mat4 uMVP;

out vec3 vNormal;
out vec2 vUV;

void main() {
	vNormal = aNormal;
	vUV = aUV;
	gl_Position = uMVP * vec4(aPosition, 1.0);
}
`

// The fragment shader paints a checker in UV space so stretching and seams
// are visible without a texture.
const partFragmentShader = `#version 410 core
in vec3 vNormal;
in vec2 vUV;

uniform vec3 uLightDir;
uniform vec3 uTint;
uniform float uChecker;
uniform int uWireframe;

out vec4 fragColor;

void main() {
	if (uWireframe == 1) {
		fragColor = vec4(0.05, 0.05, 0.05, 1.0);
		return;
	}
	vec3 n = normalize(vNormal);
	float diffuse = max(dot(n, normalize(uLightDir)), 0.0);
	vec2 cell = floor(vUV * uChecker);
	float check = mod(cell.x + cell.y, 2.0) * 0.25 + 0.75;
	vec3 color = uTint * check * (0.3 + 0.7 * diffuse);
	fragColor = vec4(color, 1.0);
}
`

// compileProgram compiles vertex and fragment shaders and links them.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	vert, err := compileShader(vertexSrc, gl.VERTEX_SHADER, "vertex")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vert)

	frag, err := compileShader(fragmentSrc, gl.FRAGMENT_SHADER, "fragment")
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(frag)

	program := gl.CreateProgram()
	gl.AttachShader(program, vert)
	gl.AttachShader(program, frag)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetProgramInfoLog(program, logLen, nil, &log[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link: %s", string(log))
	}
	return program, nil
}

func compileShader(source string, shaderType uint32, name string) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csource, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csource, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLen)
		log := make([]byte, logLen+1)
		gl.GetShaderInfoLog(shader, logLen, nil, &log[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("%s shader: %s", name, string(log))
	}
	return shader, nil
}

func uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}
