// Package present blits composed RGBA frames to the current OpenGL context.
//
// A Presenter owns one texture and a fullscreen quad. Upload replaces the
// texture contents with a frame; Draw stretches it over the viewport. The
// caller must keep the GL context current on the calling goroutine and have
// called gl.Init.
package present

import (
	"fmt"
	"image"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

const quadVertSrc = `#version 410 core

layout(location = 0) in vec2 aPos; // 0..1 quad vertex

out vec2 vUV;

void main() {
    vUV = vec2(aPos.x, 1.0 - aPos.y);
    gl_Position = vec4(aPos * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

// Frames hold premultiplied alpha over an opaque background, so alpha is
// dropped.
const quadFragSrc = `#version 410 core

uniform sampler2D uFrame;

in vec2 vUV;
out vec4 FragColor;

void main() {
    FragColor = vec4(texture(uFrame, vUV).rgb, 1.0);
}
` + "\x00"

// Presenter draws frames with a textured quad.
type Presenter struct {
	prog uint32
	vao  uint32
	vbo  uint32
	tex  uint32

	texW, texH int
}

// New compiles the blit program and allocates the quad.
func New() (*Presenter, error) {
	prog, err := linkProgram(quadVertSrc, quadFragSrc)
	if err != nil {
		return nil, err
	}
	p := &Presenter{prog: prog}

	gl.GenVertexArrays(1, &p.vao)
	gl.GenBuffers(1, &p.vbo)
	gl.BindVertexArray(p.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, p.vbo)

	quad := [12]float32{
		0, 0, 1, 0, 1, 1,
		0, 0, 1, 1, 0, 1,
	}
	gl.BufferData(gl.ARRAY_BUFFER, len(quad)*4, gl.Ptr(&quad[0]), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, offset(0))

	gl.UseProgram(prog)
	gl.Uniform1i(gl.GetUniformLocation(prog, gl.Str("uFrame\x00")), 0)

	gl.GenTextures(1, &p.tex)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)

	return p, nil
}

// Upload copies frame into the texture, reallocating it when the size
// changes.
func (p *Presenter) Upload(frame *image.RGBA) {
	b := frame.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(frame.Stride/4))
	defer gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)

	if w != p.texW || h != p.texH {
		gl.TexImage2D(
			gl.TEXTURE_2D, 0, gl.RGBA8,
			int32(w), int32(h), 0,
			gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix),
		)
		p.texW, p.texH = w, h
		return
	}
	gl.TexSubImage2D(
		gl.TEXTURE_2D, 0, 0, 0,
		int32(w), int32(h),
		gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(frame.Pix),
	)
}

// Draw renders the texture into a framebuffer of fbW x fbH pixels.
func (p *Presenter) Draw(fbW, fbH int) {
	if p.texW == 0 {
		return
	}
	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.ClearColor(0, 0, 0, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT)

	gl.UseProgram(p.prog)
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, p.tex)
	gl.BindVertexArray(p.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, 6)
}

// Destroy releases the GL objects.
func (p *Presenter) Destroy() {
	gl.DeleteTextures(1, &p.tex)
	gl.DeleteBuffers(1, &p.vbo)
	gl.DeleteVertexArrays(1, &p.vao)
	gl.DeleteProgram(p.prog)
}

func offset(n int) unsafe.Pointer { return unsafe.Pointer(uintptr(n)) }

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &n)
		buf := strings.Repeat("\x00", int(n+1))
		gl.GetShaderInfoLog(shader, n, nil, gl.Str(buf))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("present: compile shader: %s", strings.TrimRight(buf, "\x00"))
	}
	return shader, nil
}

func linkProgram(vertSrc, fragSrc string) (uint32, error) {
	vs, err := compileShader(vertSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := compileShader(fragSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}

	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)
	gl.DetachShader(prog, vs)
	gl.DetachShader(prog, fs)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var n int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &n)
		buf := strings.Repeat("\x00", int(n+1))
		gl.GetProgramInfoLog(prog, n, nil, gl.Str(buf))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("present: link program: %s", strings.TrimRight(buf, "\x00"))
	}
	return prog, nil
}
