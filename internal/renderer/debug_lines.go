package renderer

import (
	"github.com/go-gl/gl/v4.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// lineVertexFloats is position (3) + color (4).
const lineVertexFloats = 7

// LineBatch collects colored line segments and draws them in one call.
// It implements lightgrid.LineDrawer.
type LineBatch struct {
	vertices []float32
	shader   Shader
	uniforms *UniformCache
	vao, vbo uint32
	vboSize  int
}

func NewLineBatch() (*LineBatch, error) {
	b := &LineBatch{shader: InitLineShader()}
	if err := b.shader.Compile(); err != nil {
		return nil, err
	}
	b.uniforms = NewUniformCache(b.shader.Program())

	gl.GenVertexArrays(1, &b.vao)
	gl.GenBuffers(1, &b.vbo)
	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	stride := int32(lineVertexFloats * 4)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, stride, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 4, gl.FLOAT, false, stride, gl.PtrOffset(3*4))
	gl.EnableVertexAttribArray(1)
	gl.BindVertexArray(0)
	return b, nil
}

func (b *LineBatch) DrawLine(p0, p1 mgl32.Vec3, color mgl32.Vec4) {
	b.vertices = append(b.vertices,
		p0[0], p0[1], p0[2], color[0], color[1], color[2], color[3],
		p1[0], p1[1], p1[2], color[0], color[1], color[2], color[3],
	)
}

// Len returns the number of queued segments.
func (b *LineBatch) Len() int {
	return len(b.vertices) / (2 * lineVertexFloats)
}

// Reset drops queued segments without drawing them.
func (b *LineBatch) Reset() {
	b.vertices = b.vertices[:0]
}

// Flush draws every queued segment and empties the batch.
func (b *LineBatch) Flush(viewProjection mgl32.Mat4) {
	if len(b.vertices) == 0 {
		return
	}
	b.shader.Use()
	b.uniforms.SetMat4("viewProjection", viewProjection)

	gl.BindVertexArray(b.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.vbo)
	size := len(b.vertices) * 4
	if size > b.vboSize {
		gl.BufferData(gl.ARRAY_BUFFER, size, gl.Ptr(b.vertices), gl.STREAM_DRAW)
		b.vboSize = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, gl.Ptr(b.vertices))
	}
	gl.DrawArrays(gl.LINES, 0, int32(len(b.vertices)/lineVertexFloats))
	gl.BindVertexArray(0)
	b.Reset()
}

func (b *LineBatch) Delete() {
	gl.DeleteBuffers(1, &b.vbo)
	gl.DeleteVertexArrays(1, &b.vao)
	b.shader.Delete()
}
