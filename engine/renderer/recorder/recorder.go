// Package recorder provides a graphics device that records every call it
// receives instead of talking to a GPU. Renderables submitted to it are
// rendered immediately so their own calls interleave with the state changes.
package recorder

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

const (
	OpSetCapability     = "SetCapability"
	OpSetClientArray    = "SetClientArray"
	OpSetPolygonMode    = "SetPolygonMode"
	OpSetShadeModel     = "SetShadeModel"
	OpSetDepthMask      = "SetDepthMask"
	OpSetColourMask     = "SetColourMask"
	OpSetDepthFunc      = "SetDepthFunc"
	OpSetAlphaFunc      = "SetAlphaFunc"
	OpSetBlendFunc      = "SetBlendFunc"
	OpSetLineStipple    = "SetLineStipple"
	OpSetPolygonOffset  = "SetPolygonOffset"
	OpSetLineWidth      = "SetLineWidth"
	OpSetPointSize      = "SetPointSize"
	OpSetColour         = "SetColour"
	OpSelectTextureUnit = "SelectTextureUnit"
	OpBindTexture       = "BindTexture"
	OpSetTextureWrap    = "SetTextureWrap"
	OpLoadTextureMatrix = "LoadTextureMatrix"
	OpPushTransform     = "PushTransform"
	OpPopTransform      = "PopTransform"
	OpMultiplyTransform = "MultiplyTransform"
	OpSetFrontFace      = "SetFrontFace"
	OpDrawScreenQuad    = "DrawScreenQuad"
	OpSubmit            = "Submit"
)

type Call struct {
	Op   string
	Args []interface{}
}

func (c Call) String() string {
	if len(c.Args) == 0 {
		return c.Op
	}
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = fmt.Sprint(a)
	}
	return c.Op + "(" + strings.Join(args, ", ") + ")"
}

// Matches reports whether the call is op and its leading arguments equal args.
func (c Call) Matches(op string, args ...interface{}) bool {
	if c.Op != op || len(args) > len(c.Args) {
		return false
	}
	for i, a := range args {
		if c.Args[i] != a {
			return false
		}
	}
	return true
}

type Device struct {
	Calls []Call
	/** @brief Logs every call at debug level when set. */
	Trace bool
}

func New() *Device {
	return &Device{}
}

func (d *Device) record(op string, args ...interface{}) {
	call := Call{Op: op, Args: args}
	d.Calls = append(d.Calls, call)
	if d.Trace {
		core.LogDebug("device: %s", call)
	}
}

// Count returns how many calls match op and the leading args.
func (d *Device) Count(op string, args ...interface{}) int {
	n := 0
	for _, c := range d.Calls {
		if c.Matches(op, args...) {
			n++
		}
	}
	return n
}

// Filter returns the calls to op in order.
func (d *Device) Filter(op string) []Call {
	var calls []Call
	for _, c := range d.Calls {
		if c.Op == op {
			calls = append(calls, c)
		}
	}
	return calls
}

// Ops lists the operation names in call order.
func (d *Device) Ops() []string {
	ops := make([]string, len(d.Calls))
	for i, c := range d.Calls {
		ops[i] = c.Op
	}
	return ops
}

// Reset forgets all recorded calls.
func (d *Device) Reset() {
	d.Calls = d.Calls[:0]
}

func (d *Device) SetCapability(capability metadata.Capability, enabled bool) {
	d.record(OpSetCapability, capability, enabled)
}

func (d *Device) SetClientArray(array metadata.ClientArray, enabled bool) {
	d.record(OpSetClientArray, array, enabled)
}

func (d *Device) SetPolygonMode(mode metadata.PolygonMode) {
	d.record(OpSetPolygonMode, mode)
}

func (d *Device) SetShadeModel(model metadata.ShadeModel) {
	d.record(OpSetShadeModel, model)
}

func (d *Device) SetDepthMask(enabled bool) {
	d.record(OpSetDepthMask, enabled)
}

func (d *Device) SetColourMask(enabled bool) {
	d.record(OpSetColourMask, enabled)
}

func (d *Device) SetDepthFunc(fn metadata.CompareFunc) {
	d.record(OpSetDepthFunc, fn)
}

func (d *Device) SetAlphaFunc(fn metadata.CompareFunc, threshold float32) {
	d.record(OpSetAlphaFunc, fn, threshold)
}

func (d *Device) SetBlendFunc(src, dst metadata.BlendFactor) {
	d.record(OpSetBlendFunc, src, dst)
}

func (d *Device) SetLineStipple(factor int32, pattern uint16) {
	d.record(OpSetLineStipple, factor, pattern)
}

func (d *Device) SetPolygonOffset(factor, units float32) {
	d.record(OpSetPolygonOffset, factor, units)
}

func (d *Device) SetLineWidth(width float32) {
	d.record(OpSetLineWidth, width)
}

func (d *Device) SetPointSize(size float32) {
	d.record(OpSetPointSize, size)
}

func (d *Device) SetColour(colour math.Vec4) {
	d.record(OpSetColour, colour)
}

func (d *Device) SelectTextureUnit(unit int) {
	d.record(OpSelectTextureUnit, unit)
}

func (d *Device) BindTexture(unit int, target metadata.TextureTarget, texture metadata.TextureHandle) {
	d.record(OpBindTexture, unit, target, texture)
}

func (d *Device) SetTextureWrap(target metadata.TextureTarget, wrap metadata.TextureWrap) {
	d.record(OpSetTextureWrap, target, wrap)
}

func (d *Device) LoadTextureMatrix(unit int, matrix math.Mat4) {
	d.record(OpLoadTextureMatrix, unit, matrix)
}

func (d *Device) PushTransform() {
	d.record(OpPushTransform)
}

func (d *Device) PopTransform() {
	d.record(OpPopTransform)
}

func (d *Device) MultiplyTransform(matrix math.Mat4) {
	d.record(OpMultiplyTransform, matrix)
}

func (d *Device) SetFrontFace(winding metadata.Winding) {
	d.record(OpSetFrontFace, winding)
}

func (d *Device) DrawScreenQuad() {
	d.record(OpDrawScreenQuad)
}

func (d *Device) Submit(renderable metadata.Renderable, info metadata.RenderInfo) {
	d.record(OpSubmit, info)
	renderable.Render(info)
}
