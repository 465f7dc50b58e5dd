package recorder

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

func TestDeviceRecords(t *testing.T) {
	d := New()
	d.SetCapability(metadata.CapabilityBlend, true)
	d.BindTexture(1, metadata.TextureTarget2D, 3)
	d.SetCapability(metadata.CapabilityBlend, false)

	assert.Equal(t, []string{OpSetCapability, OpBindTexture, OpSetCapability}, d.Ops())
	assert.Equal(t, 2, d.Count(OpSetCapability))
	assert.Equal(t, 1, d.Count(OpSetCapability, metadata.CapabilityBlend, true))
	assert.Equal(t, 1, d.Count(OpBindTexture, 1, metadata.TextureTarget2D, metadata.TextureHandle(3)))
	assert.Zero(t, d.Count(OpBindTexture, 1, metadata.TextureTarget2D, metadata.TextureHandle(4)))
	assert.Len(t, d.Filter(OpSetCapability), 2)

	d.Reset()
	assert.Empty(t, d.Calls)
}

func TestCallString(t *testing.T) {
	assert.Equal(t, "PushTransform", Call{Op: OpPushTransform}.String())
	assert.Equal(t, "SetLineWidth(2)", Call{Op: OpSetLineWidth, Args: []interface{}{float32(2)}}.String())
}

func TestSubmitRendersImmediately(t *testing.T) {
	d := New()
	d.Trace = true
	var got metadata.RenderInfo
	info := metadata.RenderInfo{Flags: metadata.RenderFlagBlend, Viewer: math.NewVec3(1, 2, 3)}

	d.Submit(metadata.RenderableFunc(func(i metadata.RenderInfo) { got = i }), info)
	assert.Equal(t, info, got)
	assert.Equal(t, 1, d.Count(OpSubmit, info))
}
