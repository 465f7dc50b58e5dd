package renderer

import (
	"errors"
	"fmt"

	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/engine/math"
	"github.com/spaghettifunk/brushwork/engine/renderer/metadata"
)

var ErrUnknownPass = errors.New("pass is not owned by this renderer")

/** @brief The device flags the renderer assumes after ResetState. */
const ResetFlags = metadata.RenderFlagFill | metadata.RenderFlagDepthWrite | metadata.RenderFlagColourWrite

/** @brief Per-frame inputs of Render. */
type FrameParams struct {
	/** @brief The flags passes are allowed to enable this frame. */
	GlobalMask metadata.RenderFlags
	/** @brief The world space viewer position. */
	Viewer math.Vec3
	/** @brief Frame time in milliseconds, drives stage expressions. */
	Time uint64
	/**
	 * @brief Forces the device and the accumulator back to defaults before the
	 * first pass. Otherwise the state the previous frame left is carried over.
	 */
	ResetState bool
}

type FrameStats struct {
	PassesVisited int
	PassesSkipped int
	Renderables   int
}

/**
 * @brief Owns the passes and draws them once per frame in ascending sort
 * order. A single accumulator describing the device state is threaded through
 * all passes so each only emits what differs from its predecessor.
 */
type Renderer struct {
	device  Device
	ids     *core.IdentifierPool
	passes  []*ShaderPass
	seq     map[*ShaderPass]uint64
	nextSeq uint64
	current metadata.RenderState
}

func New(device Device) *Renderer {
	r := &Renderer{
		device:  device,
		ids:     core.NewIdentifierPool(64),
		seq:     make(map[*ShaderPass]uint64),
		current: metadata.NewRenderState(),
	}
	r.current.Flags = ResetFlags
	return r
}

/**
 * @brief Creates a pass drawing with state and inserts it in sort order.
 * Passes with equal sort keep their creation order.
 */
func (r *Renderer) CreatePass(name string, state metadata.RenderState) *ShaderPass {
	pass := newShaderPass(0, name, state, r.device)
	pass.ID = r.ids.Acquire(pass)

	r.seq[pass] = r.nextSeq
	r.nextSeq++
	r.passes = append(r.passes, pass)
	r.Resort()

	core.LogDebug("created pass %d '%s' (sort %d)", pass.ID, name, state.Sort)
	return pass
}

// DestroyPass removes pass and frees its id.
func (r *Renderer) DestroyPass(pass *ShaderPass) error {
	i := slices.Index(r.passes, pass)
	if i < 0 {
		return fmt.Errorf("destroy pass '%s': %w", pass.Name, ErrUnknownPass)
	}
	r.passes = slices.Delete(r.passes, i, i+1)
	delete(r.seq, pass)
	if err := r.ids.Release(pass.ID); err != nil {
		return fmt.Errorf("destroy pass '%s': %w", pass.Name, err)
	}
	core.LogDebug("destroyed pass %d '%s'", pass.ID, pass.Name)
	return nil
}

/** @brief Re-establishes the pass order after Sort values changed. */
func (r *Renderer) Resort() {
	slices.SortStableFunc(r.passes, func(a, b *ShaderPass) int {
		if a.state.Sort != b.state.Sort {
			if a.state.Sort < b.state.Sort {
				return -1
			}
			return 1
		}
		if r.seq[a] < r.seq[b] {
			return -1
		}
		if r.seq[a] > r.seq[b] {
			return 1
		}
		return 0
	})
}

/** @brief The passes in render order. */
func (r *Renderer) Passes() []*ShaderPass {
	return slices.Clone(r.passes)
}

/** @brief Looks a pass up by id. */
func (r *Renderer) Pass(id uint32) *ShaderPass {
	pass, _ := r.ids.Owner(id).(*ShaderPass)
	return pass
}

/** @brief The accumulator describing what is set on the device. */
func (r *Renderer) Current() *metadata.RenderState {
	return &r.current
}

/**
 * @brief Puts the device into a known state and makes the accumulator match it:
 * filled polygons with depth and colour writes on, everything else off, no
 * textures bound, identity texture matrices, no program.
 */
func (r *Renderer) ResetState() {
	d := r.device
	defaults := metadata.NewRenderState()

	if r.current.Program != nil {
		r.current.Program.Disable()
	}

	for c := metadata.CapabilityLineStipple; c <= metadata.CapabilityTextureCubeMap; c++ {
		d.SetCapability(c, false)
	}
	for a := metadata.ClientArrayNormal; a <= metadata.ClientArrayTexCoord; a++ {
		d.SetClientArray(a, false)
	}
	d.SetPolygonMode(metadata.PolygonModeFill)
	d.SetShadeModel(metadata.ShadeModelFlat)
	d.SetDepthMask(true)
	d.SetColourMask(true)
	d.SetDepthFunc(defaults.DepthFunc)
	d.SetAlphaFunc(defaults.AlphaFunc, defaults.AlphaThreshold)
	d.SetBlendFunc(defaults.BlendSrc, defaults.BlendDst)
	d.SetLineStipple(defaults.LineStippleFactor, defaults.LineStipplePattern)
	d.SetLineWidth(defaults.LineWidth)
	d.SetPointSize(defaults.PointSize)
	d.SetColour(defaults.Colour)
	for unit := 0; unit < metadata.MaxTextureUnits; unit++ {
		d.BindTexture(unit, metadata.TextureTarget2D, 0)
		d.LoadTextureMatrix(unit, math.NewMat4Identity())
	}
	d.SelectTextureUnit(0)
	d.SetFrontFace(metadata.WindingCCW)

	r.current = defaults
	r.current.Flags = ResetFlags
}

/**
 * @brief Draws every pass in sort order and empties their queues. Passes with a
 * hidden stage are skipped and their queues dropped.
 */
func (r *Renderer) Render(params FrameParams) FrameStats {
	if params.ResetState {
		r.ResetState()
	}

	stats := FrameStats{}
	for _, pass := range r.passes {
		pass.evaluateStages(params.Time, nil)
		if !pass.IsActive() {
			pass.Clear()
			stats.PassesSkipped++
			continue
		}
		stats.Renderables += pass.Render(&r.current, params.GlobalMask, params.Viewer, params.Time)
		stats.PassesVisited++
	}
	return stats
}
