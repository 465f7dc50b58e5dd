package metadata

import (
	"fmt"
	"strings"

	"github.com/spaghettifunk/brushwork/engine/math"
)

/**
 * @brief Bit flags describing the fixed-function state a pass requires.
 * The set of flags a pass actually applies is its own flags filtered by the
 * global state mask of the frame.
 */
type RenderFlags uint32

const (
	RenderFlagLineStipple RenderFlags = 1 << iota
	RenderFlagLineSmooth
	RenderFlagPolygonStipple
	RenderFlagPolygonSmooth
	RenderFlagAlphaTest
	RenderFlagDepthTest
	RenderFlagDepthWrite
	RenderFlagColourWrite
	RenderFlagCullFace
	RenderFlagScaled
	RenderFlagSmooth
	RenderFlagLighting
	RenderFlagBlend
	RenderFlagOffsetLine
	RenderFlagFill
	RenderFlagColourArray
	RenderFlagColourChange
	RenderFlagMaterialVCol
	RenderFlagVColInvert
	RenderFlagTexture2D
	RenderFlagTextureCubeMap
	RenderFlagBump
	RenderFlagProgram
	RenderFlagScreen
	RenderFlagOverride
)

/** @brief All defined render flags set. */
const RenderFlagsAll RenderFlags = RenderFlagOverride<<1 - 1

var renderFlagNames = []string{
	"LineStipple",
	"LineSmooth",
	"PolygonStipple",
	"PolygonSmooth",
	"AlphaTest",
	"DepthTest",
	"DepthWrite",
	"ColourWrite",
	"CullFace",
	"Scaled",
	"Smooth",
	"Lighting",
	"Blend",
	"OffsetLine",
	"Fill",
	"ColourArray",
	"ColourChange",
	"MaterialVCol",
	"VColInvert",
	"Texture2D",
	"TextureCubeMap",
	"Bump",
	"Program",
	"Screen",
	"Override",
}

/** @brief Reports whether every bit of flag is set in f. */
func (f RenderFlags) Has(flag RenderFlags) bool {
	return f&flag == flag
}

// String lists the set flags separated by '|', or "None".
func (f RenderFlags) String() string {
	if f == 0 {
		return "None"
	}
	var names []string
	for i, name := range renderFlagNames {
		if f&(1<<uint(i)) != 0 {
			names = append(names, name)
		}
	}
	if rest := f &^ RenderFlagsAll; rest != 0 {
		names = append(names, fmt.Sprintf("0x%x", uint32(rest)))
	}
	return strings.Join(names, "|")
}

/**
 * @brief Sort keys for passes. Passes are flushed in ascending sort order.
 */
const (
	SortFirst        int = -64
	SortOpaque       int = 0
	SortMultiFirst   int = 1000
	SortMultiLast    int = 2000
	SortOverlayFirst int = 2048
	SortHighlight    int = 2049
	SortOverlayLast  int = 4096
	SortPointFirst   int = 4097
	SortPointLast    int = 8192
	SortGuiFirst     int = 16384
	SortGuiLast      int = 32768
	SortLast         int = 1 << 20
)

/** @brief Number of texture units a pass manages. */
const MaxTextureUnits = 5

/** @brief Texture unit the XY light falloff is bound to. */
const LightFalloffXYUnit = 3

/** @brief Texture unit the Z light falloff is bound to. */
const LightFalloffZUnit = 4

/** @brief A texture object name as handed out by the graphics device. 0 means none. */
type TextureHandle uint32

type CompareFunc uint8

const (
	CompareNever CompareFunc = iota
	CompareLess
	CompareEqual
	CompareLEqual
	CompareGreater
	CompareNotEqual
	CompareGEqual
	CompareAlways
)

type BlendFactor uint8

const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcColour
	BlendOneMinusSrcColour
	BlendSrcAlpha
	BlendOneMinusSrcAlpha
	BlendDstAlpha
	BlendOneMinusDstAlpha
	BlendDstColour
	BlendOneMinusDstColour
)

/** @brief How cube map texture coordinates are generated. */
type CubeMapMode uint8

const (
	CubeMapNone CubeMapMode = iota
	CubeMapCamera
	CubeMapObject
)

/** @brief A server-side capability toggled with enable/disable. */
type Capability uint8

const (
	CapabilityLineStipple Capability = iota
	CapabilityLineSmooth
	CapabilityPolygonStipple
	CapabilityPolygonSmooth
	CapabilityAlphaTest
	CapabilityDepthTest
	CapabilityCullFace
	CapabilityNormalize
	CapabilityLighting
	CapabilityColourMaterial
	CapabilityBlend
	CapabilityPolygonOffsetLine
	CapabilityPolygonOffsetFill
	CapabilityTexture2D
	CapabilityTextureCubeMap
)

/** @brief A client-side vertex array toggled with enable/disable. */
type ClientArray uint8

const (
	ClientArrayNormal ClientArray = iota
	ClientArrayColour
	ClientArrayTexCoord
)

type TextureTarget uint8

const (
	TextureTargetNone TextureTarget = iota
	TextureTarget2D
	TextureTargetCubeMap
)

type Winding uint8

const (
	WindingCCW Winding = iota
	WindingCW
)

type PolygonMode uint8

const (
	PolygonModeFill PolygonMode = iota
	PolygonModeLine
)

type ShadeModel uint8

const (
	ShadeModelFlat ShadeModel = iota
	ShadeModelSmooth
)

type TextureWrap uint8

const (
	TextureWrapRepeat TextureWrap = iota
	TextureWrapClampToEdge
	TextureWrapClampToBorder
)

/**
 * @brief The complete set of device state a pass wants applied before its
 * renderables are drawn. The renderer keeps a second instance describing
 * what the device currently has set.
 */
type RenderState struct {
	/** @brief The flags the pass requires. */
	Flags RenderFlags
	/** @brief The texture bound to each unit. */
	Textures [MaxTextureUnits]TextureHandle
	/** @brief The stage driving each unit's texture matrix. Nil means identity. */
	Stages [MaxTextureUnits]Stage
	CubeMapMode CubeMapMode
	/** @brief The program used when RenderFlagProgram is required. */
	Program Program

	BlendSrc BlendFactor
	BlendDst BlendFactor

	DepthFunc      CompareFunc
	AlphaFunc      CompareFunc
	AlphaThreshold float32

	LineStippleFactor  int32
	LineStipplePattern uint16
	LineWidth          float32
	PointSize          float32
	PolygonOffset      float32

	Colour math.Vec4
	/** @brief The order of the owning pass. Lower sorts first. */
	Sort int
}

/**
 * @brief Creates a render state with the device defaults.
 */
func NewRenderState() RenderState {
	return RenderState{
		CubeMapMode:        CubeMapNone,
		BlendSrc:           BlendSrcAlpha,
		BlendDst:           BlendOneMinusSrcAlpha,
		DepthFunc:          CompareLess,
		AlphaFunc:          CompareAlways,
		AlphaThreshold:     0,
		LineStippleFactor:  1,
		LineStipplePattern: 0xAAAA,
		LineWidth:          1,
		PointSize:          1,
		PolygonOffset:      0,
		Colour:             math.NewVec4One(),
		Sort:               SortFirst,
	}
}

func (s *RenderState) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Renderflags: %s - Sort: %d - PolygonOffset: %g - ", s.Flags, s.Sort, s.PolygonOffset)
	for unit, texture := range s.Textures {
		if texture > 0 {
			fmt.Fprintf(&sb, "Texture%d: %d - ", unit, texture)
		}
	}
	fmt.Fprintf(&sb, "Colour: (%g %g %g %g) - CubeMapMode: %d", s.Colour.X, s.Colour.Y, s.Colour.Z, s.Colour.W, s.CubeMapMode)
	return sb.String()
}
