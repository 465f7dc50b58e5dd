package metadata

import (
	gomath "math"

	"github.com/spaghettifunk/brushwork/engine/math"
)

/**
 * @brief A texture stage of a material. Stages carry values that may change
 * over time or per entity; EvaluateExpressions refreshes them before the
 * accessors are read.
 */
type Stage interface {
	/** @brief Re-evaluates all time/entity dependent values. entity may be nil. */
	EvaluateExpressions(time uint64, entity RenderEntity)
	/** @brief The texture of the stage. */
	Texture() TextureHandle
	/** @brief The stage colour, replaces the pass colour for stage 0. */
	Colour() math.Vec4
	/** @brief Alpha test threshold. Values > 0 enable alpha testing. */
	AlphaTest() float32
	IsVisible() bool
	Scale() math.Vec2
	/** @brief Reports whether the scale is wrapped in half-unit translations like shear and rotation. */
	CenterScale() bool
	Shear() math.Vec2
	/** @brief Rotation in full turns. */
	Rotation() float32
	Translation() math.Vec2
}

/**
 * @brief A pure function of the frame time (ms) and the entity being rendered.
 * entity may be nil when the owning pass renders untagged renderables.
 */
type Expression func(time uint64, entity RenderEntity) float32

/** @brief An expression that always yields value. */
func Constant(value float32) Expression {
	return func(uint64, RenderEntity) float32 { return value }
}

/**
 * @brief An expression changing by rate per second, wrapped to [0, 1). Negative
 * rates count down from 1.
 */
func Scroll(rate float32) Expression {
	return func(time uint64, _ RenderEntity) float32 {
		v := float64(time) / 1000 * float64(rate)
		f := float32(v - gomath.Floor(v))
		if f >= 1 {
			return 0
		}
		return f
	}
}

/**
 * @brief An expression reading shader parameter index of the entity, or
 * fallback when there is no entity.
 */
func EntityParm(index int, fallback float32) Expression {
	return func(_ uint64, entity RenderEntity) float32 {
		if entity == nil {
			return fallback
		}
		return entity.ShaderParm(index)
	}
}

/** @brief An expression that is 1 when the expression is > 0, otherwise 0. */
func Condition(e Expression) Expression {
	return func(time uint64, entity RenderEntity) float32 {
		if e(time, entity) > 0 {
			return 1
		}
		return 0
	}
}

/**
 * @brief A Stage whose values are computed from expressions. Nil expressions
 * leave the corresponding value at its default.
 */
type ExpressionStage struct {
	TextureHandle TextureHandle
	CenterScaled  bool

	Red, Green, Blue, Alpha Expression
	AlphaTestExpr           Expression

	/** @brief The stage is hidden while Visible evaluates to <= 0. */
	Visible Expression

	ScaleX, ScaleY         Expression
	ShearX, ShearY         Expression
	RotateExpr             Expression
	TranslateX, TranslateY Expression

	colour      math.Vec4
	alphaTest   float32
	visible     bool
	scale       math.Vec2
	shear       math.Vec2
	rotation    float32
	translation math.Vec2
}

/**
 * @brief Creates a stage on texture with white colour, unit scale and no
 * animation.
 */
func NewExpressionStage(texture TextureHandle) *ExpressionStage {
	return &ExpressionStage{
		TextureHandle: texture,
		colour:        math.NewVec4One(),
		visible:       true,
		scale:         math.NewVec2One(),
	}
}

func evaluate(e Expression, fallback float32, time uint64, entity RenderEntity) float32 {
	if e == nil {
		return fallback
	}
	return e(time, entity)
}

func (s *ExpressionStage) EvaluateExpressions(time uint64, entity RenderEntity) {
	s.colour = math.NewVec4(
		evaluate(s.Red, 1, time, entity),
		evaluate(s.Green, 1, time, entity),
		evaluate(s.Blue, 1, time, entity),
		evaluate(s.Alpha, 1, time, entity),
	)
	s.alphaTest = evaluate(s.AlphaTestExpr, 0, time, entity)
	s.visible = evaluate(s.Visible, 1, time, entity) > 0
	s.scale = math.NewVec2(evaluate(s.ScaleX, 1, time, entity), evaluate(s.ScaleY, 1, time, entity))
	s.shear = math.NewVec2(evaluate(s.ShearX, 0, time, entity), evaluate(s.ShearY, 0, time, entity))
	s.rotation = evaluate(s.RotateExpr, 0, time, entity)
	s.translation = math.NewVec2(evaluate(s.TranslateX, 0, time, entity), evaluate(s.TranslateY, 0, time, entity))
}

func (s *ExpressionStage) Texture() TextureHandle { return s.TextureHandle }
func (s *ExpressionStage) Colour() math.Vec4      { return s.colour }
func (s *ExpressionStage) AlphaTest() float32     { return s.alphaTest }
func (s *ExpressionStage) IsVisible() bool        { return s.visible }
func (s *ExpressionStage) Scale() math.Vec2       { return s.scale }
func (s *ExpressionStage) CenterScale() bool      { return s.CenterScaled }
func (s *ExpressionStage) Shear() math.Vec2       { return s.shear }
func (s *ExpressionStage) Rotation() float32      { return s.rotation }
func (s *ExpressionStage) Translation() math.Vec2 { return s.translation }
