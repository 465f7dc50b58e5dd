package loaders

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/fzipp/bmfont"
)

type FontGlyph struct {
	X, Y          int
	Width, Height int
	XOffset       int
	YOffset       int
	XAdvance      int
}

type kerningPair struct {
	first, second rune
}

/**
 * @brief A bitmap font with a single page sheet, laid out in pixels with the
 * origin at the top left of the sheet.
 */
type BitmapFont struct {
	Face       string
	Size       int
	LineHeight int
	Baseline   int
	Glyphs     map[rune]FontGlyph
	/** @brief The page sheet, rows top-down. */
	Page *image.RGBA

	kernings map[kerningPair]int
}

/**
 * @brief Reads an AngelCode BMFont descriptor and its first page sheet.
 */
func LoadBitmapFont(path string) (*BitmapFont, error) {
	font, err := bmfont.Load(path)
	if err != nil {
		return nil, fmt.Errorf("bitmap font %s: %w", path, err)
	}
	desc := font.Descriptor

	pageFile := ""
	for _, p := range desc.Pages {
		if p.ID == 0 {
			pageFile = p.File
		}
	}
	if pageFile == "" {
		return nil, fmt.Errorf("bitmap font %s has no page 0", path)
	}
	sheetLoader := &ImageLoader{}
	sheet, err := sheetLoader.Load(filepath.Join(filepath.Dir(path), pageFile))
	if err != nil {
		return nil, err
	}

	out := &BitmapFont{
		Face:       desc.Info.Face,
		Size:       int(desc.Info.Size),
		LineHeight: int(desc.Common.LineHeight),
		Baseline:   int(desc.Common.Base),
		Glyphs:     make(map[rune]FontGlyph, len(desc.Chars)),
		Page:       sheet,
		kernings:   make(map[kerningPair]int, len(desc.Kerning)),
	}
	for _, g := range desc.Chars {
		if g.Page != 0 {
			continue
		}
		out.Glyphs[rune(g.ID)] = FontGlyph{
			X:        int(g.X),
			Y:        int(g.Y),
			Width:    int(g.Width),
			Height:   int(g.Height),
			XOffset:  int(g.XOffset),
			YOffset:  int(g.YOffset),
			XAdvance: int(g.XAdvance),
		}
	}
	for p, k := range desc.Kerning {
		out.kernings[kerningPair{rune(p.First), rune(p.Second)}] = int(k.Amount)
	}
	return out, nil
}

/** @brief The extra advance between first and second, usually negative. */
func (f *BitmapFont) Kerning(first, second rune) int {
	return f.kernings[kerningPair{first, second}]
}

/**
 * @brief The width in pixels of a single line of text. Runes without a glyph
 * take no space.
 */
func (f *BitmapFont) MeasureText(text string) int {
	width := 0
	var previous rune
	for i, r := range text {
		g, ok := f.Glyphs[r]
		if !ok {
			continue
		}
		if i > 0 {
			width += f.Kerning(previous, r)
		}
		width += g.XAdvance
		previous = r
	}
	return width
}
