package loaders

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testFont = `info face="Test Sans" size=16 bold=0 italic=0 charset="" unicode=1 stretchH=100 smooth=1 aa=1 padding=0,0,0,0 spacing=1,1 outline=0
common lineHeight=18 base=14 scaleW=32 scaleH=32 pages=1 packed=0 alphaChnl=1 redChnl=0 greenChnl=0 blueChnl=0
page id=0 file="test_0.png"
chars count=2
char id=65   x=0     y=0     width=8     height=10    xoffset=0     yoffset=4     xadvance=9     page=0  chnl=15
char id=66   x=8     y=0     width=7     height=10    xoffset=1     yoffset=4     xadvance=8     page=0  chnl=15
kernings count=1
kerning first=65  second=66  amount=-1
`

func TestLoadBitmapFont(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.fnt"), []byte(testFont), 0o644))
	f, err := os.Create(filepath.Join(dir, "test_0.png"))
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewNRGBA(image.Rect(0, 0, 32, 32))))
	require.NoError(t, f.Close())

	font, err := LoadBitmapFont(filepath.Join(dir, "test.fnt"))
	require.NoError(t, err)

	assert.Equal(t, "Test Sans", font.Face)
	assert.Equal(t, 18, font.LineHeight)
	assert.Equal(t, 14, font.Baseline)
	assert.Equal(t, image.Rect(0, 0, 32, 32), font.Page.Bounds())
	assert.Equal(t, FontGlyph{X: 8, Width: 7, Height: 10, XOffset: 1, YOffset: 4, XAdvance: 8}, font.Glyphs['B'])
	assert.Equal(t, -1, font.Kerning('A', 'B'))
	assert.Equal(t, 0, font.Kerning('B', 'A'))
}

func TestLoadBitmapFontMissing(t *testing.T) {
	_, err := LoadBitmapFont(filepath.Join(t.TempDir(), "missing.fnt"))
	assert.Error(t, err)
}

func TestMeasureText(t *testing.T) {
	font := &BitmapFont{
		Glyphs: map[rune]FontGlyph{
			'A': {XAdvance: 9},
			'B': {XAdvance: 8},
		},
		kernings: map[kerningPair]int{{'A', 'B'}: -1},
	}
	assert.Equal(t, 9+8-1+9, font.MeasureText("ABA"))
	// runes without a glyph are skipped
	assert.Equal(t, 9, font.MeasureText("A?"))
	assert.Zero(t, font.MeasureText(""))
}
