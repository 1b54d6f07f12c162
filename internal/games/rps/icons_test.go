package rps

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// halfInkPNG encodes an image whose left half is the given colour and whose
// right half is fully transparent.
func halfInkPNG(t *testing.T, ink color.Color) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 2*IconW, 2*IconH))
	for y := range 2 * IconH {
		for x := range IconW {
			img.Set(x, y, ink)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestBuiltinIcons(t *testing.T) {
	set := BuiltinIcons()
	for _, c := range Choices {
		ic := set.Get(c)
		assert.NotEqual(t, strings.Repeat(" ", IconW), ic.Row(0), "%v icon should have art", c)
		assert.Len(t, []rune(ic.Row(0)), IconW)
	}
	assert.NotEqual(t, set.Get(Rock), set.Get(Paper))
}

func TestIconMirror(t *testing.T) {
	ic := iconFromText("(ab/")
	m := ic.Mirror()

	row := m.Row(0)
	assert.True(t, strings.HasSuffix(row, `\ba)`), "mirrored row = %q", row)
	assert.Equal(t, ic, m.Mirror(), "mirroring twice is the identity")
}

func TestIconFromTextClips(t *testing.T) {
	long := strings.Repeat("x", IconW+5) + "\n" + strings.Repeat("y\n", IconH+3)
	ic := iconFromText(long)
	assert.Equal(t, strings.Repeat("x", IconW), ic.Row(0))
	assert.Equal(t, ' ', ic.At(-1, 0))
	assert.Equal(t, ' ', ic.At(0, IconH))
}

func TestLoadIcons(t *testing.T) {
	fsys := fstest.MapFS{
		"rock.png":    {Data: halfInkPNG(t, color.Black)},
		"paper.png":   {Data: halfInkPNG(t, color.White)},
		"scissor.png": {Data: halfInkPNG(t, color.Black)},
	}

	set, err := LoadIcons(fsys, "assets")
	require.NoError(t, err)

	rock := set.Get(Rock)
	assert.Equal(t, strings.Repeat("@", IconW/2)+strings.Repeat(" ", IconW/2), rock.Row(0))

	paper := set.Get(Paper)
	assert.Equal(t, '.', paper.At(0, 0), "white ink still leaves a visible mark")
	assert.Equal(t, ' ', paper.At(IconW-1, 0))
}

func TestLoadIconsMissingAsset(t *testing.T) {
	fsys := fstest.MapFS{
		"rock.png":  {Data: halfInkPNG(t, color.Black)},
		"paper.png": {Data: halfInkPNG(t, color.Black)},
	}

	_, err := LoadIcons(fsys, "assets")
	require.Error(t, err)

	var assetErr *AssetLoadError
	require.True(t, errors.As(err, &assetErr))
	assert.Equal(t, Scissor, assetErr.Choice)
	assert.Equal(t, "assets/scissor.png", assetErr.Path)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "scissor icon")
}

func TestLoadIconsCorruptAsset(t *testing.T) {
	fsys := fstest.MapFS{
		"rock.png":    {Data: []byte("definitely not a png")},
		"paper.png":   {Data: halfInkPNG(t, color.Black)},
		"scissor.png": {Data: halfInkPNG(t, color.Black)},
	}

	_, err := LoadIcons(fsys, ".")
	var assetErr *AssetLoadError
	require.ErrorAs(t, err, &assetErr)
	assert.Equal(t, Rock, assetErr.Choice)
	assert.Contains(t, err.Error(), "decode png")
}
