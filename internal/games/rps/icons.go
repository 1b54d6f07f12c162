package rps

import (
	"bufio"
	"bytes"
	"embed"
	"fmt"
	"image"
	"image/png"
	"io/fs"
	"path"
	"strings"

	"github.com/vovakirdan/rps-arcade/internal/core"
)

// Icon cell dimensions.
const (
	IconW = 18
	IconH = 6
)

//go:embed icons/*.txt
var builtinIcons embed.FS

// Icon is a fixed-size block of runes. Spaces are transparent.
type Icon struct {
	rows [IconH][IconW]rune
}

// Row returns row y as a string, right-padded with spaces.
func (ic Icon) Row(y int) string {
	if y < 0 || y >= IconH {
		return strings.Repeat(" ", IconW)
	}
	return string(ic.rows[y][:])
}

// At returns the rune at (x, y), or a space outside the icon.
func (ic Icon) At(x, y int) rune {
	if x < 0 || x >= IconW || y < 0 || y >= IconH {
		return ' '
	}
	return ic.rows[y][x]
}

// Mirror flips the icon horizontally so a hand drawn pointing right points
// left. Bracket-like runes are swapped so the art still reads correctly.
func (ic Icon) Mirror() Icon {
	var out Icon
	for y := range IconH {
		for x := range IconW {
			out.rows[y][IconW-1-x] = mirrorRune(ic.rows[y][x])
		}
	}
	return out
}

func mirrorRune(r rune) rune {
	switch r {
	case '(':
		return ')'
	case ')':
		return '('
	case '/':
		return '\\'
	case '\\':
		return '/'
	case '<':
		return '>'
	case '>':
		return '<'
	case '[':
		return ']'
	case ']':
		return '['
	default:
		return r
	}
}

// iconFromText builds an Icon from up to IconH lines of text. Longer lines
// are clipped.
func iconFromText(text string) Icon {
	var ic Icon
	for y := range IconH {
		for x := range IconW {
			ic.rows[y][x] = ' '
		}
	}

	sc := bufio.NewScanner(strings.NewReader(text))
	for y := 0; y < IconH && sc.Scan(); y++ {
		x := 0
		for _, r := range sc.Text() {
			if x >= IconW {
				break
			}
			ic.rows[y][x] = r
			x++
		}
	}
	return ic
}

// IconSet holds one icon per Choice.
type IconSet [NumChoices]Icon

// Get returns the icon for c.
func (s IconSet) Get(c Choice) Icon {
	if !c.Valid() {
		return iconFromText("")
	}
	return s[c]
}

// AssetLoadError reports an icon asset that could not be read or decoded.
type AssetLoadError struct {
	Choice Choice
	Path   string
	Err    error
}

func (e *AssetLoadError) Error() string {
	return fmt.Sprintf("rps: cannot load %s icon from %s: %v", e.Choice, e.Path, e.Err)
}

func (e *AssetLoadError) Unwrap() error {
	return e.Err
}

// AssetName returns the file name an icon is loaded from, e.g. "rock.png".
func AssetName(c Choice) string {
	return c.String() + ".png"
}

// BuiltinIcons returns the text-art hands compiled into the binary.
func BuiltinIcons() IconSet {
	var set IconSet
	for _, c := range Choices {
		data, err := builtinIcons.ReadFile("icons/" + c.String() + ".txt")
		if err != nil {
			// The files are embedded at build time.
			panic(fmt.Sprintf("rps: builtin icon %s missing: %v", c, err))
		}
		set[c] = iconFromText(string(data))
	}
	return set
}

// LoadIcons reads rock.png, paper.png and scissor.png from the root of fsys.
// root is only used to report paths in errors. Every icon must load; the
// first failure is returned as an *AssetLoadError.
func LoadIcons(fsys fs.FS, root string) (IconSet, error) {
	var set IconSet
	for _, c := range Choices {
		name := AssetName(c)
		ic, err := loadPNGIcon(fsys, name)
		if err != nil {
			return IconSet{}, &AssetLoadError{Choice: c, Path: path.Join(root, name), Err: err}
		}
		set[c] = ic
	}
	return set, nil
}

func loadPNGIcon(fsys fs.FS, name string) (Icon, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return Icon{}, err
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return Icon{}, fmt.Errorf("decode png: %w", err)
	}
	if img.Bounds().Empty() {
		return Icon{}, fmt.Errorf("decode png: empty image")
	}
	return iconFromImage(img), nil
}

// ramp orders runes from lightest to darkest.
const ramp = " .:-=+*#%@"

// iconFromImage scales img down to the icon grid. Each cell takes the mean
// luminance and alpha of the pixels it covers; mostly transparent cells stay
// blank and the rest pick a rune from ramp by darkness.
func iconFromImage(img image.Image) Icon {
	var ic Icon
	b := img.Bounds()
	runes := []rune(ramp)

	for cy := range IconH {
		y0 := b.Min.Y + cy*b.Dy()/IconH
		y1 := max(b.Min.Y+(cy+1)*b.Dy()/IconH, y0+1)
		for cx := range IconW {
			x0 := b.Min.X + cx*b.Dx()/IconW
			x1 := max(b.Min.X+(cx+1)*b.Dx()/IconW, x0+1)

			var lum, alpha float64
			n, lit := 0, 0
			for y := y0; y < y1 && y < b.Max.Y; y++ {
				for x := x0; x < x1 && x < b.Max.X; x++ {
					r, g, bl, a := img.At(x, y).RGBA()
					alpha += float64(a) / 0xffff
					if a > 0 {
						// Un-premultiply before weighting channels.
						fa := float64(a)
						lum += (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(bl)) / fa
						lit++
					}
					n++
				}
			}
			if n == 0 || lit == 0 || alpha/float64(n) < 0.5 {
				ic.rows[cy][cx] = ' '
				continue
			}
			dark := 1 - lum/float64(lit)
			idx := int(dark*float64(len(runes)-1) + 0.5)
			ic.rows[cy][cx] = runes[core.Clamp(idx, 1, len(runes)-1)]
		}
	}
	return ic
}
