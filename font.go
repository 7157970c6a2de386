package img2ascii

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// Embedded font catalog. To regenerate it:
//
//	go run ./cmd/fontmetrics -o fontdata/fonts.json
//
//go:embed fontdata/fonts.json
var fontFS embed.FS

const (
	// FirstGlyph and LastGlyph bound the printable ASCII range a font
	// supplies measurements for.
	FirstGlyph = 32
	LastGlyph  = 126

	// GlyphCount is the number of measured glyphs per font.
	GlyphCount = LastGlyph - FirstGlyph + 1

	// DefaultCatalogName is the embedded catalog file.
	DefaultCatalogName = "fonts.json"
)

// Font holds the measured ink intensity and shape deviation of every
// printable ASCII glyph, indexed by ASCII code - FirstGlyph.
type Font struct {
	Name      string
	Intensity [GlyphCount]uint8
	Deviation [GlyphCount]uint8
}

// fontRecord is the serialized form of a Font.
type fontRecord struct {
	Name          string `json:"name" yaml:"name" toml:"name"`
	CharIntensity []int  `json:"charIntensity" yaml:"charIntensity" toml:"charIntensity"`
	CharDeviation []int  `json:"charDeviation" yaml:"charDeviation" toml:"charDeviation"`
}

// tomlCatalog wraps the records, TOML has no top-level arrays.
type tomlCatalog struct {
	Fonts []fontRecord `toml:"fonts"`
}

// CatalogFormat selects the serialization of a font catalog.
type CatalogFormat int

const (
	FormatJSON CatalogFormat = iota
	FormatYAML
	FormatTOML
)

func (f CatalogFormat) String() string {
	switch f {
	case FormatYAML:
		return "yaml"
	case FormatTOML:
		return "toml"
	default:
		return "json"
	}
}

// CatalogFormatFromPath picks the format from a file extension, defaulting
// to JSON.
func CatalogFormatFromPath(path string) CatalogFormat {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// Catalog is an immutable set of fonts. It is safe for concurrent use.
type Catalog struct {
	fonts  []Font
	byName map[string]int
}

// NewCatalog builds a catalog from already measured fonts. Font names must
// be unique and non-empty.
func NewCatalog(fonts ...Font) (*Catalog, error) {
	if len(fonts) == 0 {
		return nil, errors.New("catalog has no fonts")
	}
	c := &Catalog{
		fonts:  make([]Font, len(fonts)),
		byName: make(map[string]int, len(fonts)),
	}
	copy(c.fonts, fonts)
	for i, f := range c.fonts {
		if f.Name == "" {
			return nil, fmt.Errorf("font %d has no name", i)
		}
		if _, dup := c.byName[f.Name]; dup {
			return nil, fmt.Errorf("duplicate font %q", f.Name)
		}
		c.byName[f.Name] = i
	}
	return c, nil
}

// DefaultCatalog parses the embedded font catalog. A failure here means the
// binary was built with corrupt data and is fatal for the caller.
func DefaultCatalog() (*Catalog, error) {
	return ReadCatalog(DefaultCatalogName)
}

// ReadCatalog reads a catalog by name. The embedded fontdata directory is
// tried first, then the filesystem. The format follows the extension.
func ReadCatalog(name string) (*Catalog, error) {
	data, vfsErr := fontFS.ReadFile("fontdata/" + name)
	if vfsErr != nil {
		var fsErr error
		data, fsErr = os.ReadFile(name)
		if fsErr != nil {
			return nil, fmt.Errorf("read font catalog: %w", fsErr)
		}
	}
	return LoadCatalog(data, CatalogFormatFromPath(name), name)
}

// LoadCatalog parses serialized font records. Any structural problem is
// reported as a *CatalogParseError.
func LoadCatalog(data []byte, format CatalogFormat, source string) (*Catalog, error) {
	var records []fontRecord
	var err error
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &records)
	case FormatTOML:
		var doc tomlCatalog
		err = toml.Unmarshal(data, &doc)
		records = doc.Fonts
	default:
		err = json.Unmarshal(data, &records)
	}
	if err != nil {
		return nil, &CatalogParseError{Source: source, Err: err}
	}

	fonts := make([]Font, 0, len(records))
	for i, rec := range records {
		f, err := rec.toFont()
		if err != nil {
			return nil, &CatalogParseError{
				Source: source,
				Err:    fmt.Errorf("record %d: %w", i, err),
			}
		}
		fonts = append(fonts, f)
	}
	c, err := NewCatalog(fonts...)
	if err != nil {
		return nil, &CatalogParseError{Source: source, Err: err}
	}
	return c, nil
}

func (rec fontRecord) toFont() (Font, error) {
	f := Font{Name: rec.Name}
	if err := fillMeasurements(&f.Intensity, rec.CharIntensity); err != nil {
		return Font{}, fmt.Errorf("font %q charIntensity: %w", rec.Name, err)
	}
	if err := fillMeasurements(&f.Deviation, rec.CharDeviation); err != nil {
		return Font{}, fmt.Errorf("font %q charDeviation: %w", rec.Name, err)
	}
	return f, nil
}

func fillMeasurements(dst *[GlyphCount]uint8, src []int) error {
	if len(src) != GlyphCount {
		return fmt.Errorf("want %d values, got %d", GlyphCount, len(src))
	}
	for i, v := range src {
		if v < 0 || v > 255 {
			return fmt.Errorf("value %d for %q out of range", v, rune(FirstGlyph+i))
		}
		dst[i] = uint8(v)
	}
	return nil
}

func recordFromFont(f Font) fontRecord {
	rec := fontRecord{
		Name:          f.Name,
		CharIntensity: make([]int, GlyphCount),
		CharDeviation: make([]int, GlyphCount),
	}
	for i := 0; i < GlyphCount; i++ {
		rec.CharIntensity[i] = int(f.Intensity[i])
		rec.CharDeviation[i] = int(f.Deviation[i])
	}
	return rec
}

// Encode writes the catalog in the given format. LoadCatalog reads the
// output back.
func (c *Catalog) Encode(w io.Writer, format CatalogFormat) error {
	records := make([]fontRecord, len(c.fonts))
	for i, f := range c.fonts {
		records[i] = recordFromFont(f)
	}

	var data []byte
	var err error
	switch format {
	case FormatYAML:
		data, err = yaml.Marshal(records)
	case FormatTOML:
		data, err = toml.Marshal(tomlCatalog{Fonts: records})
	default:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		err = enc.Encode(records)
		data = buf.Bytes()
	}
	if err != nil {
		return fmt.Errorf("encode font catalog as %s: %w", format, err)
	}
	_, err = w.Write(data)
	return err
}

// Find returns a copy of the font with the given name.
func (c *Catalog) Find(name string) (Font, error) {
	idx, ok := c.byName[name]
	if !ok {
		return Font{}, fmt.Errorf("%w: %q", ErrFontNotFound, name)
	}
	return c.fonts[idx], nil
}

// Names returns the font names in sorted order.
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.fonts))
	for _, f := range c.fonts {
		names = append(names, f.Name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of fonts.
func (c *Catalog) Len() int {
	return len(c.fonts)
}
