// Package assets locates the static chart images rendered by the notebooks.
package assets

import (
	"fmt"
	"io/fs"
	"os"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// TickerToken is replaced with the selected ticker in image patterns.
const TickerToken = "{ticker}"

// Catalog resolves chart image names inside one directory tree.
type Catalog struct {
	fsys fs.FS
	dir  string
}

// NewCatalog serves images from dir.
func NewCatalog(dir string) *Catalog {
	return &Catalog{fsys: os.DirFS(dir), dir: dir}
}

// NewCatalogFS serves images from an arbitrary filesystem.
func NewCatalogFS(fsys fs.FS) *Catalog {
	return &Catalog{fsys: fsys}
}

// FS exposes the underlying filesystem for static serving.
func (c *Catalog) FS() fs.FS { return c.fsys }

// Dir returns the directory the catalog was created from, if any.
func (c *Catalog) Dir() string { return c.dir }

// Expand substitutes the ticker into an image pattern.
func Expand(pattern, ticker string) string {
	return strings.ReplaceAll(pattern, TickerToken, ticker)
}

// Resolve returns the paths matching pattern for ticker, sorted. The pattern
// may use doublestar syntax, so "**/09_Prediction_{ticker}.png" finds the
// chart in any subdirectory. Missing images yield an empty result.
func (c *Catalog) Resolve(pattern, ticker string) ([]string, error) {
	expanded := Expand(pattern, ticker)
	if !doublestar.ValidatePattern(expanded) {
		return nil, fmt.Errorf("invalid image pattern %q", expanded)
	}
	matches, err := doublestar.Glob(c.fsys, expanded)
	if err != nil {
		return nil, fmt.Errorf("glob %q: %w", expanded, err)
	}
	sort.Strings(matches)
	return matches, nil
}

// First returns the first match for pattern, if any.
func (c *Catalog) First(pattern, ticker string) (string, bool) {
	matches, err := c.Resolve(pattern, ticker)
	if err != nil || len(matches) == 0 {
		return "", false
	}
	return matches[0], true
}

// ForTicker lists every png whose name ends with _<ticker>.png.
func (c *Catalog) ForTicker(ticker string) ([]string, error) {
	return c.Resolve("**/*_"+TickerToken+".png", ticker)
}
