// Package guide loads the markdown pages that explain how each calculator
// works and which simplifications it makes.
package guide

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
)

// Guida is one explanatory page.
type Guida struct {
	Slug        string    `yaml:"slug" json:"slug"`
	Titolo      string    `yaml:"titolo" json:"titolo"`
	Descrizione string    `yaml:"descrizione" json:"descrizione"`
	Calcolatore string    `yaml:"calcolatore" json:"calcolatore"`
	Ordine      int       `yaml:"ordine" json:"ordine"`
	Aggiornata  time.Time `yaml:"aggiornata" json:"aggiornata"`
	HTMLContent string    `yaml:"-" json:"-"`
}

var (
	guide []Guida
	mu    sync.RWMutex
)

// LoadAll reads every .md file in dir and replaces the loaded guides.
// Files with broken frontmatter are skipped and reported in the error.
func LoadAll(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	md := goldmark.New()
	var loaded []Guida
	var saltate []string

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			saltate = append(saltate, e.Name())
			continue
		}
		g, err := parseGuida(data, md)
		if err != nil {
			saltate = append(saltate, e.Name())
			continue
		}
		if g.Slug == "" {
			g.Slug = strings.TrimSuffix(e.Name(), ".md")
		}
		loaded = append(loaded, g)
	}

	sort.SliceStable(loaded, func(i, j int) bool {
		if loaded[i].Ordine != loaded[j].Ordine {
			return loaded[i].Ordine < loaded[j].Ordine
		}
		return loaded[i].Slug < loaded[j].Slug
	})

	mu.Lock()
	guide = loaded
	mu.Unlock()

	if len(saltate) > 0 {
		return fmt.Errorf("guide non valide: %s", strings.Join(saltate, ", "))
	}
	return nil
}

func parseGuida(data []byte, md goldmark.Markdown) (Guida, error) {
	content := strings.TrimPrefix(string(data), "\xef\xbb\xbf")

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return Guida{}, fmt.Errorf("invalid frontmatter")
	}

	var g Guida
	if err := yaml.Unmarshal([]byte(parts[1]), &g); err != nil {
		return Guida{}, err
	}

	var buf bytes.Buffer
	if err := md.Convert([]byte(strings.TrimSpace(parts[2])), &buf); err != nil {
		return Guida{}, err
	}
	g.HTMLContent = buf.String()
	return g, nil
}

// GetAll returns the guides in display order.
func GetAll() []Guida {
	mu.RLock()
	defer mu.RUnlock()
	result := make([]Guida, len(guide))
	copy(result, guide)
	return result
}

// GetBySlug returns a guide by its slug, or nil if not found.
func GetBySlug(slug string) *Guida {
	mu.RLock()
	defer mu.RUnlock()
	for i := range guide {
		if guide[i].Slug == slug {
			g := guide[i]
			return &g
		}
	}
	return nil
}

// GetByCalcolatore returns the guide attached to a calculator type.
func GetByCalcolatore(tipo string) *Guida {
	mu.RLock()
	defer mu.RUnlock()
	for i := range guide {
		if guide[i].Calcolatore == tipo {
			g := guide[i]
			return &g
		}
	}
	return nil
}
