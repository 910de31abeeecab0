package modes

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/aretw0/adrift/pkg/domain"
	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var builtinThemes []byte

type catalogue struct {
	Themes []domain.Theme `yaml:"themes"`
}

var defaultThemes = sync.OnceValues(func() ([]domain.Theme, error) {
	return parseThemes(builtinThemes)
})

// DefaultThemes returns the built-in adventure themes.
func DefaultThemes() ([]domain.Theme, error) {
	themes, err := defaultThemes()
	if err != nil {
		return nil, err
	}
	out := make([]domain.Theme, len(themes))
	copy(out, themes)
	return out, nil
}

// LoadThemes reads a theme catalogue in YAML form.
func LoadThemes(r io.Reader) ([]domain.Theme, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes: %w", err)
	}
	return parseThemes(data)
}

// LoadThemesFile reads a theme catalogue from path.
func LoadThemesFile(path string) ([]domain.Theme, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open themes file: %w", err)
	}
	defer f.Close()
	return LoadThemes(f)
}

func parseThemes(data []byte) ([]domain.Theme, error) {
	var c catalogue
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("invalid themes yaml: %w", err)
	}
	if err := validateThemes(c.Themes); err != nil {
		return nil, err
	}
	return c.Themes, nil
}

func validateThemes(themes []domain.Theme) error {
	if len(themes) == 0 {
		return errors.New("theme catalogue is empty")
	}
	seen := make(map[string]bool, len(themes))
	for i, t := range themes {
		if t.ID == "" || t.Name == "" || t.SystemPrompt == "" {
			return fmt.Errorf("theme #%d: id, name and system_prompt are required", i+1)
		}
		if seen[t.ID] {
			return fmt.Errorf("theme #%d: duplicate id %q", i+1, t.ID)
		}
		seen[t.ID] = true
	}
	return nil
}
