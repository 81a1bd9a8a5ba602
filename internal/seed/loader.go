package seed

import (
	_ "embed"
	"fmt"
	"os"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/buckets/internal/domain"
)

//go:embed sample.yaml
var sampleYAML []byte

// Loader reads a seed fixture from disk.
type Loader struct {
	filePath string
}

// NewLoader creates a new fixture loader
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads, parses and checks the fixture file.
func (l *Loader) Load() (*Fixture, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture file: %w", err)
	}
	return Parse(data)
}

// LoadDefault returns the embedded sample fixture.
func LoadDefault() (*Fixture, error) {
	return Parse(sampleYAML)
}

// Parse decodes and checks fixture YAML.
func Parse(data []byte) (*Fixture, error) {
	var fx Fixture
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixture yaml: %w", err)
	}
	if err := fx.check(); err != nil {
		return nil, err
	}
	return &fx, nil
}

func (fx *Fixture) check() error {
	for i, b := range fx.Buckets {
		if b.Title == "" || utf8.RuneCountInString(b.Title) > domain.BucketTitleMaxLen {
			return fmt.Errorf("bucket %d: title must be 1 to %d characters", i, domain.BucketTitleMaxLen)
		}
		if b.Description == "" {
			return fmt.Errorf("bucket %q: description is required", b.Title)
		}
		for j, it := range b.Items {
			if it.Title == "" || utf8.RuneCountInString(it.Title) > domain.ItemTitleMaxLen {
				return fmt.Errorf("bucket %q item %d: title must be 1 to %d characters", b.Title, j, domain.ItemTitleMaxLen)
			}
		}
	}
	return nil
}
