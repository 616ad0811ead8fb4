// Package roster loads the house roster from its YAML file and syncs it into
// the store. The roster is out-of-band configuration: the engine only ever
// reads it, and rotation order is the file order.
package roster

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/danieljbk/regent-house-trash-duty-notif-bot/pkg/models"
)

// File is the on-disk roster document.
type File struct {
	Members []models.Member `yaml:"members"`
}

// Load parses and validates a roster file. Order is significant and preserved.
func Load(path string) ([]models.Member, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(b, &f); err != nil {
		return nil, fmt.Errorf("parse roster %s: %w", path, err)
	}
	if len(f.Members) == 0 {
		return nil, fmt.Errorf("roster %s has no members", path)
	}
	seen := make(map[string]bool, len(f.Members))
	for i, m := range f.Members {
		if m.Name == "" {
			return nil, fmt.Errorf("roster %s: member %d has no name", path, i)
		}
		if m.Phone == "" {
			return nil, fmt.Errorf("roster %s: member %q has no phone", path, m.Name)
		}
		if seen[m.Name] {
			return nil, fmt.Errorf("roster %s: duplicate member %q", path, m.Name)
		}
		seen[m.Name] = true
	}
	return f.Members, nil
}
