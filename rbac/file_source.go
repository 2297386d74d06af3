package rbac

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// FileSource loads role grants from a YAML file. Used for development and
// tests where no database seed is available.
//
//	roles:
//	  - id: 1
//	    features: [1, 2]
//	  - id: 2
//	    features: [1]
type FileSource struct {
	path string
}

// NewFileSource creates a YAML-backed grant source.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

type fileGrants struct {
	Roles []struct {
		ID       int64   `yaml:"id"`
		Features []int64 `yaml:"features"`
	} `yaml:"roles"`
}

func (s *FileSource) Load(ctx context.Context) (map[int64][]int64, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("rbac: read grants file: %w", err)
	}

	var grants fileGrants
	if err := yaml.Unmarshal(data, &grants); err != nil {
		return nil, fmt.Errorf("rbac: parse grants file: %w", err)
	}

	out := make(map[int64][]int64, len(grants.Roles))
	for _, role := range grants.Roles {
		out[role.ID] = role.Features
	}
	return out, nil
}

// StaticSource serves a fixed grant map, mainly for tests.
type StaticSource map[int64][]int64

func (s StaticSource) Load(ctx context.Context) (map[int64][]int64, error) {
	return s, nil
}
