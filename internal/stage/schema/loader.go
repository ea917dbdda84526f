package schema

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadArchetypeFromBytes parses and validates a single layout archetype from
// YAML.
func LoadArchetypeFromBytes(data []byte) (*LayoutArchetype, error) {
	var a LayoutArchetype
	if err := yaml.Unmarshal(data, &a); err != nil {
		return nil, fmt.Errorf("parsing archetype: %w", err)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	for i := range a.Levels {
		l := &a.Levels[i]
		if l.Elevation == 0 && l.Index != 0 {
			l.Elevation = float64(l.Index) * 4
		}
	}
	return &a, nil
}

// LoadArchetypesFromDir loads every layout archetype in dir. Files must use a
// .yaml or .yml extension; other files are ignored.
func LoadArchetypesFromDir(dir string) ([]*LayoutArchetype, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	archetypes := make([]*LayoutArchetype, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading archetype file %s: %w", path, err)
		}
		a, err := LoadArchetypeFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading archetype file %s: %w", path, err)
		}
		archetypes = append(archetypes, a)
	}
	return archetypes, nil
}

// LoadTemplateFromBytes parses and validates a single room template from YAML.
func LoadTemplateFromBytes(data []byte) (*RoomTemplate, error) {
	var t RoomTemplate
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("parsing room template: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// LoadTemplatesFromDir loads every room template in dir. Files must use a
// .yaml or .yml extension; other files are ignored.
func LoadTemplatesFromDir(dir string) ([]*RoomTemplate, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	templates := make([]*RoomTemplate, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading template file %s: %w", path, err)
		}
		t, err := LoadTemplateFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading template file %s: %w", path, err)
		}
		templates = append(templates, t)
	}
	return templates, nil
}

// LoadStageFromBytes parses and validates a single stage layout definition
// from YAML.
func LoadStageFromBytes(data []byte) (*StageDefinition, error) {
	var s StageDefinition
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parsing stage definition: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	for i := range s.Levels {
		for j := range s.Levels[i].Vertical {
			v := &s.Levels[i].Vertical[j]
			if v.LevelDelta == 0 {
				v.LevelDelta = 1
			}
		}
	}
	return &s, nil
}

// LoadStagesFromDir loads every stage layout definition in dir. Files must
// use a .yaml or .yml extension; other files are ignored.
func LoadStagesFromDir(dir string) ([]*StageDefinition, error) {
	files, err := yamlFiles(dir)
	if err != nil {
		return nil, err
	}
	stages := make([]*StageDefinition, 0, len(files))
	for _, path := range files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading stage file %s: %w", path, err)
		}
		s, err := LoadStageFromBytes(data)
		if err != nil {
			return nil, fmt.Errorf("loading stage file %s: %w", path, err)
		}
		stages = append(stages, s)
	}
	return stages, nil
}

// yamlFiles returns the paths of all YAML files directly inside dir, sorted
// by name.
func yamlFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, filepath.Join(dir, entry.Name()))
	}
	return files, nil
}
