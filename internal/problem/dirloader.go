package problem

import (
	"encoding/json"
	"fmt"
	"path/filepath"
)

// Load reads "<root>/<problemID>/problem.json" and decodes it into a
// Problem.
func (d *DirLoader) Load(problemID string) (*Problem, error) {
	path := filepath.Join(d.Root, problemID, "problem.json")
	data, err := d.read(path)
	if err != nil {
		return nil, fmt.Errorf("read problem descriptor %q: %w", path, err)
	}
	var p Problem
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("decode problem descriptor %q: %w", path, err)
	}
	if p.ID == "" {
		p.ID = problemID
	}
	return &p, nil
}
