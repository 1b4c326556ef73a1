package report

import (
	"fmt"

	"specview/internal/loader"

	"gopkg.in/yaml.v3"
)

// Dump serializes the whole loaded structure, for inspecting what was read.
func Dump(res *loader.Result) ([]byte, error) {
	out, err := yaml.Marshal(res)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return out, nil
}
