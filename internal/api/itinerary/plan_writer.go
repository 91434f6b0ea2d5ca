package itinerary

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/FACorreiaa/go-ireland-travel-planner/internal/types"
)

const (
	DefaultOutputDir  = "output"
	DefaultOutputFile = "travel_plan.json"
)

// SavePlanToFile writes the plan as indented JSON to dir/filename and returns the path.
func SavePlanToFile(plan *types.TravelPlan, dir, filename string) (string, error) {
	if dir == "" {
		dir = DefaultOutputDir
	}
	if filename == "" {
		filename = DefaultOutputFile
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(plan); err != nil {
		return "", fmt.Errorf("failed to encode plan: %w", err)
	}

	path := filepath.Join(dir, filename)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("failed to write plan: %w", err)
	}
	return path, nil
}
