// Package publish sends the results of a beamgrid run to a socket.io server.
package publish

import (
	"encoding/json"
	"fmt"
)

// Payload is the document emitted for a finished run.
type Payload struct {
	RunID       string             `json:"run_id"`
	Grid        GridInfo           `json:"grid"`
	Simulations []SimulationResult `json:"simulations"`
	Scan        *ScanResult        `json:"scan,omitempty"`
}

type GridInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type SimulationResult struct {
	Name      string `json:"name"`
	Entry     string `json:"entry"`
	Energized int    `json:"energized"`
}

type ScanResult struct {
	BestEntry     string        `json:"best_entry"`
	BestEnergized int           `json:"best_energized"`
	Candidates    int           `json:"candidates"`
	Top           []RankedEntry `json:"top,omitempty"`
}

type RankedEntry struct {
	Rank      int    `json:"rank"`
	Entry     string `json:"entry"`
	Energized int    `json:"energized"`
}

// Map converts the payload to the generic form the socket.io encoder
// expects.
func (p *Payload) Map() (map[string]any, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode payload: %w", err)
	}
	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to decode payload: %w", err)
	}
	return out, nil
}
