// Package report writes simulation results as JSON.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lox/goofspiel/internal/simulator"
)

// PlayerSummary is one seat's aggregate in a report.
type PlayerSummary struct {
	Player     int     `json:"player"`
	Policy     string  `json:"policy"`
	MeanReturn float64 `json:"mean_return"`
	StdDev     float64 `json:"std_dev"`
	CI95Low    float64 `json:"ci95_low"`
	CI95High   float64 `json:"ci95_high"`
	MeanPoints float64 `json:"mean_points"`
	Wins       int     `json:"wins"`
	SharedWins int     `json:"shared_wins"`
}

// Report is the persisted form of a simulation run.
type Report struct {
	RunID        string          `json:"run_id"`
	Game         string          `json:"game"`
	Seed         int64           `json:"seed"`
	Playthroughs int             `json:"playthroughs"`
	Draws        int             `json:"draws"`
	TiedRounds   int             `json:"tied_rounds"`
	Rounds       int             `json:"rounds"`
	ElapsedMS    int64           `json:"elapsed_ms"`
	Players      []PlayerSummary `json:"players"`
	GeneratedAt  time.Time       `json:"generated_at"`
}

// FromResult summarises a simulation result.
func FromResult(res *simulator.Result, now time.Time) Report {
	st := res.Stats
	r := Report{
		RunID:        res.RunID,
		Game:         res.Game,
		Seed:         res.Seed,
		Playthroughs: st.Playthroughs,
		Draws:        st.Draws,
		TiedRounds:   st.TiedRounds,
		Rounds:       st.Rounds,
		ElapsedMS:    res.Elapsed.Milliseconds(),
		GeneratedAt:  now.UTC(),
	}
	for p := range st.Players {
		low, high := st.ConfidenceInterval95(p)
		name := ""
		if p < len(res.Policies) {
			name = res.Policies[p]
		}
		r.Players = append(r.Players, PlayerSummary{
			Player:     p,
			Policy:     name,
			MeanReturn: st.Mean(p),
			StdDev:     st.StdDev(p),
			CI95Low:    low,
			CI95High:   high,
			MeanPoints: st.MeanPoints(p),
			Wins:       st.Players[p].Wins,
			SharedWins: st.Players[p].Shared,
		})
	}
	return r
}

// Write stores r as indented JSON at path. Readers see either the previous
// file or the complete new one, never a partial write.
func Write(path string, r Report) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return writeAtomic(path, append(data, '\n'), 0o644)
}

// Read loads a report written by Write.
func Read(path string) (Report, error) {
	var r Report
	data, err := os.ReadFile(path)
	if err != nil {
		return r, err
	}
	if err := json.Unmarshal(data, &r); err != nil {
		return r, fmt.Errorf("decode report %s: %w", path, err)
	}
	return r, nil
}

// writeAtomic writes to a temp file in the target directory, so the rename
// stays on one filesystem, then renames it over path.
func writeAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			tmp.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	committed = true
	return nil
}
