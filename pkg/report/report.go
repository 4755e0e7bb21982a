// Package report renders the final simulation state: the terminal report
// printed on termination and a JSON snapshot for tooling.
package report

import (
	"encoding/json"
	"fmt"
	"io"
)

// Snapshot is the architectural state at termination.
type Snapshot struct {
	Cycles int64      `json:"cycles"`
	PC     uint64     `json:"pc"`
	Regs   [32]uint64 `json:"regs"`
}

const separator = "---------------------------------------------------"

// Write prints the terminal report: a separator, the cycle count, the
// final PC, and all 32 registers as unsigned decimals.
func Write(w io.Writer, snap Snapshot) error {
	if _, err := fmt.Fprintf(w, "%s\nClock cycles = %d\nPC\t   = %d\n\n", separator, snap.Cycles, snap.PC); err != nil {
		return err
	}
	for i, v := range snap.Regs {
		if _, err := fmt.Fprintf(w, "%-5s= %d\n", fmt.Sprintf("x%d", i), v); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}

// WriteJSON writes the snapshot as an indented JSON document.
func WriteJSON(w io.Writer, snap Snapshot) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(snap)
}

// ReadJSON parses a snapshot previously written with WriteJSON.
func ReadJSON(r io.Reader) (Snapshot, error) {
	var snap Snapshot
	if err := json.NewDecoder(r).Decode(&snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}
