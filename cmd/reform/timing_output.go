package main

import (
	"encoding/json"
	"fmt"
	"io"

	"reform/internal/observ"
)

// printTimings writes the per-stage table, or the JSON report when asJSON.
func printTimings(out io.Writer, timer *observ.Timer, asJSON bool) {
	if out == nil || timer == nil {
		return
	}
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(timer.Report()); err != nil {
			panic(err)
		}
		return
	}
	if _, err := fmt.Fprint(out, timer.Summary()); err != nil {
		panic(err)
	}
}
