/*
Package script replays a list of viewer operations against a migrated
document, the way a page script drives its viewers after load.

A script is JSON:

	{"steps": [
	  {"op": "move", "id": "robot", "args": ["25%", "50%"]},
	  {"op": "smooth-move", "id": "robot", "args": ["75", "50", "2"]},
	  {"op": "play", "id": "robot", "args": ["Wave", "800"]}
	]}

Steps run in order. Timed steps (smooth-move, play) finish before the next
step starts. An id of "*" addresses every viewer of the document.
*/
package script

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'stage.script'
func tracer() tracing.Trace {
	return tracing.Select("stage.script")
}

// All addresses every viewer.
const All = "*"

// Step is one operation on one or all viewers.
type Step struct {
	Op   string   `json:"op"`
	ID   string   `json:"id,omitempty"`
	Args []string `json:"args,omitempty"`
}

// Script is an ordered list of steps.
type Script struct {
	Steps []Step `json:"steps"`
}

// Parse decodes a JSON script.
func Parse(data []byte) (Script, error) {
	var s Script
	if err := json.Unmarshal(data, &s); err != nil {
		return Script{}, fmt.Errorf("script: parse: %w", err)
	}
	for i, st := range s.Steps {
		if _, ok := ops[st.Op]; !ok {
			return Script{}, fmt.Errorf("script: step %d: unknown op %q", i, st.Op)
		}
	}
	return s, nil
}

// Load reads and decodes a script file.
func Load(path string) (Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Script{}, fmt.Errorf("script: read %s: %w", path, err)
	}
	return Parse(data)
}
