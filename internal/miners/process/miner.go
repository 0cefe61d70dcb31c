// Package process discovers ordered process steps, preferring explicit
// "Step N:" markers and falling back to imperative-led lines.
package process

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
)

// ImperativeVerbs mark step-like sentences when no explicit markers exist.
// A line qualifies when its first word (lower-cased) is in this set.
var ImperativeVerbs = map[string]bool{
	"install": true, "remove": true, "check": true, "verify": true,
	"connect": true, "disconnect": true, "turn": true, "press": true,
	"open": true, "close": true, "inspect": true, "tighten": true,
	"measure": true, "apply": true, "ensure": true, "record": true,
	"clean": true, "replace": true, "adjust": true, "start": true,
	"stop": true, "attach": true, "secure": true, "calibrate": true,
}

// stepMarker matches explicit "Step N" markers with a trailing separator.
var stepMarker = regexp.MustCompile(`(?i)\bstep\s+(\d+)\s*[:.)\-]\s*`)

// Ensure Miner implements the port.
var _ driven.ProcessMiner = (*Miner)(nil)

// Miner extracts process steps. Stateless.
type Miner struct{}

// New creates a process miner.
func New() *Miner {
	return &Miner{}
}

// Extract returns steps ordered by position in the text. Explicit markers
// win; duplicate or regressing explicit numbers are renumbered so the final
// index sequence is always unique and strictly increasing.
func (m *Miner) Extract(text string) []domain.ProcessStep {
	if text == "" {
		return nil
	}

	if steps := m.explicitSteps(text); len(steps) > 0 {
		return steps
	}
	return m.imperativeSteps(text)
}

// explicitSteps parses "Step N:" markers. Each step's text runs to the next
// marker (or end of text), trimmed of trailing sentence punctuation.
func (m *Miner) explicitSteps(text string) []domain.ProcessStep {
	markers := stepMarker.FindAllStringSubmatchIndex(text, -1)
	if len(markers) == 0 {
		return nil
	}

	steps := make([]domain.ProcessStep, 0, len(markers))
	prev := 0
	for i, idx := range markers {
		end := len(text)
		if i+1 < len(markers) {
			end = markers[i+1][0]
		}
		body := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(text[idx[1]:end]), "."))
		if body == "" {
			continue
		}

		// Keep the explicit number when it still increases; otherwise
		// renumber past the previous index so duplicates never collide.
		index := prev + 1
		if explicit, err := strconv.Atoi(text[idx[2]:idx[3]]); err == nil && explicit > prev {
			index = explicit
		}
		prev = index

		steps = append(steps, domain.ProcessStep{Index: index, Text: body})
	}
	return steps
}

// imperativeSteps assigns sequential indices to verb-led lines or sentences.
func (m *Miner) imperativeSteps(text string) []domain.ProcessStep {
	var steps []domain.ProcessStep
	index := 0
	for _, candidate := range splitCandidates(text) {
		fields := strings.Fields(candidate)
		if len(fields) < 2 {
			continue
		}
		if !ImperativeVerbs[strings.ToLower(strings.Trim(fields[0], ".,;:"))] {
			continue
		}
		index++
		steps = append(steps, domain.ProcessStep{
			Index: index,
			Text:  strings.TrimRight(candidate, "."),
		})
	}
	return steps
}

// splitCandidates yields trimmed lines, further split on sentence boundaries
// so prose-style procedures are still discovered.
func splitCandidates(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(line), "-*• \t"))
		if line == "" {
			continue
		}
		for _, sentence := range strings.Split(line, ". ") {
			sentence = strings.TrimSpace(sentence)
			if sentence != "" {
				out = append(out, sentence)
			}
		}
	}
	return out
}
