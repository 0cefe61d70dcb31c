// Package spec mines specification parameters (name, value, unit) out of
// technical text using "<name>: <value>[<unit>]", "<name> = <value>[<unit>]"
// and "<name> (<unit>): <value>" patterns.
package spec

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/doclens/doclens-cli/internal/core/domain"
	"github.com/doclens/doclens-cli/internal/core/ports/driven"
)

// UnitWhitelist is the closed set of recognised unit tokens. A trailing
// token outside this set leaves the parameter's unit nil and is discarded as
// overflow, unless it starts the next name/value pair; either way it never
// bleeds into a neighbouring parameter's name.
var UnitWhitelist = map[string]bool{
	"V": true, "mV": true, "kV": true,
	"A": true, "mA": true,
	"W": true, "kW": true, "MW": true,
	"Hz": true, "kHz": true, "MHz": true, "GHz": true,
	"Nm": true, "rpm": true, "RPM": true,
	"C": true, "°C": true, "F": true, "K": true,
	"bar": true, "psi": true, "Pa": true, "kPa": true, "MPa": true,
	"mm": true, "cm": true, "m": true, "km": true,
	"kg": true, "g": true,
	"s": true, "ms": true, "h": true,
	"ohm": true, "Ohm": true, "%": true, "dB": true,
	"L": true, "mL": true,
}

var (
	// parenPattern matches the "<name> (<unit>): <value>" variant.
	parenPattern = regexp.MustCompile(`([A-Za-z][A-Za-z _\-]{0,40}?)\s*\(([^)\s]{1,8})\)\s*[:=]\s*(\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?)`)

	// kvPattern matches "<name>: <value>" and "<name> = <value>". The unit
	// is deliberately not part of this pattern; it is probed separately and
	// the scan position advanced past it explicitly.
	kvPattern = regexp.MustCompile(`([A-Za-z][A-Za-z _\-]{0,40}?)\s*[:=]\s*(\d+(?:\.\d+)?(?:\s*-\s*\d+(?:\.\d+)?)?)`)

	// unitProbe reads the token immediately following a matched value.
	unitProbe = regexp.MustCompile(`^[ \t]*([A-Za-z%°Ω][A-Za-z%°Ω/0-9]*)`)

	// keyStartProbe detects a probed token that is itself the start of the
	// next "<name>: <value>" pair rather than a unit or overflow.
	keyStartProbe = regexp.MustCompile(`^\s*[:=]`)

	// rangePattern splits a hyphenated numeric range.
	rangePattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*-\s*(\d+(?:\.\d+)?)$`)
)

// Ensure Miner implements the port.
var _ driven.SpecificationMiner = (*Miner)(nil)

// Miner extracts specification parameters. Stateless.
type Miner struct{}

// New creates a specification miner.
func New() *Miner {
	return &Miner{}
}

// Extract returns parameters in document order. A hyphenated range parses to
// the mean of its bounds; a trailing token is accepted as the unit only when
// whitelisted.
func (m *Miner) Extract(text string) []domain.SpecificationParameter {
	if text == "" {
		return nil
	}

	var params []domain.SpecificationParameter
	var covered [][2]int

	// Parenthetical-unit variant first; its matches shadow the plain
	// key/value pattern over the same span.
	for _, idx := range parenPattern.FindAllStringSubmatchIndex(text, -1) {
		name := text[idx[2]:idx[3]]
		unitTok := text[idx[4]:idx[5]]
		rawValue := text[idx[6]:idx[7]]

		param := domain.SpecificationParameter{
			Name:         normalizeName(name),
			RawValue:     rawValue,
			NumericValue: parseValue(rawValue),
		}
		if UnitWhitelist[unitTok] {
			param.Unit = &unitTok
		}
		params = append(params, param)
		covered = append(covered, [2]int{idx[0], idx[1]})
	}

	pos := 0
	for pos < len(text) {
		loc := kvPattern.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}
		start, end := pos+loc[0], pos+loc[1]
		name := text[pos+loc[2] : pos+loc[3]]
		rawValue := text[pos+loc[4] : pos+loc[5]]
		pos = end

		if overlapsCovered(covered, start, end) {
			continue
		}

		param := domain.SpecificationParameter{
			Name:         normalizeName(name),
			RawValue:     rawValue,
			NumericValue: parseValue(rawValue),
		}

		// Consume the trailing token as the unit when whitelisted, and as
		// discarded overflow when it is neither a unit nor the key of the
		// next pair. Leaving overflow in the scan would glue it onto the
		// next parameter's name.
		if tok, tokEnd := probeToken(text[end:]); tok != "" {
			switch {
			case UnitWhitelist[tok]:
				unit := tok
				param.Unit = &unit
				pos = end + tokEnd
			case !keyStartProbe.MatchString(text[end+tokEnd:]):
				pos = end + tokEnd
			}
		}
		params = append(params, param)
	}

	return params
}

// probeToken reads the token right after a value, returning the token and
// the offset just past it. No adjacent token yields ("", 0).
func probeToken(rest string) (string, int) {
	idx := unitProbe.FindStringSubmatchIndex(rest)
	if idx == nil {
		return "", 0
	}
	return rest[idx[2]:idx[3]], idx[3]
}

// parseValue parses a single number or a hyphenated range (mean of bounds).
// Returns nil when the text is not numeric.
func parseValue(raw string) *float64 {
	if bounds := rangePattern.FindStringSubmatch(raw); bounds != nil {
		lo, errLo := strconv.ParseFloat(bounds[1], 64)
		hi, errHi := strconv.ParseFloat(bounds[2], 64)
		if errLo != nil || errHi != nil {
			return nil
		}
		mean := (lo + hi) / 2
		return &mean
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return nil
	}
	return &v
}

// normalizeName lower-cases, trims and collapses internal whitespace.
func normalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

func overlapsCovered(covered [][2]int, start, end int) bool {
	for _, span := range covered {
		if start < span[1] && end > span[0] {
			return true
		}
	}
	return false
}
