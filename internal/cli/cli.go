// Package cli holds flag parsing and logging helpers shared by the headless
// commands.
package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/juju/errors"
	"github.com/lmittmann/tint"

	"forestfire/internal/forest"
)

// NewLogger returns a tint-backed logger writing to w. verbose enables Debug
// records.
func NewLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    true,
	}))
}

// KVList collects repeated key=value flags.
type KVList []string

func (l *KVList) String() string {
	return strings.Join(*l, ",")
}

func (l *KVList) Set(value string) error {
	if !strings.Contains(value, "=") {
		return errors.NotValidf("override %q (want key=value)", value)
	}
	*l = append(*l, value)
	return nil
}

// Map returns the overrides keyed by name. Later entries win.
func (l KVList) Map() map[string]string {
	out := make(map[string]string, len(l))
	for _, kv := range l {
		k, v, _ := strings.Cut(kv, "=")
		out[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return out
}

// ParseCell reads an ignition cell written as "row,col".
func ParseCell(s string) (forest.Cell, error) {
	is, js, ok := strings.Cut(s, ",")
	if !ok {
		return forest.Cell{}, errors.NotValidf("cell %q (want row,col)", s)
	}
	i, err := strconv.Atoi(strings.TrimSpace(is))
	if err != nil {
		return forest.Cell{}, errors.NotValidf("cell row %q", is)
	}
	j, err := strconv.Atoi(strings.TrimSpace(js))
	if err != nil {
		return forest.Cell{}, errors.NotValidf("cell column %q", js)
	}
	return forest.Cell{I: i, J: j}, nil
}

// maxDensities bounds the number of points a density range may expand to.
const maxDensities = 10000

// ParseDensities accepts either a comma separated list ("0.1,0.5,0.9") or an
// inclusive range "lo:hi:step".
func ParseDensities(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, errors.NotValidf("empty density list")
	}
	if strings.Contains(s, ":") {
		return parseRange(s)
	}
	var out []float64
	for _, part := range strings.Split(s, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, errors.NotValidf("density %q", part)
		}
		out = append(out, v)
	}
	return out, nil
}

func parseRange(s string) ([]float64, error) {
	parts := strings.Split(s, ":")
	if len(parts) != 3 {
		return nil, errors.NotValidf("density range %q (want lo:hi:step)", s)
	}
	var vals [3]float64
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, errors.NotValidf("density range %q", s)
		}
		vals[i] = v
	}
	lo, hi, step := vals[0], vals[1], vals[2]
	if step <= 0 || hi < lo {
		return nil, errors.NotValidf("density range %q", s)
	}
	count := (hi-lo)/step + 1e-9
	if count >= maxDensities {
		return nil, errors.NotValidf("density range %q expands past %d points", s, maxDensities)
	}
	n := int(count) + 1
	out := make([]float64, n)
	for k := range out {
		// Round to suppress accumulated float noise in printed tables.
		v := lo + float64(k)*step
		out[k] = float64(int64(v*1e9+0.5)) / 1e9
	}
	return out, nil
}
