// Package results owns the on-disk results tree. Artifacts are keyed by a
// structured Key; filenames are a serialization detail derived from it, never
// the source of truth for joins.
package results

import (
	"strconv"
	"strings"
)

// CleanTag marks the unperturbed pass of an experiment cell.
const CleanTag = "clean"

// Key identifies one output cell. Two cells must never share a key: every
// write under a key replaces the whole file.
type Key struct {
	Task         string
	Perturbation string
	Level        float64
	Language     string
}

// Tag renders the perturbation identity for filenames. The clean pass has no
// level; perturbed passes append it so different levels of one perturbation
// occupy distinct cells.
func (k Key) Tag() string {
	if k.Perturbation == CleanTag || k.Perturbation == "" {
		return CleanTag
	}
	return k.Perturbation + "_" + FormatLevel(k.Level)
}

// Cell is a stable identifier for seed derivation and log fields.
func (k Key) Cell() string {
	return strings.Join([]string{k.Task, k.Tag(), k.Language}, "/")
}

// PredictionsName is {task}_{perturbation}_{language}_preds.csv.
func (k Key) PredictionsName() string {
	return k.Task + "_" + k.Tag() + "_" + k.Language + "_preds.csv"
}

// MetricsName is {task}_{perturbation}_{level}.json, the per-cell document
// mapping language to its metrics record.
func (k Key) MetricsName() string {
	return k.Task + "_" + k.Perturbation + "_" + FormatLevel(k.Level) + ".json"
}

// SummaryName is the per-language robustness report filename.
func (k Key) SummaryName() string {
	return "robustness_" + k.Task + "_" + k.Tag() + "_" + k.Language + ".json"
}

// ProvenanceName is the per-cell perturbation provenance filename.
func (k Key) ProvenanceName() string {
	return k.Task + "_" + k.Tag() + "_provenance.json"
}

// ConsistencyName is the per-language consistency report filename.
func (k Key) ConsistencyName() string {
	return "consistency_" + k.Task + "_" + k.Tag() + "_" + k.Language + ".json"
}

// FormatLevel renders a perturbation level the way the metrics filenames
// expect: shortest representation that round-trips.
func FormatLevel(level float64) string {
	return strconv.FormatFloat(level, 'g', -1, 64)
}

// ParsePredictionsName recovers (task, perturbation tag, language) from a
// predictions filename. The task is the first underscore-separated segment
// and the language the last one before the suffix; the perturbation tag keeps
// any interior underscores, so tags like "vowel_drop_0.1" parse correctly.
func ParsePredictionsName(name string) (Key, bool) {
	base, ok := strings.CutSuffix(name, "_preds.csv")
	if !ok {
		return Key{}, false
	}
	parts := strings.Split(base, "_")
	if len(parts) < 3 {
		return Key{}, false
	}
	key := Key{
		Task:     parts[0],
		Language: parts[len(parts)-1],
	}
	tag := strings.Join(parts[1:len(parts)-1], "_")
	if tag == CleanTag {
		key.Perturbation = CleanTag
		return key, true
	}
	// Split a trailing level off the tag when present.
	if i := strings.LastIndex(tag, "_"); i > 0 {
		if level, err := strconv.ParseFloat(tag[i+1:], 64); err == nil {
			key.Perturbation = tag[:i]
			key.Level = level
			return key, true
		}
	}
	key.Perturbation = tag
	return key, true
}
