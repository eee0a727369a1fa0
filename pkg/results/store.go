package results

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"robustgo/pkg/core"
)

// Row is one line of a persisted prediction table. Columns: id, text, label,
// prediction, score.
type Row struct {
	ID         string  `json:"id"`
	Text       string  `json:"text"`
	Label      string  `json:"label"`
	Prediction string  `json:"prediction"`
	Score      float64 `json:"score"`
}

// Store writes and reads the results tree for one experiment. All writes are
// whole files via temp file and rename, so concurrent cells writing distinct
// keys need no locking.
type Store struct {
	Dir string
}

func NewStore(dir string) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("results: dir is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Store{Dir: dir}, nil
}

// WritePredictions persists one cell's prediction table.
func (s *Store) WritePredictions(key Key, rows []Row) (string, error) {
	path := filepath.Join(s.Dir, key.PredictionsName())
	var sb strings.Builder
	w := csv.NewWriter(&sb)
	if err := w.Write([]string{"id", "text", "label", "prediction", "score"}); err != nil {
		return "", err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Text,
			row.Label,
			row.Prediction,
			strconv.FormatFloat(row.Score, 'f', 6, 64),
		}
		if err := w.Write(record); err != nil {
			return "", err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", err
	}
	return path, s.writeWhole(path, []byte(sb.String()))
}

// ReadPredictions loads a prediction table by path.
func (s *Store) ReadPredictions(path string) ([]Row, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 5 {
			return nil, fmt.Errorf("results: malformed prediction row in %s", path)
		}
		score, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			return nil, fmt.Errorf("results: bad score in %s: %w", path, err)
		}
		rows = append(rows, Row{
			ID:         record[0],
			Text:       record[1],
			Label:      record[2],
			Prediction: record[3],
			Score:      score,
		})
	}
	return rows, nil
}

// WriteMetrics persists the per-cell metrics document mapping language to its
// metrics record.
func (s *Store) WriteMetrics(key Key, doc map[string]core.MetricsRecord) (string, error) {
	path := filepath.Join(s.Dir, key.MetricsName())
	return path, s.writeJSON(path, doc)
}

// WriteSummary persists one language's robustness report.
func (s *Store) WriteSummary(key Key, summary core.RobustnessSummary) (string, error) {
	path := filepath.Join(s.Dir, key.SummaryName())
	return path, s.writeJSON(path, summary)
}

// WriteConsistency persists one language's consistency report in dir, beside
// the prediction tables it was derived from. The store root may hold several
// per-model subtrees whose keys would otherwise collide.
func (s *Store) WriteConsistency(dir string, key Key, report any) (string, error) {
	path := filepath.Join(dir, key.ConsistencyName())
	return path, s.writeJSON(path, report)
}

// WriteProvenance persists a cell's perturbation provenance records.
func (s *Store) WriteProvenance(key Key, records any) (string, error) {
	path := filepath.Join(s.Dir, key.ProvenanceName())
	return path, s.writeJSON(path, records)
}

// CleanPredictionFiles lists the clean-pass prediction tables under the
// store, recursing into per-model subdirectories.
func (s *Store) CleanPredictionFiles() ([]string, error) {
	var paths []string
	err := filepath.WalkDir(s.Dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		key, ok := ParsePredictionsName(d.Name())
		if ok && key.Perturbation == CleanTag {
			paths = append(paths, path)
		}
		return nil
	})
	return paths, err
}

// PerturbedCounterparts lists prediction tables sharing the clean file's task
// and language but carrying a different perturbation tag.
func (s *Store) PerturbedCounterparts(cleanPath string) ([]string, error) {
	cleanKey, ok := ParsePredictionsName(filepath.Base(cleanPath))
	if !ok {
		return nil, fmt.Errorf("results: %s is not a prediction table", cleanPath)
	}
	entries, err := os.ReadDir(filepath.Dir(cleanPath))
	if err != nil {
		return nil, err
	}
	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		key, ok := ParsePredictionsName(entry.Name())
		if !ok || key.Perturbation == CleanTag {
			continue
		}
		if key.Task == cleanKey.Task && key.Language == cleanKey.Language {
			paths = append(paths, filepath.Join(filepath.Dir(cleanPath), entry.Name()))
		}
	}
	return paths, nil
}

func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.writeWhole(path, append(data, '\n'))
}

func (s *Store) writeWhole(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), "tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
