// Package dataset loads standardized examples from JSON and JSONL files and
// provides the filtering helpers experiments need.
package dataset

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"robustgo/pkg/core"
)

// Load reads a dataset file into memory. `.json` files hold an array of
// examples, `.jsonl` one example per line; files without a recognized
// extension are sniffed by their first non-space byte. Text fields are
// normalized on the way in.
func Load(path string) ([]core.Example, error) {
	format, err := detectFormat(path)
	if err != nil {
		return nil, err
	}

	var examples []core.Example
	switch format {
	case "json":
		examples, err = loadJSON(path)
	case "jsonl":
		examples, err = loadJSONL(path)
	default:
		err = errors.New("dataset: unsupported format")
	}
	if err != nil {
		return nil, err
	}

	for i := range examples {
		normalizeExample(&examples[i])
	}
	return examples, nil
}

// FilterLanguages keeps only examples whose language is in the target set.
// An empty target set keeps everything.
func FilterLanguages(examples []core.Example, languages []string) []core.Example {
	if len(languages) == 0 {
		return examples
	}
	targets := make(map[string]struct{}, len(languages))
	for _, lang := range languages {
		targets[lang] = struct{}{}
	}
	var kept []core.Example
	for _, ex := range examples {
		if _, ok := targets[ex.Language]; ok {
			kept = append(kept, ex)
		}
	}
	return kept
}

// Limit truncates the dataset to at most n examples; n <= 0 means no limit.
func Limit(examples []core.Example, n int) []core.Example {
	if n <= 0 || len(examples) <= n {
		return examples
	}
	return examples[:n]
}

// Stats counts examples per language.
func Stats(examples []core.Example) map[string]int {
	counts := make(map[string]int)
	for _, ex := range examples {
		lang := ex.Language
		if lang == "" {
			lang = "unknown"
		}
		counts[lang]++
	}
	return counts
}

func detectFormat(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jsonl":
		return "jsonl", nil
	case ".json":
		return "json", nil
	}

	file, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer file.Close()

	reader := bufio.NewReader(file)
	for {
		b, err := reader.ReadByte()
		if err != nil {
			return "", err
		}
		if strings.TrimSpace(string(b)) == "" {
			continue
		}
		if b == '[' {
			return "json", nil
		}
		if b == '{' {
			return "jsonl", nil
		}
		return "", errors.New("dataset: unsupported format")
	}
}

func loadJSON(path string) ([]core.Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var examples []core.Example
	if err := json.NewDecoder(file).Decode(&examples); err != nil {
		return nil, err
	}
	return examples, nil
}

func loadJSONL(path string) ([]core.Example, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	buf := make([]byte, 0, 1024*1024)
	scanner.Buffer(buf, 1024*1024)

	var examples []core.Example
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var ex core.Example
		if err := json.Unmarshal([]byte(line), &ex); err != nil {
			return nil, err
		}
		examples = append(examples, ex)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return examples, nil
}
