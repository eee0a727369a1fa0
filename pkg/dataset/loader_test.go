package dataset_test

import (
	"os"
	"path/filepath"
	"testing"

	"robustgo/pkg/core"
	"robustgo/pkg/dataset"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadJSONArray(t *testing.T) {
	path := writeFile(t, "data.json", `[
		{"id": "1", "language": "en", "text": "a good day", "label": "positive"},
		{"id": "2", "language": "hi", "premise": "p", "hypothesis": "h", "label": "entailment"}
	]`)

	examples, err := dataset.Load(path)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	require.Equal(t, "1", examples[0].ID)
	require.True(t, examples[1].IsPair())
}

func TestLoadJSONL(t *testing.T) {
	path := writeFile(t, "data.jsonl", `{"id": "1", "language": "en", "text": "one", "label": "a"}

{"id": "2", "language": "en", "text": "two", "label": "b"}
`)

	examples, err := dataset.Load(path)
	require.NoError(t, err)
	require.Len(t, examples, 2)
	require.Equal(t, "two", examples[1].Text)
}

func TestLoadSniffsFormatWithoutExtension(t *testing.T) {
	path := writeFile(t, "data", `{"id": "1", "language": "en", "text": "one", "label": "a"}`)

	examples, err := dataset.Load(path)
	require.NoError(t, err)
	require.Len(t, examples, 1)
}

func TestLoadNormalizesText(t *testing.T) {
	path := writeFile(t, "data.jsonl",
		`{"id": "1", "language": "en", "text": "ﬁne   and � dandy", "label": "a"}`)

	examples, err := dataset.Load(path)
	require.NoError(t, err)
	// NFKC folds the ligature, the replacement char is stripped, and runs of
	// whitespace collapse to single spaces.
	require.Equal(t, "fine and dandy", examples[0].Text)
}

func TestFilterLanguages(t *testing.T) {
	examples := []core.Example{
		{ID: "1", Language: "en"},
		{ID: "2", Language: "hi"},
		{ID: "3", Language: "bn"},
	}

	kept := dataset.FilterLanguages(examples, []string{"en", "bn"})
	require.Len(t, kept, 2)
	require.Equal(t, "1", kept[0].ID)
	require.Equal(t, "3", kept[1].ID)

	require.Len(t, dataset.FilterLanguages(examples, nil), 3)
}

func TestLimit(t *testing.T) {
	examples := []core.Example{{ID: "1"}, {ID: "2"}, {ID: "3"}}
	require.Len(t, dataset.Limit(examples, 2), 2)
	require.Len(t, dataset.Limit(examples, 0), 3)
	require.Len(t, dataset.Limit(examples, 10), 3)
}

func TestStats(t *testing.T) {
	examples := []core.Example{
		{ID: "1", Language: "en"},
		{ID: "2", Language: "en"},
		{ID: "3"},
	}
	counts := dataset.Stats(examples)
	require.Equal(t, 2, counts["en"])
	require.Equal(t, 1, counts["unknown"])
}
