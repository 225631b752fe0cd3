package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitrone/qment/internal/document"
)

func TestWriteTextReadTextRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.json")
	require.NoError(t, WriteText(path, "hello"))

	got, err := ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", got)

	require.NoError(t, WriteText(path, "replaced"))
	got, err = ReadText(path)
	require.NoError(t, err)
	assert.Equal(t, "replaced", got)

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files must not be left behind")
}

func TestWriteTextMissingDirFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "doc.json")
	err := WriteText(path, "x")
	assert.Error(t, err)
}

func TestReadTextMissingFile(t *testing.T) {
	_, err := ReadText(filepath.Join(t.TempDir(), "nope.json"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestSaveLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bank.json")
	doc := document.New()
	q := document.NewSeededQuestion([]string{"Topic"})
	tags, err := q.Group("Topic")
	require.NoError(t, err)
	tags.Add("vectors")
	doc.AddSeededQuestion(4, q)
	doc.AddQuestion(1)

	require.NoError(t, SaveDocument(path, doc))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, []uint32{1, 4}, loaded.Numbers())
	got, err := loaded.Question(4)
	require.NoError(t, err)
	topic, err := got.Group("Topic")
	require.NoError(t, err)
	assert.Equal(t, []string{"vectors"}, topic.Slice())
}

func TestLoadDocumentMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"questions": {`), 0o644))

	doc, err := LoadDocument(path)
	require.Error(t, err)
	assert.Nil(t, doc)
	assert.True(t, errors.Is(err, document.ErrParse))
	assert.Contains(t, err.Error(), "bad.json")
}

func TestLoadDocumentWithoutQuestions(t *testing.T) {
	for _, body := range []string{"null", "{}", `{"version": 1}`} {
		t.Run(body, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "junk.json")
			require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

			doc, err := LoadDocument(path)
			assert.Nil(t, doc)
			assert.ErrorIs(t, err, document.ErrParse)
		})
	}
}

func TestParsePresetAcceptsComments(t *testing.T) {
	data := []byte(`{
		// suggestions per group
		"tags": {
			"Global": ["review"],
			"Topic": ["algebra", "geometry",],
		},
		"groups": ["Topic", "Difficulty"], /* seeded */
	}`)
	p, err := ParsePreset(data, "preset.jsonc")
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic", "Difficulty"}, p.Groups)
	assert.Equal(t, []string{"algebra", "geometry"}, p.Suggestions("Topic"))
	assert.Equal(t, []string{"review"}, p.Global())
}

func TestParsePresetMalformed(t *testing.T) {
	_, err := ParsePreset([]byte(`{"groups": "Topic"}`), "preset.json")
	require.Error(t, err)
	assert.True(t, errors.Is(err, document.ErrParse))
}

func TestSaveLoadPreset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preset.json")
	require.NoError(t, SavePreset(path, StarterPreset(nil)))

	p, err := LoadPreset(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Topic", "Difficulty"}, p.Groups)
	assert.Equal(t, []string{"easy", "medium", "hard"}, p.Suggestions("Difficulty"))
}
