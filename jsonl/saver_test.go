package jsonl_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/jsonl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaver_Save(t *testing.T) {
	t.Parallel()

	t.Run("appends pair to new file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "output.jsonl")
		pair := sidediff.FilePair{
			Old: sidediff.FileContents{Name: "main.go", Contents: "a\n"},
			New: sidediff.FileContents{Name: "main.go", Contents: "b\n"},
		}

		err := jsonl.NewSaver().Save(path, pair)

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Contains(t, string(content), `"name":"main.go"`)
		assert.Contains(t, string(content), `"contents":"b\n"`)
		assert.True(t, strings.HasSuffix(string(content), "\n"))
	})

	t.Run("appends to existing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "existing.jsonl")
		existing := `{"old":{"name":"old.txt","contents":""},"new":{"name":"old.txt","contents":"x"}}` + "\n"
		require.NoError(t, os.WriteFile(path, []byte(existing), 0o644))

		err := jsonl.NewSaver().Save(path, sidediff.FilePair{New: sidediff.FileContents{Name: "new.txt"}})

		require.NoError(t, err)
		content, err := os.ReadFile(path)
		require.NoError(t, err)
		lines := strings.Split(strings.TrimSpace(string(content)), "\n")
		require.Len(t, lines, 2)
		assert.Contains(t, lines[0], `"old.txt"`)
		assert.Contains(t, lines[1], `"new.txt"`)
	})

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nested", "dir", "output.jsonl")

		err := jsonl.NewSaver().Save(path, sidediff.FilePair{})

		require.NoError(t, err)
		_, err = os.Stat(path)
		assert.NoError(t, err)
	})

	t.Run("round trips through the loader", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "batch.jsonl")
		want := []sidediff.FilePair{
			{Old: sidediff.FileContents{Name: "a", Contents: "1\n2\n"}, New: sidediff.FileContents{Name: "a", Contents: "1\n3\n"}},
			{Old: sidediff.FileContents{Name: "b", Contents: "<tag> & \"quote\""}, New: sidediff.FileContents{Name: "b", Lang: "html"}},
		}
		saver := jsonl.NewSaver()
		for _, p := range want {
			require.NoError(t, saver.Save(path, p))
		}

		got, err := jsonl.NewLoader().Load(path)

		require.NoError(t, err)
		assert.Equal(t, want, got)
	})
}
