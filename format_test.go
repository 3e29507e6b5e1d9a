package sidediff_test

import (
	"testing"

	"github.com/fwojciec/sidediff"
	"github.com/fwojciec/sidediff/compare"
	"github.com/stretchr/testify/assert"
)

func diffOf(oldText, newText string) *sidediff.Diff {
	return compare.NewEngine().Diff(sidediff.FilePair{
		Old: sidediff.FileContents{Name: "old.txt", Contents: oldText},
		New: sidediff.FileContents{Name: "new.txt", Contents: newText},
	}, sidediff.RefineNone)
}

const tenLines = "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n"

func TestFormatPatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		oldText string
		newText string
		context int
		want    string
	}{
		{
			name:    "identical files",
			oldText: "a\nb\n",
			newText: "a\nb\n",
			context: 3,
			want:    "",
		},
		{
			name:    "distant changes form separate hunks",
			oldText: tenLines,
			newText: "1\ntwo\n3\n4\n5\n6\n7\n8\nnine\n10\n",
			context: 1,
			want: "--- a/old.txt\n+++ b/new.txt\n" +
				"@@ -1,3 +1,3 @@\n 1\n-2\n+two\n 3\n" +
				"@@ -8,3 +8,3 @@\n 8\n-9\n+nine\n 10\n",
		},
		{
			name:    "overlapping context merges hunks",
			oldText: tenLines,
			newText: "1\ntwo\n3\n4\n5\n6\n7\n8\nnine\n10\n",
			context: 3,
			want: "--- a/old.txt\n+++ b/new.txt\n" +
				"@@ -1,10 +1,10 @@\n 1\n-2\n+two\n 3\n 4\n 5\n 6\n 7\n 8\n-9\n+nine\n 10\n",
		},
		{
			name:    "append at end",
			oldText: "a\n",
			newText: "a\nb\n",
			context: 3,
			want:    "--- a/old.txt\n+++ b/new.txt\n@@ -1 +1,2 @@\n a\n+b\n",
		},
		{
			name:    "final newline removed",
			oldText: "hello\n",
			newText: "hello",
			context: 3,
			want:    "--- a/old.txt\n+++ b/new.txt\n@@ -1 +1 @@\n-hello\n+hello\n\\ No newline at end of file\n",
		},
		{
			name:    "final newline added",
			oldText: "a\nb",
			newText: "a\nb\n",
			context: 3,
			want:    "--- a/old.txt\n+++ b/new.txt\n@@ -1,2 +1,2 @@\n a\n-b\n\\ No newline at end of file\n+b\n",
		},
		{
			name:    "unterminated context line",
			oldText: "a\nb",
			newText: "x\nb",
			context: 3,
			want:    "--- a/old.txt\n+++ b/new.txt\n@@ -1,2 +1,2 @@\n-a\n+x\n b\n\\ No newline at end of file\n",
		},
		{
			name:    "negative context is treated as zero",
			oldText: "a\nb\nc\n",
			newText: "a\nB\nc\n",
			context: -2,
			want:    "--- a/old.txt\n+++ b/new.txt\n@@ -2 +2 @@\n-b\n+B\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, sidediff.FormatPatch(diffOf(tt.oldText, tt.newText), tt.context))
		})
	}
}

func TestFormatPatch_Nil(t *testing.T) {
	t.Parallel()

	assert.Empty(t, sidediff.FormatPatch(nil, 3))
}
