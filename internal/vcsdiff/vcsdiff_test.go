package vcsdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDiff = `diff --git a/greet.go b/greet.go
index 1111111..2222222 100644
--- a/greet.go
+++ b/greet.go
@@ -1,4 +1,5 @@
 package greet

-func Hello() string {
+func Hello(name string) string {
+	_ = name
 	return "hi"
 }
`

func TestParse_SingleFileSingleHunk(t *testing.T) {
	files := Parse(sampleDiff)
	require.Len(t, files, 1)

	fd := files[0]
	assert.Equal(t, "greet.go", fd.OldPath)
	assert.Equal(t, "greet.go", fd.NewPath)
	require.Len(t, fd.Hunks, 1)

	h := fd.Hunks[0]
	assert.Equal(t, 1, h.OldStart)
	assert.Equal(t, 4, h.OldCount)
	assert.Equal(t, 1, h.NewStart)
	assert.Equal(t, 5, h.NewCount)

	var added, removed, context int
	for _, l := range h.Lines {
		switch l.Type {
		case LineAdded:
			added++
		case LineRemoved:
			removed++
		case LineContext:
			context++
		}
	}
	assert.Equal(t, 2, added)
	assert.Equal(t, 1, removed)
	assert.Equal(t, 3, context)
}

func TestChangedLines(t *testing.T) {
	files := Parse(sampleDiff)
	lines := ChangedLines(files[0])
	assert.Equal(t, []int{3, 4}, lines)
}

func TestParse_MultiFile(t *testing.T) {
	diff := sampleDiff + `diff --git a/other.go b/other.go
--- a/other.go
+++ b/other.go
@@ -10 +10 @@
-old
+new
`
	files := Parse(diff)
	require.Len(t, files, 2)
	assert.Equal(t, "other.go", files[1].NewPath)
	require.Len(t, files[1].Hunks, 1)
	assert.Equal(t, 10, files[1].Hunks[0].OldStart)
	assert.Equal(t, 1, files[1].Hunks[0].OldCount)
}

func TestParse_Empty(t *testing.T) {
	assert.Empty(t, Parse(""))
}
