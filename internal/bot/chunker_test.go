package bot

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitMessage_ShortTextIsSingleSegment(t *testing.T) {
	segments := SplitMessage("hello world", 4096)
	require.Len(t, segments, 1)
	assert.Equal(t, "hello world", segments[0])
}

func TestSplitMessage_BreaksAtSpaceInWindow(t *testing.T) {
	// Text of length 5000 with a space at position 4050 and no other
	// boundary past it: the first segment must end right before that space.
	text := strings.Repeat("a", 4050) + " " + strings.Repeat("b", 949)
	require.Equal(t, 5000, len(text))

	segments := SplitMessage(text, 4096)

	require.Len(t, segments, 2)
	assert.Equal(t, strings.Repeat("a", 4050), segments[0])
	assert.Equal(t, strings.Repeat("b", 949), segments[1], "remainder trimmed of leading whitespace")
}

func TestSplitMessage_PrefersNewlineBoundary(t *testing.T) {
	text := strings.Repeat("x", 90) + "\n" + strings.Repeat("y", 50)
	segments := SplitMessage(text, 100)

	require.Len(t, segments, 2)
	assert.Equal(t, strings.Repeat("x", 90), segments[0])
	assert.Equal(t, strings.Repeat("y", 50), segments[1])
}

func TestSplitMessage_IgnoresBoundaryOutsideWindow(t *testing.T) {
	// The only space sits in the first 80% of the window, so a hard cut at
	// the limit wins over a tiny first segment.
	text := strings.Repeat("a", 10) + " " + strings.Repeat("b", 200)
	segments := SplitMessage(text, 100)

	require.GreaterOrEqual(t, len(segments), 2)
	assert.Equal(t, 100, len(segments[0]))
}

func TestSplitMessage_HardCutOnUnbreakableText(t *testing.T) {
	text := strings.Repeat("z", 10_000)
	segments := SplitMessage(text, 4096)

	require.Len(t, segments, 3)
	assert.Equal(t, 4096, len(segments[0]))
	assert.Equal(t, 4096, len(segments[1]))
	assert.Equal(t, 10_000-2*4096, len(segments[2]))
}

func TestSplitMessage_AllSegmentsWithinLimit(t *testing.T) {
	texts := []string{
		strings.Repeat("word ", 3000),
		strings.Repeat("block", 2000),
		strings.Repeat("line\n", 2500),
		"",
	}
	limits := []int{1, 7, 100, 4096}

	stripSpace := func(s string) string {
		return strings.Join(strings.Fields(s), "")
	}

	for _, text := range texts {
		for _, limit := range limits {
			segments := SplitMessage(text, limit)
			var rebuilt strings.Builder
			for _, s := range segments {
				assert.LessOrEqual(t, len(s), limit)
				rebuilt.WriteString(s)
			}
			// Only boundary whitespace may be dropped, never content.
			assert.Equal(t, stripSpace(text), stripSpace(rebuilt.String()))
		}
	}
}

func TestSplitMessage_EmptyInput(t *testing.T) {
	segments := SplitMessage("", 4096)
	require.Len(t, segments, 1)
	assert.Equal(t, "", segments[0])
}
