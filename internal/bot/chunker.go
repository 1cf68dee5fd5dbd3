package bot

import (
	"strings"
	"unicode"
)

// MaxMessageLen is the hard per-message length limit of the Telegram Bot
// API.
const MaxMessageLen = 4096

// SplitMessage splits text into transport-sized segments, each at most
// limit bytes. Breaks are preferred at the last newline or space within the
// final fifth of the window; when no such boundary exists the segment is
// hard-cut at the limit, which guarantees forward progress on any input.
// The boundary character itself is dropped and the remainder is trimmed of
// leading whitespace.
func SplitMessage(text string, limit int) []string {
	if limit < 1 {
		limit = 1
	}

	var segments []string
	for len(text) > limit {
		window := text[:limit]
		floor := limit - limit/5

		cut := strings.LastIndexAny(window, "\n ")
		if cut >= floor {
			segments = append(segments, window[:cut])
			text = strings.TrimLeftFunc(text[cut:], unicode.IsSpace)
			continue
		}

		// No boundary close enough, hard cut.
		segments = append(segments, window)
		text = text[limit:]
	}

	if text != "" || len(segments) == 0 {
		segments = append(segments, text)
	}
	return segments
}
