package resolve

// Package resolve adapts external media services behind the narrow
// interfaces the download pipeline needs: metadata resolution, byte-stream
// opening, URL recognition, and playlist expansion.
