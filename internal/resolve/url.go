package resolve

import (
	"net/url"
	"strings"
)

// URL parameters and separators
const (
	VideoIDParam   = "v"
	PlaylistParam  = "list="
	ParamSeparator = "&"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// mediaHosts are the hostnames accepted as download sources.
var mediaHosts = map[string]bool{
	"youtube.com":       true,
	"www.youtube.com":   true,
	"m.youtube.com":     true,
	"music.youtube.com": true,
	"youtu.be":          true,
}

// IsMediaURL reports whether raw looks like a URL on a recognized media
// host. It only gates obvious garbage; full validation happens when the
// resolver actually fetches metadata.
func IsMediaURL(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return mediaHosts[strings.ToLower(u.Host)]
}

// ExtractVideoID pulls the video identifier out of watch and short-link
// URLs. Returns an empty string when none is present.
func ExtractVideoID(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	if strings.EqualFold(u.Host, "youtu.be") {
		return strings.Trim(u.Path, "/")
	}
	return u.Query().Get(VideoIDParam)
}

// extractPlaylistID extracts the playlist ID from various URL formats.
func extractPlaylistID(raw string) string {
	if !strings.Contains(raw, PlaylistParam) {
		return ""
	}
	parts := strings.Split(raw, PlaylistParam)
	if len(parts) < 2 {
		return ""
	}
	playlistPart := parts[1]
	if strings.Contains(playlistPart, ParamSeparator) {
		playlistPart = strings.Split(playlistPart, ParamSeparator)[0]
	}
	return playlistPart
}
