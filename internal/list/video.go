package list

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidateVideo checks a video URL against the set of accepted hosts and
// returns it in canonical form, so that equal videos always compare
// equal in diffs.
func ValidateVideo(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", ConstraintError{Field: "video", Message: "malformed video URL"}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", ConstraintError{Field: "video", Message: "video URL must use http or https"}
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	switch host {
	case "youtube.com":
		id := u.Query().Get("v")
		if id == "" {
			return "", ConstraintError{Field: "video", Message: "youtube URL is missing a video id"}
		}
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id), nil
	case "youtu.be":
		id := strings.Trim(u.Path, "/")
		if id == "" {
			return "", ConstraintError{Field: "video", Message: "youtube URL is missing a video id"}
		}
		return fmt.Sprintf("https://www.youtube.com/watch?v=%s", id), nil
	case "twitch.tv":
		path := strings.Trim(u.Path, "/")
		if path == "" {
			return "", ConstraintError{Field: "video", Message: "twitch URL is missing a video path"}
		}
		return fmt.Sprintf("https://www.twitch.tv/%s", path), nil
	}
	return "", ConstraintError{Field: "video", Message: fmt.Sprintf("unsupported video host: %s", host)}
}

// ValidateRawFootage checks that raw footage is a parseable absolute URL.
// Unlike videos, raw footage can live on any host.
func ValidateRawFootage(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || !u.IsAbs() {
		return ConstraintError{Field: "raw_footage", Message: "raw footage must be a valid URL"}
	}
	return nil
}
