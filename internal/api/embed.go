package api

import "fmt"

// embedURLTemplate is the streaming service's fixed track embed endpoint.
const embedURLTemplate = "https://open.spotify.com/embed/track/%s"

const trackURLTemplate = "https://open.spotify.com/track/%s"

// EmbedURL returns the embeddable player URL for a track.
func EmbedURL(trackID string) string {
	return fmt.Sprintf(embedURLTemplate, trackID)
}

// trackURL returns the public track page URL, used to fill the canonical
// track link for search results (which carry no URL on the wire).
func trackURL(trackID string) string {
	return fmt.Sprintf(trackURLTemplate, trackID)
}
