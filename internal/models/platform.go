package models

import (
	"fmt"
	"strings"
)

// Platform identifies a target social network.
type Platform string

const (
	YouTube   Platform = "youtube"
	Instagram Platform = "instagram"
	TikTok    Platform = "tiktok"
	Kawai     Platform = "kawai"
)

// AllPlatforms returns every supported platform in display order.
func AllPlatforms() []Platform {
	return []Platform{YouTube, Instagram, TikTok, Kawai}
}

// ParsePlatform normalizes a platform identifier string.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(strings.ToLower(strings.TrimSpace(s)))
	if !p.Valid() {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

// Valid reports whether p is one of the supported platforms.
func (p Platform) Valid() bool {
	switch p {
	case YouTube, Instagram, TikTok, Kawai:
		return true
	}
	return false
}

// Display returns a human-readable platform name.
func (p Platform) Display() string {
	switch p {
	case YouTube:
		return "YouTube"
	case Instagram:
		return "Instagram"
	case TikTok:
		return "TikTok"
	case Kawai:
		return "Kawai"
	}
	return string(p)
}

// CredentialField describes one input of a platform's connect form.
type CredentialField struct {
	Key    string // form/payload key, e.g. "apiKey"
	Label  string
	Secret bool // mask input when rendering
}

// CredentialFields returns the connect form definition for the platform.
// Field sets mirror what the backend's credential validation expects.
func (p Platform) CredentialFields() []CredentialField {
	switch p {
	case YouTube:
		return []CredentialField{
			{Key: "apiKey", Label: "API Key", Secret: true},
			{Key: "channelId", Label: "Channel ID"},
		}
	case Instagram:
		return []CredentialField{
			{Key: "username", Label: "Username"},
			{Key: "access_token", Label: "Access Token", Secret: true},
		}
	case TikTok:
		return []CredentialField{
			{Key: "accessToken", Label: "Access Token", Secret: true},
			{Key: "userId", Label: "User ID"},
		}
	case Kawai:
		return []CredentialField{
			{Key: "apiKey", Label: "API Key", Secret: true},
			{Key: "userId", Label: "User ID"},
		}
	}
	return nil
}

// PlatformStrings converts a platform slice to its string form for payloads.
func PlatformStrings(platforms []Platform) []string {
	out := make([]string, len(platforms))
	for i, p := range platforms {
		out[i] = string(p)
	}
	return out
}
