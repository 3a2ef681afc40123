package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"unicode/utf8"
)

const (
	MaxUsernameLength = 32
)

// GenerateUsername builds an ad-hoc display name from the request's
// User-Agent, e.g. "MacChrome421". Usernames are not identities; two
// devices can collide and that is fine.
func GenerateUsername(userAgent string) string {
	deviceType := "User"
	browserType := "Web"

	if userAgent != "" {
		switch {
		case strings.Contains(userAgent, "iPhone"), strings.Contains(userAgent, "iPad"):
			deviceType = "iOS"
		case strings.Contains(userAgent, "Android"):
			deviceType = "Android"
		case strings.Contains(userAgent, "Windows"):
			deviceType = "Windows"
		case strings.Contains(userAgent, "Mac"):
			deviceType = "Mac"
		case strings.Contains(userAgent, "Linux"):
			deviceType = "Linux"
		}

		switch {
		case strings.Contains(userAgent, "Edge"):
			browserType = "Edge"
		case strings.Contains(userAgent, "Chrome"):
			browserType = "Chrome"
		case strings.Contains(userAgent, "Firefox"):
			browserType = "Firefox"
		case strings.Contains(userAgent, "Safari"):
			browserType = "Safari"
		}
	}

	return fmt.Sprintf("%s%s%d", deviceType, browserType, rand.Intn(1000))
}

// SanitizeUsername trims whitespace and caps the length of a client-chosen
// display name. The cap backs off to the nearest rune boundary so a
// multi-byte character is never split. Returns "" when nothing usable remains.
func SanitizeUsername(username string) string {
	username = strings.TrimSpace(username)
	if len(username) > MaxUsernameLength {
		cut := MaxUsernameLength
		for cut > 0 && !utf8.RuneStart(username[cut]) {
			cut--
		}
		username = username[:cut]
	}
	return username
}
