package redact

import (
	"net/url"
	"regexp"
)

const placeholder = "[REDACTED]"

// secretPatterns are regex heuristics for credential material that can end
// up in server responses or transport errors.
var secretPatterns = []*regexp.Regexp{
	// Basic-auth userinfo embedded in URLs
	regexp.MustCompile(`//[^/@\s]+:[^/@\s]+@`),
	// Authorization header values echoed back by proxies
	regexp.MustCompile(`(?i)Authorization:\s*(Basic|Bearer|Digest)\s+[A-Za-z0-9+/=._-]+`),
	// Bearer tokens
	regexp.MustCompile(`(?i)Bearer\s+[A-Za-z0-9._-]{20,}`),
	// Generic secrets/tokens/passwords in assignments
	regexp.MustCompile(`(?i)(secret|token|password|passwd|credential)\s*[:=]\s*["']?[^"'\s]{8,}["']?`),
}

// Secrets replaces detected credential material in text with [REDACTED].
func Secrets(text string) string {
	result := text
	for _, pat := range secretPatterns {
		result = pat.ReplaceAllStringFunc(result, func(string) string {
			return placeholder
		})
	}
	return result
}

// URL returns rawURL with any userinfo removed, safe for logs and error
// messages. Unparseable input falls back to the regex scrubber.
func URL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Secrets(rawURL)
	}
	u.User = nil
	return u.String()
}
