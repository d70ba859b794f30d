package models

import "strings"

// SanitizeKeySegment escapes the key delimiter so a client-controlled segment
// cannot spill into an adjacent bucket.
func SanitizeKeySegment(s string) string {
	return strings.ReplaceAll(s, ":", "_")
}

// NewIPKey builds the bucket key for one client IP within an endpoint class.
// IPv6 addresses contain ':' and are sanitized like any other segment.
func NewIPKey(class EndpointClass, ip string) string {
	return "rl:" + string(class) + ":" + SanitizeKeySegment(ip)
}
