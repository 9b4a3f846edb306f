package ratelimit

import (
	"strings"
)

// healthConfig marks the health check as unlimited
var healthConfig = EndpointConfig{Path: "/health", Method: "GET"}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact patterns win over "*" segment patterns, which win over "/" prefixes.
// Returns nil if nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if path == healthConfig.Path && method == healthConfig.Method {
		return &healthConfig
	}

	var segmentMatch, prefixMatch *EndpointConfig
	for i := range configs {
		config := &configs[i]
		if config.Method != method {
			continue
		}
		switch {
		case config.Path == path:
			return config
		case segmentMatch == nil && strings.Contains(config.Path, "*") && matchSegments(config.Path, path):
			segmentMatch = config
		case prefixMatch == nil && strings.HasSuffix(config.Path, "/") && strings.HasPrefix(path, config.Path):
			prefixMatch = config
		}
	}

	if segmentMatch != nil {
		return segmentMatch
	}
	return prefixMatch
}

// matchSegments reports whether path has the same segments as pattern, where
// a "*" segment matches any single non-empty segment.
func matchSegments(pattern, path string) bool {
	want := strings.Split(strings.Trim(pattern, "/"), "/")
	got := strings.Split(strings.Trim(path, "/"), "/")
	if len(want) != len(got) {
		return false
	}
	for i := range want {
		if want[i] == "*" {
			if got[i] == "" {
				return false
			}
			continue
		}
		if want[i] != got[i] {
			return false
		}
	}
	return true
}
