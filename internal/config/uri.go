package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// DefaultPort is used when the URI names no port.
const DefaultPort = "9200"

// ParseURI parses an Elasticsearch URI and returns the base URL (without
// credentials, query or fragment), username and password. A bare host[:port]
// is treated as http, and a missing port defaults to 9200.
func ParseURI(raw string) (baseURL, username, password string, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", "", "", fmt.Errorf("invalid URI: empty")
	}
	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", "", "", fmt.Errorf("invalid URI %q: %w", raw, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", "", "", fmt.Errorf("unsupported scheme %q (must be http or https)", u.Scheme)
	}
	if u.Hostname() == "" {
		return "", "", "", fmt.Errorf("invalid URI %q: host is required", raw)
	}

	port := u.Port()
	if port == "" {
		port = DefaultPort
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < 1 || n > 65535 {
		return "", "", "", fmt.Errorf("invalid URI %q: port %q out of range", raw, port)
	}
	u.Host = net.JoinHostPort(u.Hostname(), port)

	if u.User != nil {
		username = u.User.Username()
		password, _ = u.User.Password()
		u.User = nil
	}
	u.RawQuery = ""
	u.ForceQuery = false
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), username, password, nil
}
