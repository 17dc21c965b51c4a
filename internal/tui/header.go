package tui

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top header bar.
//
// Layout:
//
//	left:   cluster name (or "Connecting to <URL>..." before the first cycle)
//	center: colored "● STATUS" indicator (or "● FETCH FAILED  <reason>")
//	right:  "Last: HH:MM:SS  Poll: Ns"
func renderHeader(app *App) string {
	width := app.width
	if width <= 0 {
		width = 80
	}

	var left, center, right string

	if app.result == nil {
		baseURL := ""
		if app.client != nil {
			baseURL = app.client.BaseURL()
		}
		left = "Connecting to " + sanitize(baseURL) + "..."
	} else {
		left = sanitize(app.result.Cluster.ClusterName)
		if left == "" && app.client != nil {
			left = sanitize(app.client.BaseURL())
		}
		status := strings.ToUpper(app.result.Cluster.Status)
		if status == "" {
			status = "UNKNOWN"
		}
		center = StatusStyle(app.result.Cluster.Status).Render("● " + status)
		right = StyleDim.Render(fmt.Sprintf("Last: %s  Poll: %s",
			app.lastUpdated.Format("15:04:05"), formatDuration(app.pollInterval)))
	}

	if app.err != nil {
		center = StyleError.Render("● FETCH FAILED  " + classifyError(app.err))
		right = ""
	}

	// StyleHeader has Padding(0, 1) so inner content width = total width - 2.
	innerWidth := width - 2
	const minLeft = 8
	if lipgloss.Width(center)+lipgloss.Width(right)+minLeft+2 > innerWidth {
		right = ""
	}
	if lipgloss.Width(center)+minLeft+1 > innerWidth {
		center = ""
	}
	avail := innerWidth - lipgloss.Width(center) - lipgloss.Width(right)
	if center != "" {
		avail--
	}
	if right != "" {
		avail--
	}
	left = truncate(left, avail)

	spacing := innerWidth - lipgloss.Width(left) - lipgloss.Width(center) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}
	leftSpacing := spacing / 2
	rightSpacing := spacing - leftSpacing

	row := left +
		strings.Repeat(" ", leftSpacing) +
		center +
		strings.Repeat(" ", rightSpacing) +
		right

	return StyleHeader.Width(width).Render(row)
}

// classifyError turns a fetch error into a short human-readable reason.
func classifyError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "401") || strings.Contains(lower, "unauthorized"):
		return "Authentication failed (401)"
	case strings.Contains(lower, "403") || strings.Contains(lower, "forbidden"):
		return "Authentication failed (403)"
	case strings.Contains(lower, "deadline exceeded") || strings.Contains(lower, "timeout"):
		return "Timeout"
	case isTLSError(err):
		return "TLS error"
	}
	return truncate(sanitize(msg), 43)
}

// isTLSError reports whether err looks like a certificate or handshake failure.
func isTLSError(err error) bool {
	if err == nil {
		return false
	}
	lower := strings.ToLower(err.Error())
	return strings.Contains(lower, "x509") ||
		strings.Contains(lower, "certificate") ||
		strings.Contains(lower, "tls")
}

// formatDuration formats a poll interval as a compact string, e.g. "10s", "2m" or "1m30s".
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	m := int(d / time.Minute)
	if s := int((d % time.Minute) / time.Second); s > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%dm", m)
}

// truncate shortens s to at most n cells, marking the cut with "...".
func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 3 {
		return string(r[:n])
	}
	return string(r[:n-3]) + "..."
}

// sanitize strips terminal escape sequences and control characters from
// text that came from the cluster.
func sanitize(s string) string {
	var b strings.Builder
	r := []rune(s)
	for i := 0; i < len(r); i++ {
		c := r[i]
		if c != 0x1b {
			if unicode.IsControl(c) {
				continue
			}
			b.WriteRune(c)
			continue
		}
		if i+1 >= len(r) {
			break
		}
		switch r[i+1] {
		case '[':
			// CSI: parameters end at a final byte in 0x40..0x7e.
			i += 2
			for i < len(r) && (r[i] < 0x40 || r[i] > 0x7e) {
				i++
			}
		case ']':
			// OSC: terminated by BEL or ESC \.
			i += 2
			for i < len(r) {
				if r[i] == 0x07 {
					break
				}
				if r[i] == 0x1b && i+1 < len(r) && r[i+1] == '\\' {
					i++
					break
				}
				i++
			}
		default:
			i++
		}
	}
	return b.String()
}
