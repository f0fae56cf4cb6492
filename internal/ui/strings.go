package ui

import (
	"fmt"
	"strings"
	"time"
)

// fitName shortens a filename to limit runes by cutting from the middle,
// keeping the extension visible so audio files stay recognisable.
func fitName(name string, limit int) string {
	name = strings.TrimSpace(name)
	runes := []rune(name)
	if limit <= 0 || len(runes) <= limit {
		return name
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	const ellipsis = "…"
	ext := ""
	if dot := strings.LastIndex(name, "."); dot > 0 {
		if e := []rune(name[dot:]); len(e) < 10 && len(e) < limit/2 {
			ext = name[dot:]
			runes = []rune(name[:dot])
		}
	}

	keep := limit - len([]rune(ext)) - 1
	prefix := keep / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + ellipsis + string(runes[len(runes)-suffix:]) + ext
}

// humanizeDuration renders an elapsed time as "12s", "3m 4s" or "1h 2m".
func humanizeDuration(d time.Duration) string {
	if d < time.Second {
		return "0s"
	}
	d = d.Round(time.Second)
	h := int(d / time.Hour)
	m := int(d % time.Hour / time.Minute)
	s := int(d % time.Minute / time.Second)
	switch {
	case h > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case m > 0:
		return fmt.Sprintf("%dm %ds", m, s)
	default:
		return fmt.Sprintf("%ds", s)
	}
}
