package logging

import (
	"net"
	"net/http"
	"strings"
)

// ClientIP returns the address of the original caller.
// X-Forwarded-For (first hop) wins over X-Real-IP, which wins over RemoteAddr.
// App Service front ends append the client port to X-Forwarded-For, so a
// trailing port is stripped from every source.
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		first, _, _ := strings.Cut(xff, ",")
		if ip := stripPort(strings.TrimSpace(first)); ip != "" {
			return ip
		}
	}

	if xri := strings.TrimSpace(r.Header.Get("X-Real-IP")); xri != "" {
		return stripPort(xri)
	}

	return stripPort(r.RemoteAddr)
}

func stripPort(addr string) string {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return strings.Trim(addr, "[]")
}
