package middleware

import (
	"crypto/subtle"
	"net"
	"net/http"
	"net/netip"
	"strings"

	"github.com/gorilla/mux"

	"github.com/iota-uz/restaurant-admin/pkg/configuration"
)

// OpsGuardConfig controls who may reach /health and the Prometheus endpoint.
type OpsGuardConfig struct {
	Enabled      bool
	Token        string
	CIDRs        []netip.Prefix
	RealIPHeader string
	Paths        []string
}

// NewOpsGuardConfig reads the OPS_GUARD_* settings. The guard only applies in production.
func NewOpsGuardConfig(conf *configuration.Configuration, paths ...string) OpsGuardConfig {
	return OpsGuardConfig{
		Enabled:      conf.GoAppEnvironment == configuration.Production && conf.OpsGuardEnabled,
		Token:        strings.TrimSpace(conf.OpsGuardToken),
		CIDRs:        parseCIDRs(conf.OpsGuardCIDRs),
		RealIPHeader: conf.RealIPHeader,
		Paths:        paths,
	}
}

func (c OpsGuardConfig) covers(path string) bool {
	for _, p := range c.Paths {
		if p == "" {
			continue
		}
		if path == p || strings.HasPrefix(path, strings.TrimRight(p, "/")+"/") {
			return true
		}
	}
	return false
}

func (c OpsGuardConfig) allows(r *http.Request) bool {
	if ip, ok := realIP(r, c.RealIPHeader); ok && len(c.CIDRs) > 0 {
		if addr, err := netip.ParseAddr(ip); err == nil {
			for _, p := range c.CIDRs {
				if p.Contains(addr) {
					return true
				}
			}
		}
	}
	if c.Token == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(opsToken(r)), []byte(c.Token)) == 1
}

// OpsGuard hides the guarded paths behind a 404 unless the caller comes from
// an allowed network or presents the ops token.
func OpsGuard(cfg OpsGuardConfig) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if cfg.Enabled && cfg.covers(r.URL.Path) && !cfg.allows(r) {
				http.NotFound(w, r)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func parseCIDRs(raw string) []netip.Prefix {
	parts := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ',' || r == ';' || r == ' ' || r == '\n' || r == '\t'
	})
	out := make([]netip.Prefix, 0, len(parts))
	for _, part := range parts {
		if p, err := netip.ParsePrefix(part); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// opsToken reads X-Ops-Token, then a bearer Authorization header.
func opsToken(r *http.Request) string {
	if t := strings.TrimSpace(r.Header.Get("X-Ops-Token")); t != "" {
		return t
	}
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) > len("bearer ") && strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return strings.TrimSpace(auth[len("bearer "):])
	}
	return ""
}

// realIP takes the first hop of header (X-Forwarded-For style) or RemoteAddr.
func realIP(r *http.Request, header string) (string, bool) {
	v := ""
	if header != "" {
		v = strings.TrimSpace(r.Header.Get(header))
		if i := strings.IndexByte(v, ','); i >= 0 {
			v = strings.TrimSpace(v[:i])
		}
	}
	if v == "" {
		v = strings.TrimSpace(r.RemoteAddr)
	}
	if v == "" {
		return "", false
	}
	if host, _, err := net.SplitHostPort(v); err == nil {
		return host, true
	}
	return v, true
}
