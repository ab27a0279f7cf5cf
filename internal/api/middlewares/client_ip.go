package middlewares

import (
	"net"
	"net/http"
	"net/netip"
	"strings"
)

// ClientIP resolves the address a request came from. Forwarding headers are
// only honoured when the direct peer is a trusted proxy. A nil *ClientIP
// trusts nobody.
type ClientIP struct {
	trusted []netip.Prefix
}

func NewClientIP(trustedProxies []netip.Prefix) *ClientIP {
	return &ClientIP{trusted: trustedProxies}
}

func (c *ClientIP) trusts(a netip.Addr) bool {
	if c == nil || !a.IsValid() {
		return false
	}
	a = a.Unmap()
	for _, p := range c.trusted {
		if p.Contains(a) {
			return true
		}
	}
	return false
}

// Resolve walks X-Forwarded-For from the right and returns the first hop that
// is not a trusted proxy. X-Real-IP is used when the chain is absent.
func (c *ClientIP) Resolve(r *http.Request) string {
	peer := peerAddr(r)
	addr, err := netip.ParseAddr(peer)
	if err != nil || !c.trusts(addr) {
		return peer
	}

	var hops []string
	for _, v := range r.Header.Values("X-Forwarded-For") {
		hops = append(hops, strings.Split(v, ",")...)
	}
	resolved := peer
	for i := len(hops) - 1; i >= 0; i-- {
		hop, err := netip.ParseAddr(strings.TrimSpace(hops[i]))
		if err != nil {
			break
		}
		resolved = hop.Unmap().String()
		if !c.trusts(hop) {
			return resolved
		}
	}
	if len(hops) > 0 {
		return resolved
	}

	if xrip, err := netip.ParseAddr(strings.TrimSpace(r.Header.Get("X-Real-IP"))); err == nil {
		return xrip.Unmap().String()
	}
	return peer
}

// peerAddr is the host part of RemoteAddr.
func peerAddr(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
