package server

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/netip"
	"net/url"
	"syscall"
	"time"
)

// ErrBlockedAddress is returned when a download would dial a loopback,
// private, link-local or otherwise non-public address.
var ErrBlockedAddress = errors.New("server: address not allowed")

// ErrUnsupportedURL rejects anything but absolute http and https URLs.
var ErrUnsupportedURL = errors.New("server: only http and https urls are accepted")

const (
	guardDialTimeout    = 5 * time.Second
	guardHeaderTimeout  = 10 * time.Second
	guardTLSTimeout     = 5 * time.Second
	guardMaxConnsIdle   = 16
	guardIdleConnExpiry = 90 * time.Second
)

// NewGuardedClient returns an http.Client for fetching user-supplied URLs.
// Every dial, redirects included, is checked against the resolved IP, so
// DNS names pointing at internal addresses are refused too.
func NewGuardedClient() *http.Client {
	dialer := &net.Dialer{
		Timeout: guardDialTimeout,
		Control: guardControl,
	}
	return &http.Client{
		Transport: &http.Transport{
			DialContext:           dialer.DialContext,
			ResponseHeaderTimeout: guardHeaderTimeout,
			TLSHandshakeTimeout:   guardTLSTimeout,
			MaxIdleConns:          guardMaxConnsIdle,
			IdleConnTimeout:       guardIdleConnExpiry,
		},
	}
}

func guardControl(_, address string, _ syscall.RawConn) error {
	ap, err := netip.ParseAddrPort(address)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, address)
	}
	if !publicAddr(ap.Addr()) {
		return fmt.Errorf("%w: %s", ErrBlockedAddress, ap.Addr())
	}
	return nil
}

func publicAddr(a netip.Addr) bool {
	a = a.Unmap()
	switch {
	case !a.IsValid(),
		a.IsUnspecified(),
		a.IsLoopback(),
		a.IsPrivate(),
		a.IsLinkLocalUnicast(),
		a.IsLinkLocalMulticast(),
		a.IsInterfaceLocalMulticast(),
		a.IsMulticast():
		return false
	}
	return !cgnat.Contains(a)
}

// cgnat is the RFC 6598 shared address space.
var cgnat = netip.MustParsePrefix("100.64.0.0/10")

// checkURL accepts absolute http(s) URLs with a host.
func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", ErrUnsupportedURL, raw)
	}
	return nil
}
