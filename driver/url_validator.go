package driver

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"syscall"

	"story-pipeline/domain"
)

var (
	errPrivateAddress    = errors.New("access to private networks not allowed")
	errTooManyRedirects  = errors.New("too many redirects")
	errUnsupportedMedium = errors.New("unsupported content type")
)

var blockedPorts = map[string]bool{
	"22": true, "23": true, "25": true, "53": true, "110": true,
	"143": true, "993": true, "995": true, "1433": true, "3306": true,
	"5432": true, "6379": true, "11211": true,
}

var internalSuffixes = []string{".local", ".internal", ".corp", ".lan", ".localhost"}

// ValidateArticleURL parses rawURL and rejects anything that is not a public http(s) page.
// Errors wrap domain.ErrInvalidURL.
func ValidateArticleURL(rawURL string, allowPrivate bool) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, fmt.Errorf("%w: URL cannot be empty", domain.ErrInvalidURL)
	}

	parsed, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, fmt.Errorf("%w: only HTTP or HTTPS schemes allowed", domain.ErrInvalidURL)
	}

	if parsed.Hostname() == "" {
		return nil, fmt.Errorf("%w: URL must contain a host", domain.ErrInvalidURL)
	}

	if parsed.User != nil {
		return nil, fmt.Errorf("%w: credentials in URL not allowed", domain.ErrInvalidURL)
	}

	if allowPrivate {
		return parsed, nil
	}

	if port := parsed.Port(); port != "" && blockedPorts[port] {
		return nil, fmt.Errorf("%w: access to port %s is not allowed", domain.ErrInvalidURL, port)
	}

	if isPrivateHost(parsed.Hostname()) {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidURL, errPrivateAddress)
	}

	return parsed, nil
}

func isPrivateHost(hostname string) bool {
	if ip := net.ParseIP(hostname); ip != nil {
		return isPrivateIP(ip)
	}

	hostname = strings.ToLower(strings.TrimSuffix(hostname, "."))
	if hostname == "localhost" || hostname == "metadata.google.internal" {
		return true
	}

	for _, suffix := range internalSuffixes {
		if strings.HasSuffix(hostname, suffix) {
			return true
		}
	}

	return false
}

func isPrivateIP(ip net.IP) bool {
	return ip.IsLoopback() ||
		ip.IsPrivate() ||
		ip.IsLinkLocalUnicast() ||
		ip.IsLinkLocalMulticast() ||
		ip.IsInterfaceLocalMulticast() ||
		ip.IsUnspecified()
}

// denyPrivateDial runs at connect time so DNS answers pointing inside the network are refused too.
func denyPrivateDial(_, address string, _ syscall.RawConn) error {
	host, _, err := net.SplitHostPort(address)
	if err != nil {
		return err
	}
	if ip := net.ParseIP(host); ip != nil && isPrivateIP(ip) {
		return errPrivateAddress
	}
	return nil
}
