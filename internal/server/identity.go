package server

import (
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/Brownie44l1/minipig/internal/environ"
)

// resolveIdentity names the server after the host:port it is bound to
func resolveIdentity(addr string) environ.Identity {
	host, portStr, err := net.SplitHostPort(addr)
	if err != nil {
		return environ.Identity{Name: addr}
	}
	port, _ := strconv.Atoi(portStr)
	return environ.Identity{
		Name: fqdn(net.ParseIP(host)),
		Port: port,
	}
}

// fqdn returns the fully qualified name for ip. An unspecified address means
// this host. The first reverse-lookup name containing a dot wins; failing
// that, the first name; failing that, the input itself.
func fqdn(ip net.IP) string {
	var name string
	if ip == nil || ip.IsUnspecified() {
		host, err := os.Hostname()
		if err != nil {
			return "localhost"
		}
		name = host
	} else {
		name = ip.String()
	}

	var names []string
	if parsed := net.ParseIP(name); parsed != nil {
		names, _ = net.LookupAddr(parsed.String())
	} else {
		addrs, err := net.LookupHost(name)
		if err != nil || len(addrs) == 0 {
			return name
		}
		names, _ = net.LookupAddr(addrs[0])
		names = append([]string{name}, names...)
	}

	for _, n := range names {
		n = strings.TrimSuffix(n, ".")
		if strings.Contains(n, ".") {
			return n
		}
	}
	if len(names) > 0 {
		return strings.TrimSuffix(names[0], ".")
	}
	return name
}
