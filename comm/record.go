package comm

import (
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const (
	// load balancing methods
	RoundRobin = "round-robin"

	// monitor rule types
	SingleRule = "single"

	// virtual server profile contexts
	ContextAll        = "all"
	ContextClientSide = "clientside"

	// virtual server resource types
	ResourcePool = "pool"

	ProtocolTCP = "tcp"
)

// Member holds the ip and port of a pool backend
type Member struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

// String returns the appliance form "host:port", "addr.port" for IPv6
func (m Member) String() string {
	return joinHostPort(m.Host, m.Port)
}

// ParseMember reads a member name as listed by the appliance, "host:port"
// or "addr.port" for IPv6. A partition prefix (/Common/) is ignored.
func ParseMember(name string) (Member, error) {
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}

	sep := ":"
	if strings.Count(name, ":") > 1 {
		sep = "."
	}
	i := strings.LastIndex(name, sep)
	if i <= 0 || i == len(name)-1 {
		return Member{}, errors.Errorf("missing port in member %q", name)
	}

	p, err := strconv.Atoi(name[i+1:])
	if err != nil {
		return Member{}, errors.Errorf("invalid member port %q", name[i+1:])
	}
	return Member{Host: name[:i], Port: p}, nil
}

// joinHostPort uses the appliance separator: "." after an IPv6 address
func joinHostPort(host string, port int) string {
	if strings.Contains(host, ":") {
		return host + "." + strconv.Itoa(port)
	}
	return host + ":" + strconv.Itoa(port)
}

// BuildMembers returns members for the given hosts on port, dropping duplicates and keeping order
func BuildMembers(hosts []string, port int) []Member {
	var members []Member
	seen := make(map[string]bool)

	for _, h := range hosts {
		m := Member{Host: h, Port: port}
		if seen[m.String()] {
			continue
		}
		seen[m.String()] = true
		members = append(members, m)
	}
	return members
}

// MonitorRule holds the health monitor association of a pool
type MonitorRule struct {
	Type      string   `json:"type"`
	Quorum    int      `json:"quorum"`
	Templates []string `json:"templates"`
}

// Has reports whether template is referenced by the rule
func (r MonitorRule) Has(template string) bool {
	for _, t := range r.Templates {
		if t == template {
			return true
		}
	}
	return false
}

// Definition identifies a virtual server
type Definition struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	Port     int    `json:"port"`
	Protocol string `json:"protocol"`
}

// Destination returns the appliance form "address:port", "addr.port" for IPv6
func (d Definition) Destination() string {
	return joinHostPort(d.Address, d.Port)
}

// Resource describes what a virtual server sends traffic to
type Resource struct {
	Type        string `json:"type"`
	DefaultPool string `json:"default_pool"`
}

// Profile attaches a named profile to a virtual server in a context
type Profile struct {
	Context string `json:"context"`
	Name    string `json:"name"`
}

// VirtualServer holds everything needed to create a virtual server
type VirtualServer struct {
	Definition Definition `json:"definition"`
	Wildmask   string     `json:"wildmask"`
	Resource   Resource   `json:"resource"`
	Profiles   []Profile  `json:"profiles"`
}

// ProfileNames returns the sorted names of the attached profiles
func (v VirtualServer) ProfileNames() []string {
	var names []string
	for _, p := range v.Profiles {
		names = append(names, p.Name)
	}
	sort.Strings(names)
	return names
}

// RuleDefinition holds an iRule name and body
type RuleDefinition struct {
	Name       string `json:"name"`
	Definition string `json:"definition"`
}
