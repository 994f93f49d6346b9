package vip

import (
	"net"
	"os"
	"sort"

	"github.com/pkg/errors"
	"golang.org/x/net/idna"
	"gopkg.in/yaml.v3"
)

// Endpoint holds the desired state of one virtual IP
type Endpoint struct {
	// Name is the key of the entry in the document
	Name      string   `yaml:"-"`
	DNS       string   `yaml:"dns"`
	IP        string   `yaml:"ip"`
	FrontPort int      `yaml:"front_port"`
	BackPort  int      `yaml:"back_port"`
	Monitor   string   `yaml:"monitor"`
	Members   []string `yaml:"members"`
}

// Provisioned reports whether the endpoint has backends. Endpoints without
// members never get a pool or a virtual server.
func (e Endpoint) Provisioned() bool {
	return len(e.Members) > 0
}

// Public reports whether the endpoint domain is publicly exposed
func (e Endpoint) Public() bool {
	return IsPublic(e.DNS)
}

// Document is the endpoints file, loaded once per run
type Document struct {
	LoadBalancing map[string]Endpoint `yaml:"load_balancing"`
}

// Load reads and validates an endpoints document
func Load(file string) (*Document, error) {
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read endpoints file %v", file)
	}

	doc, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid endpoints file %v", file)
	}
	return doc, nil
}

// Parse decodes and validates an endpoints document
func Parse(data []byte) (*Document, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WithStack(err)
	}
	if len(doc.LoadBalancing) == 0 {
		return nil, errors.New("no load_balancing entry found")
	}

	for name, ep := range doc.LoadBalancing {
		ep.Name = name
		if err := ep.Validate(); err != nil {
			return nil, errors.Wrapf(err, "endpoint %v", name)
		}
		doc.LoadBalancing[name] = ep
	}
	return &doc, nil
}

// domainProfile accepts labels outside the STD3 host name rules, such as
// underscores, and rejects empty or oversized labels
var domainProfile = idna.New(
	idna.MapForLookup(),
	idna.StrictDomainName(false),
	idna.VerifyDNSLength(true),
	idna.BidiRule(),
)

// Validate checks the endpoint fields before any appliance call is made.
// Only the domain is required until the endpoint has members.
func (e Endpoint) Validate() error {
	if e.DNS == "" {
		return errors.New("dns is required")
	}
	if _, err := domainProfile.ToASCII(e.DNS); err != nil {
		return errors.Wrapf(err, "invalid dns %v", e.DNS)
	}

	if !e.Provisioned() {
		return nil
	}

	if net.ParseIP(e.IP) == nil {
		return errors.Errorf("invalid ip %q", e.IP)
	}
	if !validPort(e.FrontPort) {
		return errors.Errorf("invalid front_port %d", e.FrontPort)
	}
	if !validPort(e.BackPort) {
		return errors.Errorf("invalid back_port %d", e.BackPort)
	}
	if e.Monitor == "" {
		return errors.New("monitor is required")
	}
	for _, m := range e.Members {
		if m == "" {
			return errors.New("empty member")
		}
	}
	return nil
}

func validPort(p int) bool {
	return p > 0 && p < 65536
}

// Endpoints returns every entry sorted by name
func (d *Document) Endpoints() []Endpoint {
	names := make([]string, 0, len(d.LoadBalancing))
	for name := range d.LoadBalancing {
		names = append(names, name)
	}
	sort.Strings(names)

	eps := make([]Endpoint, 0, len(names))
	for _, name := range names {
		eps = append(eps, d.LoadBalancing[name])
	}
	return eps
}

// Public returns the entries with a public domain, sorted by name
func (d *Document) Public() []Endpoint {
	var eps []Endpoint
	for _, ep := range d.Endpoints() {
		if ep.Public() {
			eps = append(eps, ep)
		}
	}
	return eps
}

// Provisioned returns the entries with at least one member, sorted by name
func (d *Document) Provisioned() []Endpoint {
	var eps []Endpoint
	for _, ep := range d.Endpoints() {
		if ep.Provisioned() {
			eps = append(eps, ep)
		}
	}
	return eps
}
