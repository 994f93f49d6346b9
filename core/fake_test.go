package core

import (
	"sort"

	"github.com/interlook/bigconverge/comm"
	"github.com/pkg/errors"
)

var errFake = errors.New("appliance failure")

// fakeAppliance keeps appliance state in memory and counts mutations
type fakeAppliance struct {
	keys      map[string][]byte
	certs     map[string][]byte
	templates []string
	pools     map[string][]comm.Member
	monitors  map[string]comm.MonitorRule
	http      map[string]*fakeHTTPProfile
	ssl       map[string]*fakeSSLProfile
	tcp       map[string]int
	rules     map[string]string
	ntp       []string
	timezone  string
	vss       map[string]comm.VirtualServer
	snat      map[string]string

	mutations int
	// failures makes the named operation return errFake
	failures map[string]bool
}

type fakeHTTPProfile struct {
	xff    bool
	parent string
}

type fakeSSLProfile struct {
	key, cert, chain string
}

func newFakeAppliance() *fakeAppliance {
	return &fakeAppliance{
		keys:      make(map[string][]byte),
		certs:     make(map[string][]byte),
		templates: []string{"/Common/http", "/Common/tcp", "/Common/tcp_half_open"},
		pools:     make(map[string][]comm.Member),
		monitors:  make(map[string]comm.MonitorRule),
		http:      make(map[string]*fakeHTTPProfile),
		ssl:       make(map[string]*fakeSSLProfile),
		tcp:       make(map[string]int),
		rules:     make(map[string]string),
		timezone:  "UTC",
		vss:       make(map[string]comm.VirtualServer),
		snat:      make(map[string]string),
		failures:  make(map[string]bool),
	}
}

func (f *fakeAppliance) appliance() Appliance {
	return Appliance{
		KeyCertificate:   f,
		Monitor:          f,
		Pool:             f,
		HTTPProfile:      fakeHTTP{f},
		ClientSSLProfile: fakeSSL{f},
		TCPProfile:       fakeTCP{f},
		Rule:             f,
		System:           f,
		VirtualServer:    f,
	}
}

func (f *fakeAppliance) fail(op string) error {
	if f.failures[op] {
		return errFake
	}
	return nil
}

func (f *fakeAppliance) mutate(op string) error {
	if err := f.fail(op); err != nil {
		return err
	}
	f.mutations++
	return nil
}

func keys(m interface{}) []string {
	var names []string
	switch v := m.(type) {
	case map[string][]byte:
		for k := range v {
			names = append(names, k)
		}
	case map[string][]comm.Member:
		for k := range v {
			names = append(names, k)
		}
	case map[string]string:
		for k := range v {
			names = append(names, k)
		}
	case map[string]int:
		for k := range v {
			names = append(names, k)
		}
	case map[string]comm.VirtualServer:
		for k := range v {
			names = append(names, k)
		}
	case map[string]*fakeHTTPProfile:
		for k := range v {
			names = append(names, k)
		}
	case map[string]*fakeSSLProfile:
		for k := range v {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// KeyCertificateAPI

func (f *fakeAppliance) Keys() ([]string, error) {
	return keys(f.keys), f.fail("Keys")
}

func (f *fakeAppliance) Certificates() ([]string, error) {
	return keys(f.certs), f.fail("Certificates")
}

func (f *fakeAppliance) ImportKey(name string, pem []byte) error {
	if err := f.mutate("ImportKey"); err != nil {
		return err
	}
	f.keys[name] = pem
	return nil
}

func (f *fakeAppliance) ImportCertificate(name string, pem []byte) error {
	if err := f.mutate("ImportCertificate"); err != nil {
		return err
	}
	f.certs[name] = pem
	return nil
}

func (f *fakeAppliance) DeleteKey(name string) error {
	if err := f.mutate("DeleteKey"); err != nil {
		return err
	}
	delete(f.keys, name)
	return nil
}

func (f *fakeAppliance) DeleteCertificate(name string) error {
	if err := f.mutate("DeleteCertificate"); err != nil {
		return err
	}
	delete(f.certs, name)
	return nil
}

// MonitorAPI

func (f *fakeAppliance) Templates() ([]string, error) {
	return f.templates, f.fail("Templates")
}

// PoolAPI

func (f *fakeAppliance) Pools() ([]string, error) {
	return keys(f.pools), f.fail("Pools")
}

func (f *fakeAppliance) CreatePool(name, lbMethod string, members []comm.Member) error {
	if err := f.mutate("CreatePool"); err != nil {
		return err
	}
	f.pools[name] = append([]comm.Member(nil), members...)
	return nil
}

func (f *fakeAppliance) MonitorAssociation(pool string) (comm.MonitorRule, error) {
	return f.monitors[pool], f.fail("MonitorAssociation")
}

func (f *fakeAppliance) SetMonitorAssociation(pool string, rule comm.MonitorRule) error {
	if err := f.mutate("SetMonitorAssociation"); err != nil {
		return err
	}
	f.monitors[pool] = rule
	return nil
}

func (f *fakeAppliance) Members(pool string) ([]comm.Member, error) {
	if _, ok := f.pools[pool]; !ok {
		return nil, errors.Errorf("pool %v not found", pool)
	}
	return f.pools[pool], f.fail("Members")
}

func (f *fakeAppliance) AddMember(pool string, member comm.Member) error {
	if err := f.mutate("AddMember"); err != nil {
		return err
	}
	f.pools[pool] = append(f.pools[pool], member)
	return nil
}

// RuleAPI

func (f *fakeAppliance) Rules() ([]string, error) {
	return keys(f.rules), f.fail("Rules")
}

func (f *fakeAppliance) CreateRule(rule comm.RuleDefinition) error {
	if err := f.mutate("CreateRule"); err != nil {
		return err
	}
	f.rules[rule.Name] = rule.Definition
	return nil
}

// SystemAPI

func (f *fakeAppliance) NTPServers() ([]string, error) {
	return f.ntp, f.fail("NTPServers")
}

func (f *fakeAppliance) SetNTPServers(servers []string) error {
	if err := f.mutate("SetNTPServers"); err != nil {
		return err
	}
	f.ntp = append([]string(nil), servers...)
	return nil
}

func (f *fakeAppliance) TimeZone() (string, error) {
	return f.timezone, f.fail("TimeZone")
}

// VirtualServerAPI

func (f *fakeAppliance) VirtualServers() ([]string, error) {
	return keys(f.vss), f.fail("VirtualServers")
}

func (f *fakeAppliance) CreateVirtualServer(vs comm.VirtualServer) error {
	if err := f.mutate("CreateVirtualServer"); err != nil {
		return err
	}
	f.vss[vs.Definition.Name] = vs
	return nil
}

func (f *fakeAppliance) SNATPool(vs string) (string, error) {
	return f.snat[vs], f.fail("SNATPool")
}

func (f *fakeAppliance) SetSNATPool(vs, pool string) error {
	if err := f.mutate("SetSNATPool"); err != nil {
		return err
	}
	f.snat[vs] = pool
	return nil
}

// profile kinds share method names, so each gets its own view

type fakeHTTP struct{ f *fakeAppliance }

func (h fakeHTTP) Profiles() ([]string, error) {
	return keys(h.f.http), h.f.fail("HTTPProfiles")
}

func (h fakeHTTP) CreateProfile(name string) error {
	if err := h.f.mutate("CreateHTTPProfile"); err != nil {
		return err
	}
	h.f.http[name] = &fakeHTTPProfile{}
	return nil
}

func (h fakeHTTP) InsertXForwardedFor(name string) (bool, error) {
	return h.f.http[name].xff, h.f.fail("InsertXForwardedFor")
}

func (h fakeHTTP) SetInsertXForwardedFor(name string) error {
	if err := h.f.mutate("SetInsertXForwardedFor"); err != nil {
		return err
	}
	h.f.http[name].xff = true
	return nil
}

func (h fakeHTTP) DefaultProfile(name string) (string, error) {
	return h.f.http[name].parent, h.f.fail("DefaultProfile")
}

func (h fakeHTTP) SetDefaultProfile(name, parent string) error {
	if err := h.f.mutate("SetDefaultProfile"); err != nil {
		return err
	}
	h.f.http[name].parent = parent
	return nil
}

type fakeSSL struct{ f *fakeAppliance }

func (s fakeSSL) Profiles() ([]string, error) {
	return keys(s.f.ssl), s.f.fail("SSLProfiles")
}

func (s fakeSSL) CreateProfile(name, key, cert string) error {
	if err := s.f.mutate("CreateSSLProfile"); err != nil {
		return err
	}
	s.f.ssl[name] = &fakeSSLProfile{key: key, cert: cert}
	return nil
}

func (s fakeSSL) ChainFile(name string) (string, error) {
	return s.f.ssl[name].chain, s.f.fail("ChainFile")
}

func (s fakeSSL) SetChainFile(name, chain string) error {
	if err := s.f.mutate("SetChainFile"); err != nil {
		return err
	}
	s.f.ssl[name].chain = chain
	return nil
}

type fakeTCP struct{ f *fakeAppliance }

func (t fakeTCP) Profiles() ([]string, error) {
	return keys(t.f.tcp), t.f.fail("TCPProfiles")
}

func (t fakeTCP) CreateProfile(name string) error {
	if err := t.f.mutate("CreateTCPProfile"); err != nil {
		return err
	}
	t.f.tcp[name] = 300
	return nil
}

func (t fakeTCP) KeepAliveInterval(name string) (int, error) {
	return t.f.tcp[name], t.f.fail("KeepAliveInterval")
}

func (t fakeTCP) SetKeepAliveInterval(name string, seconds int) error {
	if err := t.f.mutate("SetKeepAliveInterval"); err != nil {
		return err
	}
	t.f.tcp[name] = seconds
	return nil
}
