package core

import (
	"strconv"
	"strings"

	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/log"
	"github.com/interlook/bigconverge/vip"
	"github.com/pkg/errors"
)

// ProfileManager runs the HTTP, client SSL and TCP profile managers.
// A failure in one does not stop the others.
type ProfileManager struct {
	managers []Manager
}

func NewProfileManager(api Appliance, doc *vip.Document, policy config.Policy, year int, rep *Report) *ProfileManager {
	return &ProfileManager{
		managers: []Manager{
			&HTTPProfileManager{api: api.HTTPProfile, policy: policy, report: rep},
			&SSLProfileManager{api: api.ClientSSLProfile, doc: doc, policy: policy, year: year, report: rep},
			&TCPProfileManager{api: api.TCPProfile, policy: policy, report: rep},
		},
	}
}

func (m *ProfileManager) Name() string {
	return "Profile"
}

func (m *ProfileManager) Create() error {
	var failed []string
	for _, sub := range m.managers {
		if err := sub.Create(); err != nil {
			log.Errorf("%v failed: %v", sub.Name(), err)
			failed = append(failed, sub.Name()+": "+err.Error())
		}
	}

	if len(failed) > 0 {
		return errors.New(strings.Join(failed, "; "))
	}
	return nil
}

// HTTPProfileManager converges the X-Forwarded-For HTTP profile
type HTTPProfileManager struct {
	api    HTTPProfileAPI
	policy config.Policy
	report *Report
}

func (m *HTTPProfileManager) Name() string {
	return "ProfileHTTP"
}

func (m *HTTPProfileManager) Create() error {
	name := m.policy.HTTPProfile

	if _, err := ensure(m.report, KindHTTPProfile, name, m.api.Profiles, func() error {
		return m.api.CreateProfile(name)
	}); err != nil {
		return err
	}

	if _, err := ensureSetting(m.report, KindHTTPProfile, name, "x-forwarded-for",
		func() (bool, error) { return m.api.InsertXForwardedFor(name) },
		func() error { return m.api.SetInsertXForwardedFor(name) },
	); err != nil {
		return err
	}

	parent := m.policy.HTTPParentProfile
	_, err := ensureSetting(m.report, KindHTTPProfile, name, "default profile "+parent,
		func() (bool, error) {
			current, err := m.api.DefaultProfile(name)
			return current == parent, err
		},
		func() error { return m.api.SetDefaultProfile(name, parent) },
	)
	return err
}

// SSLProfileManager converges one client SSL profile per public endpoint
type SSLProfileManager struct {
	api    ClientSSLProfileAPI
	doc    *vip.Document
	policy config.Policy
	year   int
	report *Report
}

func (m *SSLProfileManager) Name() string {
	return "ProfileClientSSL"
}

func (m *SSLProfileManager) Create() error {
	chain := m.policy.IntermediateBundle + ".crt"
	chainBase := vip.BaseName(chain)

	for _, ep := range m.doc.Public() {
		name := vip.SSLProfileName(ep.DNS)
		key := vip.KeyReference(m.year, ep.DNS)
		cert := vip.CertReference(m.year, ep.DNS)

		if _, err := ensure(m.report, KindClientSSLProfile, name, m.api.Profiles, func() error {
			return m.api.CreateProfile(name, key, cert)
		}); err != nil {
			return err
		}

		// the appliance may report the chain with or without a path prefix
		if _, err := ensureSetting(m.report, KindClientSSLProfile, name, "chain file",
			func() (bool, error) {
				current, err := m.api.ChainFile(name)
				return current != "" && strings.Contains(current, chainBase), err
			},
			func() error { return m.api.SetChainFile(name, chain) },
		); err != nil {
			return err
		}
	}
	return nil
}

// TCPProfileManager converges the custom keepalive TCP profile
type TCPProfileManager struct {
	api    TCPProfileAPI
	policy config.Policy
	report *Report
}

func (m *TCPProfileManager) Name() string {
	return "ProfileTCP"
}

func (m *TCPProfileManager) Create() error {
	name := m.policy.TCPProfile
	interval := m.policy.TCPKeepAlive

	if _, err := ensure(m.report, KindTCPProfile, name, m.api.Profiles, func() error {
		return m.api.CreateProfile(name)
	}); err != nil {
		return err
	}

	_, err := ensureSetting(m.report, KindTCPProfile, name, "keepalive "+strconv.Itoa(interval),
		func() (bool, error) {
			current, err := m.api.KeepAliveInterval(name)
			return current == interval, err
		},
		func() error { return m.api.SetKeepAliveInterval(name, interval) },
	)
	return err
}
