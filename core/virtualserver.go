package core

import (
	"strings"

	"github.com/interlook/bigconverge/comm"
	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/vip"
)

const (
	monitorHTTP        = "http"
	monitorTCPHalfOpen = "tcp_half_open"
)

// VirtualServerManager creates virtual servers and binds their SNAT pool
type VirtualServerManager struct {
	api    VirtualServerAPI
	doc    *vip.Document
	policy config.Policy
	report *Report
}

func NewVirtualServerManager(api VirtualServerAPI, doc *vip.Document, policy config.Policy, rep *Report) *VirtualServerManager {
	return &VirtualServerManager{api: api, doc: doc, policy: policy, report: rep}
}

func (m *VirtualServerManager) Name() string {
	return "VirtualServer"
}

func (m *VirtualServerManager) Create() error {
	for _, ep := range m.doc.Provisioned() {
		vs := buildVirtualServer(ep, m.policy)
		name := vs.Definition.Name

		if _, err := ensure(m.report, KindVirtualServer, name, m.api.VirtualServers, func() error {
			return m.api.CreateVirtualServer(vs)
		}); err != nil {
			return err
		}

		snat := m.policy.SNATPool
		if _, err := ensureSetting(m.report, KindSNATPool, name, "snat pool "+snat,
			func() (bool, error) {
				current, err := m.api.SNATPool(name)
				return current == snat, err
			},
			func() error { return m.api.SetSNATPool(name, snat) },
		); err != nil {
			return err
		}
	}
	return nil
}

func buildVirtualServer(ep vip.Endpoint, policy config.Policy) comm.VirtualServer {
	return comm.VirtualServer{
		Definition: comm.Definition{
			Name:     vip.VirtualServerName(ep.DNS, ep.FrontPort),
			Address:  ep.IP,
			Port:     ep.FrontPort,
			Protocol: comm.ProtocolTCP,
		},
		Wildmask: policy.Wildmask,
		Resource: comm.Resource{
			Type:        comm.ResourcePool,
			DefaultPool: vip.PoolName(ep.DNS, ep.BackPort),
		},
		Profiles: selectProfiles(ep, policy),
	}
}

// selectProfiles picks the profiles attached to a new virtual server.
// A tcp_half_open endpoint outside the keepalive marker gets no transport
// profile at all.
func selectProfiles(ep vip.Endpoint, policy config.Policy) []comm.Profile {
	var profiles []comm.Profile

	if ep.Monitor == monitorTCPHalfOpen {
		if strings.Contains(ep.DNS, policy.KeepAliveMarker) {
			profiles = append(profiles, comm.Profile{Context: comm.ContextAll, Name: policy.TCPProfile})
		}
	} else {
		profiles = append(profiles, comm.Profile{Context: comm.ContextAll, Name: policy.BaseTCPProfile})
	}

	if ep.Monitor == monitorHTTP {
		profiles = append(profiles, comm.Profile{Context: comm.ContextAll, Name: policy.HTTPProfile})
		if ep.Public() {
			profiles = append(profiles, comm.Profile{Context: comm.ContextClientSide, Name: vip.SSLProfileName(ep.DNS)})
		}
	}

	return profiles
}
