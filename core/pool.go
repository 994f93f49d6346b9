package core

import (
	"github.com/interlook/bigconverge/comm"
	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/vip"
	"github.com/pkg/errors"
)

const (
	monitorRuleType   = comm.SingleRule
	monitorRuleQuorum = 0
)

// PoolManager creates pools, their monitor association and missing members
type PoolManager struct {
	api    PoolAPI
	doc    *vip.Document
	policy config.Policy
	report *Report
}

func NewPoolManager(api PoolAPI, doc *vip.Document, policy config.Policy, rep *Report) *PoolManager {
	return &PoolManager{api: api, doc: doc, policy: policy, report: rep}
}

func (m *PoolManager) Name() string {
	return "Pool"
}

func (m *PoolManager) Create() error {
	for _, ep := range m.doc.Provisioned() {
		name := vip.PoolName(ep.DNS, ep.BackPort)
		members := comm.BuildMembers(ep.Members, ep.BackPort)

		if _, err := ensure(m.report, KindPool, name, m.api.Pools, func() error {
			return m.api.CreatePool(name, m.policy.LBMethod, members)
		}); err != nil {
			return err
		}

		if err := m.setMonitor(name, vip.MonitorTemplate(ep.Monitor)); err != nil {
			return err
		}

		if err := m.addMissingMembers(name, members); err != nil {
			return err
		}
	}
	return nil
}

func (m *PoolManager) setMonitor(pool, template string) error {
	_, err := ensureSetting(m.report, KindPoolMonitor, pool, "monitor "+template,
		func() (bool, error) {
			rule, err := m.api.MonitorAssociation(pool)
			if err != nil {
				return false, err
			}
			return rule.Has(template), nil
		},
		func() error {
			return m.api.SetMonitorAssociation(pool, comm.MonitorRule{
				Type:      monitorRuleType,
				Quorum:    monitorRuleQuorum,
				Templates: []string{template},
			})
		})
	return err
}

// addMissingMembers adds desired members whose host is not in the pool.
// Members that are no longer desired are left in place.
func (m *PoolManager) addMissingMembers(pool string, desired []comm.Member) error {
	current, err := m.api.Members(pool)
	if err != nil {
		return errors.Wrapf(err, "could not list members of %v", pool)
	}

	hosts := make(map[string]bool, len(current))
	for _, c := range current {
		hosts[vip.BaseName(c.Host)] = true
	}

	missing := missingMembers(hosts, desired)
	if len(missing) == 0 {
		m.report.record(KindPoolMember, pool, Unchanged, "members already present")
		return nil
	}

	for _, member := range missing {
		if err := m.api.AddMember(pool, member); err != nil {
			return errors.Wrapf(err, "could not add member %v to %v", member, pool)
		}
		m.report.record(KindPoolMember, pool, Changed, "member "+member.String()+" added")
	}
	return nil
}

func missingMembers(hosts map[string]bool, desired []comm.Member) []comm.Member {
	var missing []comm.Member
	for _, d := range desired {
		if !hosts[d.Host] {
			missing = append(missing, d)
		}
	}
	return missing
}
