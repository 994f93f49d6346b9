package core

import (
	"reflect"
	"sort"

	"github.com/interlook/bigconverge/config"
	"github.com/pkg/errors"
)

// SystemManager converges NTP servers and checks the timezone
type SystemManager struct {
	api    SystemAPI
	policy config.Policy
	report *Report
}

func NewSystemManager(api SystemAPI, policy config.Policy, rep *Report) *SystemManager {
	return &SystemManager{api: api, policy: policy, report: rep}
}

func (m *SystemManager) Name() string {
	return "System"
}

func (m *SystemManager) Create() error {
	if err := m.setNTPServers(); err != nil {
		return err
	}
	return m.checkTimezone()
}

// setNTPServers replaces the whole server list unless it holds the same
// addresses in any order
func (m *SystemManager) setNTPServers() error {
	want := m.policy.NTPServers

	_, err := ensureSetting(m.report, KindNTP, "servers", "ntp servers",
		func() (bool, error) {
			current, err := m.api.NTPServers()
			if err != nil {
				return false, err
			}
			return sameSet(current, want), nil
		},
		func() error { return m.api.SetNTPServers(want) },
	)
	return err
}

// checkTimezone only reports; the timezone cannot be set remotely
func (m *SystemManager) checkTimezone() error {
	tz, err := m.api.TimeZone()
	if err != nil {
		return errors.Wrap(err, "could not read timezone")
	}

	if tz == m.policy.Timezone {
		m.report.record(KindTimezone, tz, Unchanged, "already "+tz)
		return nil
	}

	m.report.record(KindTimezone, tz, ActionRequired, "need to set device to "+m.policy.Timezone+" time")
	return nil
}

func sameSet(a, b []string) bool {
	x := append([]string(nil), a...)
	y := append([]string(nil), b...)
	sort.Strings(x)
	sort.Strings(y)
	if len(x) == 0 && len(y) == 0 {
		return true
	}
	return reflect.DeepEqual(x, y)
}
