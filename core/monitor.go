package core

import "github.com/interlook/bigconverge/config"

// MonitorManager checks the custom monitor template is installed
type MonitorManager struct {
	api    MonitorAPI
	policy config.Policy
	report *Report
}

func NewMonitorManager(api MonitorAPI, policy config.Policy, rep *Report) *MonitorManager {
	return &MonitorManager{api: api, policy: policy, report: rep}
}

func (m *MonitorManager) Name() string {
	return "Monitor"
}

func (m *MonitorManager) Create() error {
	_, err := require(m.report, KindMonitor, m.policy.MonitorName, m.api.Templates)
	return err
}
