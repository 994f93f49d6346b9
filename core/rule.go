package core

import (
	"github.com/interlook/bigconverge/comm"
	"github.com/interlook/bigconverge/config"
)

// RuleManager installs the https offload iRule
type RuleManager struct {
	api    RuleAPI
	policy config.Policy
	report *Report
}

func NewRuleManager(api RuleAPI, policy config.Policy, rep *Report) *RuleManager {
	return &RuleManager{api: api, policy: policy, report: rep}
}

func (m *RuleManager) Name() string {
	return "Rule"
}

func (m *RuleManager) Create() error {
	rule := comm.RuleDefinition{Name: m.policy.RuleName, Definition: m.policy.RuleBody}

	_, err := ensure(m.report, KindRule, rule.Name, m.api.Rules, func() error {
		return m.api.CreateRule(rule)
	})
	return err
}
