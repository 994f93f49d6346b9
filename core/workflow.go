package core

import (
	"strings"

	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/log"
	"github.com/interlook/bigconverge/vip"
	"github.com/pkg/errors"
)

// Manager converges one resource kind
type Manager interface {
	Name() string
	Create() error
}

// Workflow runs the managers in a fixed order
type Workflow struct {
	steps     []Manager
	report    *Report
	keepGoing bool
}

// Settings holds what the managers need besides the appliance
type Settings struct {
	Policy      config.Policy
	CertBaseDir string
	Year        int
	KeepGoing   bool
}

// NewWorkflow builds the managers for doc in the order
// Cert, Profile, System, Rule, Monitor, Pool, VirtualServer
func NewWorkflow(api Appliance, doc *vip.Document, s Settings, rep *Report) *Workflow {
	return &Workflow{
		steps: []Manager{
			NewCertificateManager(api.KeyCertificate, doc, s.Policy, s.CertBaseDir, s.Year, rep),
			NewProfileManager(api, doc, s.Policy, s.Year, rep),
			NewSystemManager(api.System, s.Policy, rep),
			NewRuleManager(api.Rule, s.Policy, rep),
			NewMonitorManager(api.Monitor, s.Policy, rep),
			NewPoolManager(api.Pool, doc, s.Policy, rep),
			NewVirtualServerManager(api.VirtualServer, doc, s.Policy, rep),
		},
		report:    rep,
		keepGoing: s.KeepGoing,
	}
}

// Steps returns the manager names in run order
func (w *Workflow) Steps() []string {
	var names []string
	for _, s := range w.steps {
		names = append(names, s.Name())
	}
	return names
}

// Run calls every manager. It stops at the first failure unless keepGoing is set.
func (w *Workflow) Run() error {
	var failed []string

	for _, step := range w.steps {
		log.Infof("%v", step.Name())

		if err := step.Create(); err != nil {
			log.Errorf("%v failed: %v", step.Name(), err)
			w.report.fail(step.Name())
			if !w.keepGoing {
				return errors.Wrapf(err, "%v", step.Name())
			}
			failed = append(failed, step.Name())
		}
	}

	if len(failed) > 0 {
		return errors.Errorf("failed steps: %v", strings.Join(failed, ", "))
	}
	return nil
}
