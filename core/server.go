package core

import (
	"os"
	"time"

	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/log"
	"github.com/interlook/bigconverge/provisioner/loadbalancer/f5ltm"
	"github.com/interlook/bigconverge/vip"
	"github.com/pkg/errors"
)

var Version = "0.1.0"

// Options holds the command line settings of a run
type Options struct {
	ConfigFile string
	Zone       string
	VipsFile   string
	Debug      bool
	KeepGoing  bool
	DeleteCert string
	ReportFile string
}

// Start converges the appliance and returns the process exit code
func Start(opts Options) int {
	if err := run(opts); err != nil {
		log.Error(err)
		return 1
	}
	return 0
}

func run(opts Options) error {
	cfg, err := config.ReadConfig(opts.ConfigFile)
	if err != nil {
		return err
	}

	if opts.Debug {
		cfg.Core.LogLevel = "DEBUG"
		cfg.F5LTM.Debug = true
	}
	if err := log.Init(cfg.Core.LogFile, cfg.Core.LogLevel); err != nil {
		return err
	}
	log.Infof("starting bigconverge %v", Version)

	// the document is validated before any appliance call
	var doc *vip.Document
	if opts.DeleteCert == "" {
		file := opts.VipsFile
		if file == "" {
			if opts.Zone == "" {
				return errors.New("a zone or an endpoints file is required")
			}
			file = cfg.VipsFile(opts.Zone)
		}
		if doc, err = vip.Load(file); err != nil {
			return err
		}
		log.Infof("loaded %d endpoints from %v", len(doc.LoadBalancing), file)
	}

	f5 := cfg.F5LTM
	if err := f5.Preflight(); err != nil {
		return err
	}
	if err := f5.Connect(); err != nil {
		return err
	}

	api := NewF5Appliance(f5)
	rep := NewReport()
	defer writeReport(rep, opts.ReportFile)

	if opts.DeleteCert != "" {
		m := NewCertificateManager(api.KeyCertificate, doc, cfg.Policy, cfg.Core.CertBaseDir, time.Now().Year(), rep)
		return m.Delete(opts.DeleteCert)
	}

	wf := NewWorkflow(api, doc, Settings{
		Policy:      cfg.Policy,
		CertBaseDir: cfg.Core.CertBaseDir,
		Year:        time.Now().Year(),
		KeepGoing:   opts.KeepGoing,
	}, rep)

	err = wf.Run()
	rep.Summary()
	return err
}

// NewF5Appliance wires the BIG-IP clients into an Appliance
func NewF5Appliance(f5 *f5ltm.BigIP) Appliance {
	return Appliance{
		KeyCertificate:   f5.KeyCertificate(),
		Monitor:          f5.Monitor(),
		Pool:             f5.Pool(),
		HTTPProfile:      f5.HTTPProfile(),
		ClientSSLProfile: f5.ClientSSLProfile(),
		TCPProfile:       f5.TCPProfile(),
		Rule:             f5.Rule(),
		System:           f5.System(),
		VirtualServer:    f5.VirtualServer(),
	}
}

func writeReport(rep *Report, file string) {
	if file == "" {
		return
	}

	f, err := os.Create(file)
	if err != nil {
		log.Errorf("could not create report file %v: %v", file, err)
		return
	}
	defer func() {
		if err := f.Close(); err != nil {
			log.Errorf("Error closing report file %v", err)
		}
	}()

	if err := rep.WriteJSON(f); err != nil {
		log.Errorf("could not write report %v", err)
	}
}
