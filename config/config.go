package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/interlook/bigconverge/provisioner/loadbalancer/f5ltm"
	"github.com/pkg/errors"
)

// Configuration holds the tool configuration read from the TOML file
type Configuration struct {
	Core   CoreConfig   `toml:"core"`
	F5LTM  *f5ltm.BigIP `toml:"f5ltm"`
	Policy Policy       `toml:"policy"`
}

type CoreConfig struct {
	LogLevel    string `toml:"logLevel"`
	LogFile     string `toml:"logFile"`
	VipsDir     string `toml:"vipsDir"`
	CertBaseDir string `toml:"certBaseDir"`
}

// Policy holds the fixed appliance settings every run converges to
type Policy struct {
	LBMethod           string   `toml:"lbMethod"`
	MonitorName        string   `toml:"monitorName"`
	HTTPProfile        string   `toml:"httpProfile"`
	HTTPParentProfile  string   `toml:"httpParentProfile"`
	TCPProfile         string   `toml:"tcpProfile"`
	TCPKeepAlive       int      `toml:"tcpKeepAlive"`
	BaseTCPProfile     string   `toml:"baseTcpProfile"`
	IntermediateBundle string   `toml:"intermediateBundle"`
	RuleName           string   `toml:"ruleName"`
	RuleBody           string   `toml:"ruleBody"`
	NTPServers         []string `toml:"ntpServers"`
	Timezone           string   `toml:"timezone"`
	SNATPool           string   `toml:"snatPool"`
	Wildmask           string   `toml:"wildmask"`
	// endpoints monitored with tcp_half_open only get the keepalive
	// TCP profile when their domain contains this marker
	KeepAliveMarker string `toml:"keepAliveMarker"`
}

const defaultRuleBody = `when HTTP_REQUEST {
  HTTP::header remove "X-Forwarded-Protocol";
  HTTP::header insert "X-Forwarded-Protocol" "https";
}`

// DefaultPolicy returns the policy applied when the file does not override it
func DefaultPolicy() Policy {
	return Policy{
		LBMethod:           "round-robin",
		MonitorName:        "/Common/mysql_monitor",
		HTTPProfile:        "/Common/http-xff",
		HTTPParentProfile:  "/Common/http",
		TCPProfile:         "/Common/tcp-custom-keepalive",
		TCPKeepAlive:       180,
		BaseTCPProfile:     "/Common/tcp",
		IntermediateBundle: "/Common/verisign_intermediate_bundle",
		RuleName:           "/Common/https-offloaded-header",
		RuleBody:           defaultRuleBody,
		NTPServers:         []string{"12.129.64.150", "63.240.192.73", "63.240.192.148"},
		Timezone:           "UTC",
		SNATPool:           "/Common/fake-backend-snat",
		Wildmask:           "255.255.255.255",
		KeepAliveMarker:    "messaging",
	}
}

// Default returns a configuration with every default set
func Default() *Configuration {
	return &Configuration{
		Core: CoreConfig{
			LogLevel:    "INFO",
			LogFile:     "stdout",
			VipsDir:     filepath.Join("..", "conf"),
			CertBaseDir: filepath.Join("..", "..", "deployment-data", "data_bags", "certs"),
		},
		F5LTM:  f5ltm.DefaultBigIP(),
		Policy: DefaultPolicy(),
	}
}

// ReadConfig decodes file over the defaults. An empty file name returns the defaults.
func ReadConfig(file string) (*Configuration, error) {
	cfg := Default()
	if file == "" {
		return cfg, nil
	}

	if _, err := os.Stat(file); err != nil {
		return cfg, errors.Wrapf(err, "could not read configuration file %v", file)
	}

	md, err := toml.DecodeFile(file, cfg)
	if err != nil {
		return cfg, errors.Wrapf(err, "could not parse configuration file %v", file)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return cfg, errors.Errorf("unknown configuration keys %v", undecoded)
	}

	if cfg.F5LTM == nil {
		cfg.F5LTM = f5ltm.DefaultBigIP()
	}
	cfg.F5LTM.SetDefaults()

	return cfg, nil
}

// VipsFile returns the endpoints document path of a zone
func (c *Configuration) VipsFile(zone string) string {
	return filepath.Join(c.Core.VipsDir, zone+"_vips.yml")
}
