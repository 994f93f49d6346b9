package f5ltm

import (
	"crypto/tls"
	"net"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/heptiolabs/healthcheck"
	"github.com/interlook/bigconverge/log"
	"github.com/pkg/errors"
	"github.com/scottdware/go-bigip"
)

const (
	defaultEndpoint     = "localhost"
	defaultUser         = "admin"
	defaultPassword     = "admin"
	defaultPasswordEnv  = "PASS"
	tmosAuthProvider    = "tmos"
	defaultTimeout      = 30
	defaultManagedPort  = "443"
	defaultPartition    = "Common"
	restDownloadsFolder = "/var/config/rest/downloads/"
)

// BigIP holds the connection settings of the appliance and its API clients
type BigIP struct {
	Endpoint     string `toml:"httpEndpoint"`
	User         string `toml:"username"`
	Password     string `toml:"password"`
	PasswordEnv  string `toml:"passwordEnv"`
	AuthProvider string `toml:"authProvider"`
	// Timeout of every REST call, in seconds
	Timeout  int  `toml:"timeout"`
	Insecure bool `toml:"insecure"`
	Debug    bool `toml:"debug"`
	cli      *bigip.BigIP
	rest     *resty.Client
}

// DefaultBigIP returns the settings used when the configuration has no [f5ltm] section
func DefaultBigIP() *BigIP {
	f5 := &BigIP{}
	f5.SetDefaults()
	return f5
}

// SetDefaults fills unset fields
func (f5 *BigIP) SetDefaults() {
	if f5.Endpoint == "" {
		f5.Endpoint = defaultEndpoint
	}
	if f5.User == "" {
		f5.User = defaultUser
	}
	if f5.PasswordEnv == "" {
		f5.PasswordEnv = defaultPasswordEnv
	}
	if f5.AuthProvider == "" && f5.User != "" {
		f5.AuthProvider = tmosAuthProvider
	}
	if f5.Timeout == 0 {
		f5.Timeout = defaultTimeout
	}
}

// password returns the configured password, then the environment one
func (f5 *BigIP) password() string {
	if f5.Password != "" {
		return f5.Password
	}
	if p := os.Getenv(f5.PasswordEnv); p != "" {
		return p
	}
	return defaultPassword
}

func (f5 *BigIP) baseURL() string {
	if strings.HasPrefix(f5.Endpoint, "http://") || strings.HasPrefix(f5.Endpoint, "https://") {
		return strings.TrimSuffix(f5.Endpoint, "/")
	}
	return "https://" + strings.TrimSuffix(f5.Endpoint, "/")
}

// address returns host:port of the management interface
func (f5 *BigIP) address() (string, error) {
	u, err := url.Parse(f5.baseURL())
	if err != nil {
		return "", errors.Wrapf(err, "invalid endpoint %v", f5.Endpoint)
	}
	if u.Port() != "" {
		return u.Host, nil
	}
	port := defaultManagedPort
	if u.Scheme == "http" {
		port = "80"
	}
	return net.JoinHostPort(u.Hostname(), port), nil
}

// Preflight checks the management interface accepts TCP connections
func (f5 *BigIP) Preflight() error {
	addr, err := f5.address()
	if err != nil {
		return err
	}

	check := healthcheck.TCPDialCheck(addr, time.Duration(f5.Timeout)*time.Second)
	if err := check(); err != nil {
		return errors.Wrapf(err, "f5 %v is not reachable", addr)
	}
	log.Debugf("f5 %v is reachable", addr)
	return nil
}

// Connect opens the iControl REST sessions
func (f5 *BigIP) Connect() error {
	f5.SetDefaults()
	password := f5.password()

	var err error
	f5.cli, err = bigip.NewTokenSession(f5.baseURL(), f5.User, password, f5.AuthProvider, nil)
	if err != nil {
		return errors.Wrapf(err, "could not establish connection to f5 %v", f5.Endpoint)
	}

	f5.rest = resty.New().
		SetBaseURL(f5.baseURL()).
		SetBasicAuth(f5.User, password).
		SetTimeout(time.Duration(f5.Timeout) * time.Second).
		SetTLSClientConfig(&tls.Config{InsecureSkipVerify: f5.Insecure}).
		SetHeader("Content-Type", "application/json").
		SetDebug(f5.Debug)

	log.Info("f5 connection established")
	return nil
}

func (f5 *BigIP) KeyCertificate() *KeyCertificate {
	return &KeyCertificate{f5: f5}
}

func (f5 *BigIP) Monitor() *Monitor {
	return &Monitor{f5: f5}
}

func (f5 *BigIP) Pool() *Pool {
	return &Pool{f5: f5}
}

func (f5 *BigIP) HTTPProfile() *HTTPProfile {
	return &HTTPProfile{f5: f5}
}

func (f5 *BigIP) ClientSSLProfile() *ClientSSLProfile {
	return &ClientSSLProfile{f5: f5}
}

func (f5 *BigIP) TCPProfile() *TCPProfile {
	return &TCPProfile{f5: f5}
}

func (f5 *BigIP) Rule() *Rule {
	return &Rule{f5: f5}
}

func (f5 *BigIP) System() *System {
	return &System{f5: f5}
}

func (f5 *BigIP) VirtualServer() *VirtualServer {
	return &VirtualServer{f5: f5}
}
