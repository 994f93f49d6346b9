package core

import "github.com/interlook/bigconverge/comm"

// KeyCertificateAPI manages SSL keys and certificates
type KeyCertificateAPI interface {
	Keys() ([]string, error)
	Certificates() ([]string, error)
	ImportKey(name string, pem []byte) error
	ImportCertificate(name string, pem []byte) error
	DeleteKey(name string) error
	DeleteCertificate(name string) error
}

// MonitorAPI lists health monitor templates. Templates cannot be created.
type MonitorAPI interface {
	Templates() ([]string, error)
}

type PoolAPI interface {
	Pools() ([]string, error)
	CreatePool(name, lbMethod string, members []comm.Member) error
	MonitorAssociation(pool string) (comm.MonitorRule, error)
	SetMonitorAssociation(pool string, rule comm.MonitorRule) error
	Members(pool string) ([]comm.Member, error)
	AddMember(pool string, member comm.Member) error
}

type HTTPProfileAPI interface {
	Profiles() ([]string, error)
	CreateProfile(name string) error
	InsertXForwardedFor(name string) (bool, error)
	SetInsertXForwardedFor(name string) error
	DefaultProfile(name string) (string, error)
	SetDefaultProfile(name, parent string) error
}

type ClientSSLProfileAPI interface {
	Profiles() ([]string, error)
	CreateProfile(name, key, cert string) error
	ChainFile(name string) (string, error)
	SetChainFile(name, chain string) error
}

type TCPProfileAPI interface {
	Profiles() ([]string, error)
	CreateProfile(name string) error
	KeepAliveInterval(name string) (int, error)
	SetKeepAliveInterval(name string, seconds int) error
}

type RuleAPI interface {
	Rules() ([]string, error)
	CreateRule(rule comm.RuleDefinition) error
}

// SystemAPI reads and sets device settings. The timezone is read only.
type SystemAPI interface {
	NTPServers() ([]string, error)
	SetNTPServers(servers []string) error
	TimeZone() (string, error)
}

type VirtualServerAPI interface {
	VirtualServers() ([]string, error)
	CreateVirtualServer(vs comm.VirtualServer) error
	SNATPool(vs string) (string, error)
	SetSNATPool(vs, pool string) error
}

// Appliance groups the capabilities of one load balancer
type Appliance struct {
	KeyCertificate   KeyCertificateAPI
	Monitor          MonitorAPI
	Pool             PoolAPI
	HTTPProfile      HTTPProfileAPI
	ClientSSLProfile ClientSSLProfileAPI
	TCPProfile       TCPProfileAPI
	Rule             RuleAPI
	System           SystemAPI
	VirtualServer    VirtualServerAPI
}
