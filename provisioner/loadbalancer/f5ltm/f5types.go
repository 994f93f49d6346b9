package f5ltm

const (
	uriFileTransfer  = "/mgmt/shared/file-transfer/uploads/"
	uriCryptoKey     = "/mgmt/tm/sys/crypto/key"
	uriCryptoCert    = "/mgmt/tm/sys/crypto/cert"
	uriNTP           = "/mgmt/tm/sys/ntp"
	uriMonitor       = "/mgmt/tm/ltm/monitor/"
	uriPool          = "/mgmt/tm/ltm/pool/"
	uriVirtual       = "/mgmt/tm/ltm/virtual/"
	uriHTTPProfile   = "/mgmt/tm/ltm/profile/http"
	uriClientSSL     = "/mgmt/tm/ltm/profile/client-ssl"
	uriTCPProfile    = "/mgmt/tm/ltm/profile/tcp"
	installCommand   = "install"
	snatTypePool     = "snat"
	xffEnabled       = "enabled"
	keyExtension     = ".key"
	certExtension    = ".crt"
	keyUploadSuffix  = ".pem"
	certUploadSuffix = ".crt"
)

// monitorTypes are the monitor collections searched for templates
var monitorTypes = []string{
	"http", "https", "tcp", "tcp-half-open", "icmp", "gateway-icmp", "udp", "external", "mysql",
}

// item is the common part of any listed object
type item struct {
	Name      string `json:"name,omitempty"`
	Partition string `json:"partition,omitempty"`
	FullPath  string `json:"fullPath,omitempty"`
}

type collection struct {
	Items []item `json:"items"`
}

type profileRequest struct {
	Name      string `json:"name"`
	Partition string `json:"partition"`
}

type httpProfile struct {
	item
	DefaultsFrom        string `json:"defaultsFrom,omitempty"`
	InsertXforwardedFor string `json:"insertXforwardedFor,omitempty"`
}

type clientSSLProfile struct {
	item
	Key   string `json:"key,omitempty"`
	Cert  string `json:"cert,omitempty"`
	Chain string `json:"chain,omitempty"`
}

type tcpProfile struct {
	item
	KeepAliveInterval int `json:"keepAliveInterval,omitempty"`
}

type ntp struct {
	Servers  []string `json:"servers"`
	Timezone string   `json:"timezone,omitempty"`
}

type sourceAddressTranslation struct {
	Type string `json:"type"`
	Pool string `json:"pool,omitempty"`
}

type virtualSNAT struct {
	SourceAddressTranslation sourceAddressTranslation `json:"sourceAddressTranslation"`
}

type poolMonitor struct {
	Monitor string `json:"monitor"`
}

// cryptoInstall installs an uploaded file as a key or a certificate
type cryptoInstall struct {
	Command       string `json:"command"`
	Name          string `json:"name"`
	FromLocalFile string `json:"from-local-file"`
}
