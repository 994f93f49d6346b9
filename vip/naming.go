package vip

import (
	"fmt"
	"path"
	"regexp"
)

// Partition every derived name lives in
const Partition = "/Common/"

var (
	reZone     = regexp.MustCompile(`\.([a-z]{3}[0-9]).*\.com`)
	reInternal = regexp.MustCompile(`\.int\..*\.com`)
)

// ZoneTag extracts the zone (three letters and a digit) used to locate
// certificate files on disk
func ZoneTag(domain string) (string, bool) {
	m := reZone.FindStringSubmatch(domain)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// IsPublic returns false for internal domains (.int.<anything>.com)
func IsPublic(domain string) bool {
	return !reInternal.MatchString(domain)
}

func PoolName(domain string, port int) string {
	return fmt.Sprintf("%s%s_%d_pl", Partition, domain, port)
}

func SSLProfileName(domain string) string {
	return Partition + domain + "_pr"
}

// CertificateName is the key and certificate resource name for a domain
func CertificateName(year int, domain string) string {
	return fmt.Sprintf("%s%d-%s", Partition, year, domain)
}

// KeyReference is the key file name an SSL profile points at
func KeyReference(year int, domain string) string {
	return fmt.Sprintf("%d-%s.key", year, domain)
}

// CertReference is the certificate file name an SSL profile points at
func CertReference(year int, domain string) string {
	return fmt.Sprintf("%d-%s.crt", year, domain)
}

func VirtualServerName(domain string, port int) string {
	return fmt.Sprintf("%s%s_%d", Partition, domain, port)
}

// MonitorTemplate returns the full path of a monitor tag
func MonitorTemplate(monitor string) string {
	return Partition + monitor
}

// BaseName strips the partition from a full path
func BaseName(name string) string {
	return path.Base(name)
}
