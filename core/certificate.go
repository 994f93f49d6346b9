package core

import (
	"os"
	"path/filepath"

	"github.com/interlook/bigconverge/config"
	"github.com/interlook/bigconverge/log"
	"github.com/interlook/bigconverge/vip"
	"github.com/pkg/errors"
)

// CertificateManager uploads endpoint keys, certificates and the
// intermediate bundle
type CertificateManager struct {
	api     KeyCertificateAPI
	doc     *vip.Document
	policy  config.Policy
	baseDir string
	year    int
	report  *Report
}

func NewCertificateManager(api KeyCertificateAPI, doc *vip.Document, policy config.Policy, baseDir string, year int, rep *Report) *CertificateManager {
	return &CertificateManager{api: api, doc: doc, policy: policy, baseDir: baseDir, year: year, report: rep}
}

func (m *CertificateManager) Name() string {
	return "Cert"
}

func (m *CertificateManager) Create() error {
	if err := m.UploadEndpointCertificates(); err != nil {
		return err
	}
	return m.UploadIntermediateBundle()
}

// UploadEndpointCertificates imports the key and certificate of every
// public endpoint. Files live in <baseDir>/<zone>/<domain>/<domain>.{pem,crt};
// domains without a zone tag are skipped.
func (m *CertificateManager) UploadEndpointCertificates() error {
	for _, ep := range m.doc.Public() {
		zone, ok := vip.ZoneTag(ep.DNS)
		if !ok {
			log.Debugf("no zone tag in %v, skipping certificate upload", ep.DNS)
			continue
		}

		name := vip.CertificateName(m.year, ep.DNS)
		dir := filepath.Join(m.baseDir, zone, ep.DNS)

		if _, err := m.importKey(name, filepath.Join(dir, ep.DNS+".pem")); err != nil {
			return err
		}
		if _, err := m.importCertificate(name, filepath.Join(dir, ep.DNS+".crt")); err != nil {
			return err
		}
	}
	return nil
}

// UploadIntermediateBundle imports <baseDir>/<bundle>.crt under the bundle name
func (m *CertificateManager) UploadIntermediateBundle() error {
	name := m.policy.IntermediateBundle
	file := filepath.Join(m.baseDir, vip.BaseName(name)+".crt")

	_, err := m.importCertificate(name, file)
	return err
}

// Delete removes both the key and the certificate called name
func (m *CertificateManager) Delete(name string) error {
	if err := m.api.DeleteKey(name); err != nil {
		return errors.Wrapf(err, "could not delete key %v", name)
	}
	m.report.record(KindKey, name, Changed, "deleted")

	if err := m.api.DeleteCertificate(name); err != nil {
		return errors.Wrapf(err, "could not delete certificate %v", name)
	}
	m.report.record(KindCertificate, name, Changed, "deleted")

	return nil
}

func (m *CertificateManager) importKey(name, file string) (Outcome, error) {
	return ensure(m.report, KindKey, name, m.api.Keys, func() error {
		data, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "could not read key file %v", file)
		}
		return m.api.ImportKey(name, data)
	})
}

func (m *CertificateManager) importCertificate(name, file string) (Outcome, error) {
	return ensure(m.report, KindCertificate, name, m.api.Certificates, func() error {
		data, err := os.ReadFile(file)
		if err != nil {
			return errors.Wrapf(err, "could not read certificate file %v", file)
		}
		return m.api.ImportCertificate(name, data)
	})
}
