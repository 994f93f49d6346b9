package f5ltm

// System reads and sets device settings
type System struct {
	f5 *BigIP
}

func (s *System) get() (ntp, error) {
	var res ntp
	err := s.f5.get(uriNTP, &res)
	return res, err
}

func (s *System) NTPServers() ([]string, error) {
	res, err := s.get()
	return res.Servers, err
}

func (s *System) SetNTPServers(servers []string) error {
	return s.f5.patch(uriNTP, ntp{Servers: servers})
}

func (s *System) TimeZone() (string, error) {
	res, err := s.get()
	return res.Timezone, err
}

// KeyCertificate manages SSL keys and certificates. Names are the
// installed file objects without their .key / .crt extension.
type KeyCertificate struct {
	f5 *BigIP
}

func (k *KeyCertificate) list(uri, ext string) ([]string, error) {
	names, err := k.f5.listNames(uri)
	if err != nil {
		return nil, err
	}
	for i, n := range names {
		names[i] = stripExtension(n, ext)
	}
	return names, nil
}

func (k *KeyCertificate) Keys() ([]string, error) {
	return k.list(uriCryptoKey, keyExtension)
}

func (k *KeyCertificate) Certificates() ([]string, error) {
	return k.list(uriCryptoCert, certExtension)
}

func (k *KeyCertificate) install(uri, name, ext, uploadSuffix string, pem []byte) error {
	_, base := splitPath(name)

	local, err := k.f5.upload(base+uploadSuffix, pem)
	if err != nil {
		return err
	}

	return k.f5.post(uri, cryptoInstall{
		Command:       installCommand,
		Name:          base + ext,
		FromLocalFile: local,
	})
}

func (k *KeyCertificate) ImportKey(name string, pem []byte) error {
	return k.install(uriCryptoKey, name, keyExtension, keyUploadSuffix, pem)
}

func (k *KeyCertificate) ImportCertificate(name string, pem []byte) error {
	return k.install(uriCryptoCert, name, certExtension, certUploadSuffix, pem)
}

func (k *KeyCertificate) DeleteKey(name string) error {
	return k.f5.delete(uriCryptoKey + "/" + toURIName(name+keyExtension))
}

func (k *KeyCertificate) DeleteCertificate(name string) error {
	return k.f5.delete(uriCryptoCert + "/" + toURIName(name+certExtension))
}
