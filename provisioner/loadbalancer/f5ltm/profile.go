package f5ltm

import "github.com/pkg/errors"

// listNames returns the full paths of the objects in a collection
func (f5 *BigIP) listNames(uri string) ([]string, error) {
	var res collection
	if err := f5.get(uri, &res); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(res.Items))
	for _, i := range res.Items {
		names = append(names, toFullPath(i.Partition, i.Name, i.FullPath))
	}
	return names, nil
}

func newProfileRequest(fullPath string) profileRequest {
	partition, name := splitPath(fullPath)
	return profileRequest{Name: name, Partition: partition}
}

// HTTPProfile manages HTTP profiles
type HTTPProfile struct {
	f5 *BigIP
}

func (h *HTTPProfile) Profiles() ([]string, error) {
	return h.f5.listNames(uriHTTPProfile)
}

func (h *HTTPProfile) CreateProfile(name string) error {
	return h.f5.post(uriHTTPProfile, newProfileRequest(name))
}

func (h *HTTPProfile) get(name string) (httpProfile, error) {
	var p httpProfile
	err := h.f5.get(uriHTTPProfile+"/"+toURIName(name), &p)
	return p, err
}

func (h *HTTPProfile) InsertXForwardedFor(name string) (bool, error) {
	p, err := h.get(name)
	if err != nil {
		return false, err
	}
	return p.InsertXforwardedFor == xffEnabled, nil
}

func (h *HTTPProfile) SetInsertXForwardedFor(name string) error {
	return h.f5.patch(uriHTTPProfile+"/"+toURIName(name), httpProfile{InsertXforwardedFor: xffEnabled})
}

func (h *HTTPProfile) DefaultProfile(name string) (string, error) {
	p, err := h.get(name)
	if err != nil {
		return "", err
	}
	return p.DefaultsFrom, nil
}

func (h *HTTPProfile) SetDefaultProfile(name, parent string) error {
	return h.f5.patch(uriHTTPProfile+"/"+toURIName(name), httpProfile{DefaultsFrom: parent})
}

// ClientSSLProfile manages client SSL profiles
type ClientSSLProfile struct {
	f5 *BigIP
}

func (c *ClientSSLProfile) Profiles() ([]string, error) {
	return c.f5.listNames(uriClientSSL)
}

// CreateProfile creates a profile using the key and certificate files
// installed in the profile's partition
func (c *ClientSSLProfile) CreateProfile(name, key, cert string) error {
	req := newProfileRequest(name)
	prefix := "/" + req.Partition + "/"

	return c.f5.post(uriClientSSL, clientSSLProfile{
		item: item{Name: req.Name, Partition: req.Partition},
		Key:  prefix + key,
		Cert: prefix + cert,
	})
}

func (c *ClientSSLProfile) ChainFile(name string) (string, error) {
	var p clientSSLProfile
	if err := c.f5.get(uriClientSSL+"/"+toURIName(name), &p); err != nil {
		return "", err
	}
	return p.Chain, nil
}

func (c *ClientSSLProfile) SetChainFile(name, chain string) error {
	return c.f5.patch(uriClientSSL+"/"+toURIName(name), clientSSLProfile{Chain: chain})
}

// TCPProfile manages TCP profiles
type TCPProfile struct {
	f5 *BigIP
}

func (t *TCPProfile) Profiles() ([]string, error) {
	return t.f5.listNames(uriTCPProfile)
}

func (t *TCPProfile) CreateProfile(name string) error {
	return t.f5.post(uriTCPProfile, newProfileRequest(name))
}

func (t *TCPProfile) KeepAliveInterval(name string) (int, error) {
	var p tcpProfile
	if err := t.f5.get(uriTCPProfile+"/"+toURIName(name), &p); err != nil {
		return 0, err
	}
	return p.KeepAliveInterval, nil
}

func (t *TCPProfile) SetKeepAliveInterval(name string, seconds int) error {
	if seconds <= 0 {
		return errors.Errorf("invalid keepalive interval %d", seconds)
	}
	return t.f5.patch(uriTCPProfile+"/"+toURIName(name), tcpProfile{KeepAliveInterval: seconds})
}
