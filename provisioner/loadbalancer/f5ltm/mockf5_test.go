package f5ltm

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

type mockRequest struct {
	Method       string
	Path         string
	Body         string
	ContentRange string
}

// mockF5 answers iControl REST calls with canned JSON and records every request
type mockF5 struct {
	srv      *httptest.Server
	mu       sync.Mutex
	requests []mockRequest
	replies  map[string]string
}

const (
	loginReply = `{"username":"admin","loginProviderName":"tmos","token":{"token":"MOCKTOKEN","name":"MOCKTOKEN","userName":"admin","timeout":1200}}`

	poolsReply = `{"kind":"tm:ltm:pool:poolcollectionstate","items":[
{"kind":"tm:ltm:pool:poolstate","name":"web.dpa1.attcompute.com_8080_pl","partition":"Common","fullPath":"/Common/web.dpa1.attcompute.com_8080_pl","loadBalancingMode":"round-robin","monitor":"/Common/http "},
{"kind":"tm:ltm:pool:poolstate","name":"legacy_pl","partition":"Other","fullPath":"/Other/legacy_pl"}]}`

	poolReply = `{"kind":"tm:ltm:pool:poolstate","name":"web.dpa1.attcompute.com_8080_pl","partition":"Common","fullPath":"/Common/web.dpa1.attcompute.com_8080_pl","loadBalancingMode":"round-robin","monitor":"/Common/http and /Common/gateway_icmp "}`

	poolMembersReply = `{"kind":"tm:ltm:pool:members:memberscollectionstate","items":[
{"kind":"tm:ltm:pool:members:membersstate","name":"10.0.0.1:8080","partition":"Common","fullPath":"/Common/10.0.0.1:8080","address":"10.0.0.1","state":"up"},
{"kind":"tm:ltm:pool:members:membersstate","name":"10.0.0.2:8080","partition":"Common","fullPath":"/Common/10.0.0.2:8080","address":"10.0.0.2","state":"up"},
{"kind":"tm:ltm:pool:members:membersstate","name":"web1:8080","partition":"Common","fullPath":"/Common/web1:8080","address":"10.0.0.5","state":"up"},
{"kind":"tm:ltm:pool:members:membersstate","name":"2001:db8::10.8080","partition":"Common","fullPath":"/Common/2001:db8::10.8080","address":"2001:db8::10","state":"up"}]}`

	virtualsReply = `{"kind":"tm:ltm:virtual:virtualcollectionstate","items":[
{"kind":"tm:ltm:virtual:virtualstate","name":"web.dpa1.attcompute.com_443","partition":"Common","fullPath":"/Common/web.dpa1.attcompute.com_443","destination":"/Common/10.10.10.10:443"}]}`

	virtualReply = `{"kind":"tm:ltm:virtual:virtualstate","name":"web.dpa1.attcompute.com_443","partition":"Common","sourceAddressTranslation":{"type":"snat","pool":"/Common/fake-backend-snat"}}`

	automapReply = `{"kind":"tm:ltm:virtual:virtualstate","name":"api_80","partition":"Common","sourceAddressTranslation":{"type":"automap"}}`

	rulesReply = `{"kind":"tm:ltm:rule:rulecollectionstate","items":[
{"kind":"tm:ltm:rule:rulestate","name":"https-offloaded-header","partition":"Common","fullPath":"/Common/https-offloaded-header","apiAnonymous":"when HTTP_REQUEST {}"}]}`

	httpMonitorsReply = `{"items":[{"name":"http","partition":"Common","fullPath":"/Common/http"}]}`

	mysqlMonitorsReply = `{"items":[{"name":"mysql_monitor","partition":"Common","fullPath":"/Common/mysql_monitor"}]}`

	httpProfilesReply = `{"items":[{"name":"http","partition":"Common","fullPath":"/Common/http"},{"name":"http-xff","partition":"Common","fullPath":"/Common/http-xff"}]}`

	httpProfileReply = `{"name":"http-xff","partition":"Common","fullPath":"/Common/http-xff","defaultsFrom":"/Common/http","insertXforwardedFor":"disabled"}`

	clientSSLReply = `{"name":"web.dpa1.attcompute.com_pr","partition":"Common","key":"/Common/2013-web.dpa1.attcompute.com.key","cert":"/Common/2013-web.dpa1.attcompute.com.crt","chain":"/Common/verisign_intermediate_bundle.crt"}`

	tcpProfileReply = `{"name":"tcp-custom-keepalive","partition":"Common","fullPath":"/Common/tcp-custom-keepalive","keepAliveInterval":1800}`

	ntpReply = `{"kind":"tm:sys:ntp:ntpstate","servers":["63.240.192.73","12.129.64.150"],"timezone":"UTC"}`

	keysReply = `{"items":[{"name":"2013-web.dpa1.attcompute.com.key","partition":"Common","fullPath":"/Common/2013-web.dpa1.attcompute.com.key"},{"name":"default.key","partition":"Common","fullPath":"/Common/default.key"}]}`

	certsReply = `{"items":[{"name":"verisign_intermediate_bundle.crt","partition":"Common","fullPath":"/Common/verisign_intermediate_bundle.crt"}]}`

	notFoundReply = `{"code":404,"message":"01020036:3: The requested object was not found.","errorStack":[]}`
)

func newMockF5() *mockF5 {
	m := &mockF5{replies: map[string]string{
		"POST /mgmt/shared/authn/login":                                          loginReply,
		"GET /mgmt/tm/ltm/pool":                                                  poolsReply,
		"GET /mgmt/tm/ltm/pool/~Common~web.dpa1.attcompute.com_8080_pl":          poolReply,
		"GET /mgmt/tm/ltm/pool/~Common~web.dpa1.attcompute.com_8080_pl/members":  poolMembersReply,
		"GET /mgmt/tm/ltm/virtual":                                               virtualsReply,
		"GET /mgmt/tm/ltm/virtual/~Common~web.dpa1.attcompute.com_443":           virtualReply,
		"GET /mgmt/tm/ltm/virtual/~Common~api_80":                                automapReply,
		"GET /mgmt/tm/ltm/rule":                                                  rulesReply,
		"GET /mgmt/tm/ltm/monitor/http":                                          httpMonitorsReply,
		"GET /mgmt/tm/ltm/monitor/mysql":                                         mysqlMonitorsReply,
		"GET /mgmt/tm/ltm/profile/http":                                          httpProfilesReply,
		"GET /mgmt/tm/ltm/profile/http/~Common~http-xff":                         httpProfileReply,
		"GET /mgmt/tm/ltm/profile/client-ssl/~Common~web.dpa1.attcompute.com_pr": clientSSLReply,
		"GET /mgmt/tm/ltm/profile/tcp/~Common~tcp-custom-keepalive":              tcpProfileReply,
		"GET /mgmt/tm/sys/ntp":                                                   ntpReply,
		"GET /mgmt/tm/sys/crypto/key":                                            keysReply,
		"GET /mgmt/tm/sys/crypto/cert":                                           certsReply,
	}}

	// every other monitor type is an empty collection
	for _, t := range monitorTypes {
		if _, ok := m.replies["GET /mgmt/tm/ltm/monitor/"+t]; !ok {
			m.replies["GET /mgmt/tm/ltm/monitor/"+t] = `{"items":[]}`
		}
	}

	m.srv = httptest.NewServer(http.HandlerFunc(m.handle))
	return m
}

func (m *mockF5) handle(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	m.mu.Lock()
	m.requests = append(m.requests, mockRequest{
		Method:       r.Method,
		Path:         r.URL.Path,
		Body:         string(body),
		ContentRange: r.Header.Get("Content-Range"),
	})
	reply, ok := m.replies[r.Method+" "+r.URL.Path]
	m.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	switch {
	case ok:
		_, _ = w.Write([]byte(reply))
	case r.Method == http.MethodGet:
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(notFoundReply))
	default:
		_, _ = w.Write([]byte(`{}`))
	}
}

func (m *mockF5) close() {
	m.srv.Close()
}

// mutations returns the recorded non GET requests, authentication excluded
func (m *mockF5) mutations() []mockRequest {
	m.mu.Lock()
	defer m.mu.Unlock()

	var reqs []mockRequest
	for _, r := range m.requests {
		if r.Method != http.MethodGet && !strings.HasPrefix(r.Path, "/mgmt/shared/auth") {
			reqs = append(reqs, r)
		}
	}
	return reqs
}

// newTestBigIP returns a BigIP connected to a fresh mock
func newTestBigIP(t *testing.T) (*BigIP, *mockF5) {
	m := newMockF5()
	t.Cleanup(m.close)

	f5 := &BigIP{Endpoint: m.srv.URL, User: "admin", Password: "admin", Timeout: 5}
	if err := f5.Connect(); err != nil {
		t.Fatalf("Connect() error = %v", err)
	}
	return f5, m
}

func decodeBody(t *testing.T, body string) map[string]interface{} {
	var res map[string]interface{}
	if err := json.Unmarshal([]byte(body), &res); err != nil {
		t.Fatalf("invalid json body %q: %v", body, err)
	}
	return res
}
