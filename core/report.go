package core

import (
	"encoding/json"
	"io"
	"sync"
	"time"

	"github.com/interlook/bigconverge/log"
	uuid "github.com/satori/go.uuid"
)

// Outcome is the result of one check
type Outcome int

const (
	Unchanged Outcome = iota
	Changed
	ActionRequired
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	case ActionRequired:
		return "action required"
	}
	return "unknown"
}

// MarshalJSON writes the outcome name
func (o Outcome) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.String())
}

// Kind names the appliance resource a check applies to
type Kind string

const (
	KindKey              Kind = "key"
	KindCertificate      Kind = "certificate"
	KindMonitor          Kind = "monitor"
	KindPool             Kind = "pool"
	KindPoolMonitor      Kind = "pool monitor"
	KindPoolMember       Kind = "pool member"
	KindHTTPProfile      Kind = "http profile"
	KindClientSSLProfile Kind = "client-ssl profile"
	KindTCPProfile       Kind = "tcp profile"
	KindRule             Kind = "rule"
	KindNTP              Kind = "ntp"
	KindTimezone         Kind = "timezone"
	KindVirtualServer    Kind = "virtual server"
	KindSNATPool         Kind = "snat pool"
)

// Result is one recorded check
type Result struct {
	Kind    Kind    `json:"kind"`
	Name    string  `json:"name"`
	Outcome Outcome `json:"outcome"`
	Message string  `json:"message,omitempty"`
}

// Report collects the results of a run
type Report struct {
	RunID   string    `json:"run_id"`
	Started time.Time `json:"started"`
	Results []Result  `json:"results"`
	Failed  []string  `json:"failed,omitempty"`
	mu      sync.Mutex
}

func NewReport() *Report {
	return &Report{
		RunID:   uuid.NewV4().String(),
		Started: time.Now(),
	}
}

// record stores the result and logs it
func (r *Report) record(kind Kind, name string, outcome Outcome, msg string) Outcome {
	r.mu.Lock()
	r.Results = append(r.Results, Result{Kind: kind, Name: name, Outcome: outcome, Message: msg})
	r.mu.Unlock()

	entry := log.WithFields(log.Fields{
		"run":     r.RunID,
		"kind":    string(kind),
		"name":    name,
		"outcome": outcome.String(),
	})
	switch outcome {
	case ActionRequired:
		entry.Warn(msg)
	case Changed:
		entry.Info(msg)
	default:
		entry.Debug(msg)
	}

	return outcome
}

func (r *Report) fail(step string) {
	r.mu.Lock()
	r.Failed = append(r.Failed, step)
	r.mu.Unlock()
}

// Count returns how many checks ended with outcome
func (r *Report) Count(outcome Outcome) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := 0
	for _, res := range r.Results {
		if res.Outcome == outcome {
			n++
		}
	}
	return n
}

// Filter returns the results of a kind
func (r *Report) Filter(kind Kind) []Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	var res []Result
	for _, result := range r.Results {
		if result.Kind == kind {
			res = append(res, result)
		}
	}
	return res
}

// Summary logs one line with the outcome tally
func (r *Report) Summary() {
	log.WithFields(log.Fields{
		"run":             r.RunID,
		"unchanged":       r.Count(Unchanged),
		"changed":         r.Count(Changed),
		"action_required": r.Count(ActionRequired),
		"failed":          len(r.Failed),
		"duration":        time.Since(r.Started).String(),
	}).Info("run summary")
}

// WriteJSON encodes the report to w
func (r *Report) WriteJSON(w io.Writer) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
