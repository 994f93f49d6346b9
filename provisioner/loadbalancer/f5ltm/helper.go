package f5ltm

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/interlook/bigconverge/comm"
)

// splitPath splits a full path into partition and name
// ie: /myPartition/myPool -> myPartition, myPool
func splitPath(fullPath string) (partition, name string) {
	p := strings.TrimPrefix(fullPath, "/")
	i := strings.Index(p, "/")
	if i < 0 {
		return defaultPartition, p
	}
	return p[:i], p[i+1:]
}

// toURIName converts a full path into the name used in REST URIs
// ie: /myPartition/myPool -> ~myPartition~myPool
func toURIName(fullPath string) string {
	partition, name := splitPath(fullPath)
	return "~" + partition + "~" + strings.Replace(name, "/", "~", -1)
}

// toFullPath returns the /partition/name form of a listed object
func toFullPath(partition, name, fullPath string) string {
	if fullPath != "" {
		return fullPath
	}
	if partition == "" {
		partition = defaultPartition
	}
	return "/" + partition + "/" + name
}

var reMinMonitor = regexp.MustCompile(`^min (\d+) of \{\s*(.*?)\s*\}$`)

// renderMonitorRule builds the pool monitor expression.
// Quorum 0 joins the templates with "and", otherwise "min <quorum> of { ... }"
func renderMonitorRule(rule comm.MonitorRule) string {
	if rule.Quorum > 0 {
		return fmt.Sprintf("min %d of { %s }", rule.Quorum, strings.Join(rule.Templates, " "))
	}
	return strings.Join(rule.Templates, " and ")
}

// parseMonitorRule reads a pool monitor expression
func parseMonitorRule(expr string) comm.MonitorRule {
	expr = strings.TrimSpace(expr)
	rule := comm.MonitorRule{Type: comm.SingleRule}
	if expr == "" {
		return rule
	}

	if m := reMinMonitor.FindStringSubmatch(expr); m != nil {
		rule.Quorum, _ = strconv.Atoi(m[1])
		rule.Templates = strings.Fields(m[2])
		return rule
	}

	for _, t := range strings.Split(expr, " and ") {
		if t = strings.TrimSpace(t); t != "" {
			rule.Templates = append(rule.Templates, t)
		}
	}
	return rule
}

// stripExtension removes the file extension the appliance appends to
// installed keys and certificates
func stripExtension(name, ext string) string {
	return strings.TrimSuffix(name, ext)
}
