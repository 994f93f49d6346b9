package f5ltm

import (
	"github.com/interlook/bigconverge/comm"
	"github.com/interlook/bigconverge/log"
	"github.com/pkg/errors"
	"github.com/scottdware/go-bigip"
)

// Pool manages LTM pools and their members
type Pool struct {
	f5 *BigIP
}

func (p *Pool) Pools() ([]string, error) {
	pools, err := p.f5.cli.Pools()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(pools.Pools))
	for _, pl := range pools.Pools {
		names = append(names, toFullPath(pl.Partition, pl.Name, pl.FullPath))
	}
	return names, nil
}

// CreatePool creates the pool then sets its members
func (p *Pool) CreatePool(name, lbMethod string, members []comm.Member) error {
	partition, base := splitPath(name)

	pool := &bigip.Pool{
		Name:              base,
		Partition:         partition,
		LoadBalancingMode: lbMethod,
	}
	if err := p.f5.cli.AddPool(pool); err != nil {
		return err
	}

	if len(members) == 0 {
		return nil
	}

	pm := make([]bigip.PoolMember, 0, len(members))
	for _, m := range members {
		pm = append(pm, bigip.PoolMember{
			Name:      m.String(),
			Address:   m.Host,
			Partition: partition,
		})
	}
	if err := p.f5.cli.UpdatePoolMembers(toURIName(name), &pm); err != nil {
		return err
	}

	// update pool as pool definition get overwritten by bigip.UpdatePoolMembers
	return p.f5.cli.ModifyPool(toURIName(name), pool)
}

func (p *Pool) MonitorAssociation(pool string) (comm.MonitorRule, error) {
	pl, err := p.f5.cli.GetPool(toURIName(pool))
	if err != nil {
		return comm.MonitorRule{}, err
	}
	if pl == nil {
		return comm.MonitorRule{}, errors.Errorf("pool %v not found", pool)
	}
	return parseMonitorRule(pl.Monitor), nil
}

func (p *Pool) SetMonitorAssociation(pool string, rule comm.MonitorRule) error {
	return p.f5.patch(uriPool+toURIName(pool), poolMonitor{Monitor: renderMonitorRule(rule)})
}

// Members returns the pool members named after their node, which may
// differ from the node address
func (p *Pool) Members(pool string) ([]comm.Member, error) {
	pm, err := p.f5.cli.PoolMembers(toURIName(pool))
	if err != nil {
		return nil, err
	}

	members := make([]comm.Member, 0, len(pm.PoolMembers))
	for _, m := range pm.PoolMembers {
		member, err := comm.ParseMember(m.Name)
		if err != nil {
			return nil, errors.Wrapf(err, "could not read member %v of %v", m.Name, pool)
		}
		members = append(members, member)
	}
	return members, nil
}

func (p *Pool) AddMember(pool string, member comm.Member) error {
	return p.f5.cli.AddPoolMember(toURIName(pool), member.String())
}

// VirtualServer manages LTM virtual servers
type VirtualServer struct {
	f5 *BigIP
}

func (v *VirtualServer) VirtualServers() ([]string, error) {
	vss, err := v.f5.cli.VirtualServers()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(vss.VirtualServers))
	for _, vs := range vss.VirtualServers {
		names = append(names, toFullPath(vs.Partition, vs.Name, vs.FullPath))
	}
	return names, nil
}

func (v *VirtualServer) CreateVirtualServer(vs comm.VirtualServer) error {
	partition, base := splitPath(vs.Definition.Name)

	if vs.Resource.Type != comm.ResourcePool {
		return errors.Errorf("unsupported resource type %v", vs.Resource.Type)
	}

	profiles := make([]bigip.Profile, 0, len(vs.Profiles))
	for _, p := range vs.Profiles {
		profiles = append(profiles, bigip.Profile{Name: p.Name, Context: p.Context})
	}

	bvs := &bigip.VirtualServer{
		Name:        base,
		Partition:   partition,
		Destination: "/" + partition + "/" + vs.Definition.Destination(),
		IPProtocol:  vs.Definition.Protocol,
		Mask:        vs.Wildmask,
		Pool:        vs.Resource.DefaultPool,
		Profiles:    profiles,
	}

	log.Debugf("creating virtual server %v on %v with %d profiles", vs.Definition.Name, bvs.Destination, len(profiles))
	return v.f5.cli.AddVirtualServer(bvs)
}

// SNATPool returns the SNAT pool of a virtual server, empty when it uses none
func (v *VirtualServer) SNATPool(vs string) (string, error) {
	var res virtualSNAT
	if err := v.f5.get(uriVirtual+toURIName(vs), &res); err != nil {
		return "", err
	}
	if res.SourceAddressTranslation.Type != snatTypePool {
		return "", nil
	}
	return res.SourceAddressTranslation.Pool, nil
}

func (v *VirtualServer) SetSNATPool(vs, pool string) error {
	return v.f5.patch(uriVirtual+toURIName(vs), virtualSNAT{
		SourceAddressTranslation: sourceAddressTranslation{Type: snatTypePool, Pool: pool},
	})
}

// Rule manages iRules
type Rule struct {
	f5 *BigIP
}

func (r *Rule) Rules() ([]string, error) {
	rules, err := r.f5.cli.IRules()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(rules.IRules))
	for _, rule := range rules.IRules {
		names = append(names, toFullPath(rule.Partition, rule.Name, rule.FullPath))
	}
	return names, nil
}

// CreateRule creates the iRule in the Common partition
func (r *Rule) CreateRule(rule comm.RuleDefinition) error {
	partition, name := splitPath(rule.Name)
	if partition != defaultPartition {
		return errors.Errorf("iRule %v must be in partition %v", rule.Name, defaultPartition)
	}
	return r.f5.cli.CreateIRule(name, rule.Definition)
}

// Monitor lists monitor templates of every supported type
type Monitor struct {
	f5 *BigIP
}

func (m *Monitor) Templates() ([]string, error) {
	var names []string
	for _, t := range monitorTypes {
		var res collection
		if err := m.f5.get(uriMonitor+t, &res); err != nil {
			return nil, errors.Wrapf(err, "could not list %v monitors", t)
		}
		for _, i := range res.Items {
			names = append(names, toFullPath(i.Partition, i.Name, i.FullPath))
		}
	}
	log.Debugf("found %d monitor templates", len(names))
	return names, nil
}
