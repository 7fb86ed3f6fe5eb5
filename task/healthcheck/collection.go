package healthcheck

import (
	"github.com/nodecore/noderuntime"
	"github.com/nodecore/noderuntime/task"
)

// ProbeCollectionName is the shared resource-collection name peer task
// constructors contribute their probe to, resolved here the same way
// original_source's node/mod.rs resource_collections map is resolved
// (SPEC_FULL.md §11): one name namespace, one Registry.cache slot, just
// holding a *resource.Collection[RegisteredProbe] instead of a single
// resource.
const ProbeCollectionName = "healthcheck.probes"

// RegisteredProbe pairs a probe with the name it should be reported under.
type RegisteredProbe struct {
	Name  string
	Probe task.HealthProbe
}

// Register adds probe to the shared probe collection, for another task's
// constructor to contribute before the healthcheck task itself is
// constructed. Order of AddTask calls determines which probes are visible:
// register the healthcheck task last.
func Register(nc *noderuntime.NodeContext, name string, probe task.HealthProbe) {
	noderuntime.Collection[RegisteredProbe](nc, ProbeCollectionName).Add(RegisteredProbe{Name: name, Probe: probe})
}

// NewFromContext builds the health-check task from every probe registered
// via Register up to the point this constructor runs.
func NewFromContext(nc *noderuntime.NodeContext, cfg Config) (*Task, error) {
	registered := noderuntime.Collection[RegisteredProbe](nc, ProbeCollectionName).All()

	probes := make([]task.HealthProbe, len(registered))
	names := make([]string, len(registered))
	for i, rp := range registered {
		probes[i] = rp.Probe
		names[i] = rp.Name
	}

	return New(probes, names, cfg)
}
