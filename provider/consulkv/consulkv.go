// Package consulkv implements a resource.Provider backed by Consul's KV
// store, grounded on the teacher's extensive client/consul integration
// (client/consul/sync_test.go, client/discovery/consul_test.go). Resource
// values are stored as JSON under a fixed key prefix and handed back as a
// *Value; the caller decodes it into its own shape with Value.Decode,
// which uses mitchellh/mapstructure (a teacher indirect dependency).
package consulkv

import (
	"encoding/json"
	"fmt"

	consulapi "github.com/hashicorp/consul/api"
	"github.com/hashicorp/go-hclog"
	"github.com/mitchellh/mapstructure"
)

// DefaultPrefix is prepended to every resource name to form the Consul KV
// key, e.g. resource "pool" -> key "nodecore/resources/pool".
const DefaultPrefix = "nodecore/resources/"

// Provider looks resource names up as Consul KV keys.
type Provider struct {
	client *consulapi.Client
	prefix string
	logger hclog.Logger
}

// Option configures a Provider.
type Option func(*Provider)

// WithPrefix overrides DefaultPrefix.
func WithPrefix(prefix string) Option {
	return func(p *Provider) { p.prefix = prefix }
}

// WithLogger overrides the provider's logger.
func WithLogger(logger hclog.Logger) Option {
	return func(p *Provider) { p.logger = logger }
}

// New wraps an existing Consul API client.
func New(client *consulapi.Client, opts ...Option) *Provider {
	p := &Provider{client: client, prefix: DefaultPrefix, logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// GetResource implements resource.Provider. The node's registry caches
// whatever is returned, so each name is only ever fetched from Consul
// once per node lifetime, matching the "at most once per name" contract.
func (p *Provider) GetResource(name string) (any, bool) {
	key := p.prefix + name

	pair, _, err := p.client.KV().Get(key, nil)
	if err != nil {
		p.logger.Error("consul KV lookup failed", "key", key, "error", err)
		return nil, false
	}
	if pair == nil {
		return nil, false
	}

	var decoded map[string]any
	if err := json.Unmarshal(pair.Value, &decoded); err != nil {
		p.logger.Error("consul KV value is not valid JSON", "key", key, "error", err)
		return nil, false
	}

	return &Value{raw: decoded}, true
}

// Value defers the final shape decision to the caller: a task
// constructor calls Decode(&myStruct) to get a mapstructure-decoded value,
// since the provider itself has no way to know every caller's target type
// ahead of time.
type Value struct {
	raw map[string]any
}

// Decode maps the raw KV value into out via mapstructure.
func (d *Value) Decode(out any) error {
	if err := mapstructure.Decode(d.raw, out); err != nil {
		return fmt.Errorf("consulkv: decode failed: %w", err)
	}
	return nil
}
