package config

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed plans.yaml
var plansYAML []byte

const defaultPlan = "free"

// Plan is one subscription tier and the features it unlocks.
type Plan struct {
	ID       string   `yaml:"id" json:"id"`
	Name     string   `yaml:"name" json:"name"`
	PriceINR int      `yaml:"price_inr" json:"price_inr"`
	Popular  bool     `yaml:"popular" json:"popular,omitempty"`
	Features []string `yaml:"features" json:"features"`
}

func (p Plan) Has(feature string) bool {
	for _, f := range p.Features {
		if f == feature {
			return true
		}
	}
	return false
}

type PlanCatalog struct {
	Plans []Plan `yaml:"plans"`
	byID  map[string]int
}

// LoadPlans parses the plan catalog compiled into the binary.
func LoadPlans() (*PlanCatalog, error) {
	return ParsePlans(plansYAML)
}

func ParsePlans(data []byte) (*PlanCatalog, error) {
	var catalog PlanCatalog
	if err := yaml.Unmarshal(data, &catalog); err != nil {
		return nil, fmt.Errorf("parse plans: %w", err)
	}

	catalog.byID = make(map[string]int, len(catalog.Plans))
	for i, p := range catalog.Plans {
		id := strings.ToLower(strings.TrimSpace(p.ID))
		if id == "" {
			return nil, fmt.Errorf("plan %d has no id", i)
		}
		if _, dup := catalog.byID[id]; dup {
			return nil, fmt.Errorf("duplicate plan %q", id)
		}
		catalog.Plans[i].ID = id
		catalog.byID[id] = i
	}
	if _, ok := catalog.byID[defaultPlan]; !ok {
		return nil, fmt.Errorf("plan catalog must define %q", defaultPlan)
	}
	return &catalog, nil
}

func (c *PlanCatalog) Get(id string) (Plan, bool) {
	i, ok := c.byID[strings.ToLower(strings.TrimSpace(id))]
	if !ok {
		return Plan{}, false
	}
	return c.Plans[i], true
}

// Allows reports whether the tier unlocks feature. Unknown tiers get the
// free plan's features.
func (c *PlanCatalog) Allows(tier, feature string) bool {
	p, ok := c.Get(tier)
	if !ok {
		p, _ = c.Get(defaultPlan)
	}
	return p.Has(feature)
}

// Cheapest returns the lowest priced plan that includes feature.
func (c *PlanCatalog) Cheapest(feature string) (Plan, bool) {
	var best Plan
	found := false
	for _, p := range c.Plans {
		if !p.Has(feature) {
			continue
		}
		if !found || p.PriceINR < best.PriceINR {
			best, found = p, true
		}
	}
	return best, found
}
