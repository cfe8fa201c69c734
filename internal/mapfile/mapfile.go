// Package mapfile loads topology documents from YAML, following the
// pack's enum-aware UnmarshalYAML idiom for zone/category fields.
package mapfile

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Edugs94/fly-in/internal/topology"
)

// Document is the on-disk shape of a topology map file.
type Document struct {
	NbDrones    int                 `yaml:"nb_drones"`
	Hubs        map[string]*HubSpec `yaml:"hubs"`
	Connections []ConnectionSpec    `yaml:"connections"`
}

// HubSpec is one hub entry, keyed by name in Document.Hubs.
type HubSpec struct {
	Category  categorySpec `yaml:"category"`
	Zone      zoneSpec     `yaml:"zone"`
	X         int          `yaml:"x"`
	Y         int          `yaml:"y"`
	MaxDrones int          `yaml:"max_drones"`
}

// ConnectionSpec is one undirected link entry.
type ConnectionSpec struct {
	A        string `yaml:"a"`
	B        string `yaml:"b"`
	Capacity int    `yaml:"capacity"`
}

type categorySpec struct {
	value topology.NodeCategory
}

func (c *categorySpec) UnmarshalYAML(value *yaml.Node) error {
	cat, err := topology.NodeCategoryFromString(value.Value)
	if err != nil {
		return fmt.Errorf("hub category: %w", err)
	}
	c.value = cat
	return nil
}

func (c categorySpec) MarshalYAML() (any, error) {
	return c.value.String(), nil
}

type zoneSpec struct {
	value topology.ZoneType
}

func (z *zoneSpec) UnmarshalYAML(value *yaml.Node) error {
	zone, err := topology.ZoneTypeFromString(value.Value)
	if err != nil {
		return fmt.Errorf("hub zone: %w", err)
	}
	z.value = zone
	return nil
}

func (z zoneSpec) MarshalYAML() (any, error) {
	return z.value.String(), nil
}

// Load reads and parses a topology document from path and builds a
// topology.Topology, validating it before returning.
func Load(path string) (*topology.Topology, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading map file %s: %w", path, err)
	}

	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing map file %s: %w", path, err)
	}

	topo, err := fromDocument(&doc)
	if err != nil {
		return nil, err
	}
	if err := topo.Validate(); err != nil {
		return nil, fmt.Errorf("map file %s: %w", path, err)
	}
	return topo, nil
}

func fromDocument(doc *Document) (*topology.Topology, error) {
	topo := topology.New(doc.NbDrones)

	names := make([]string, 0, len(doc.Hubs))
	for name := range doc.Hubs {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := doc.Hubs[name]
		topo.AddHub(&topology.Hub{
			Name:      name,
			Category:  spec.Category.value,
			Zone:      spec.Zone.value,
			Pos:       topology.Coord{X: spec.X, Y: spec.Y},
			MaxDrones: spec.MaxDrones,
		})
	}

	for _, conn := range doc.Connections {
		topo.AddConnection(topology.Connection{
			A:               conn.A,
			B:               conn.B,
			MaxLinkCapacity: conn.Capacity,
		})
	}

	return topo, nil
}

// Write serializes topo to path in the Document YAML form, for the
// instance generator.
func Write(path string, topo *topology.Topology) error {
	doc := Document{
		NbDrones: topo.NbDrones,
		Hubs:     make(map[string]*HubSpec, len(topo.HubOrder)),
	}
	for _, name := range topo.HubOrder {
		hub := topo.Hubs[name]
		doc.Hubs[name] = &HubSpec{
			Category:  categorySpec{value: hub.Category},
			Zone:      zoneSpec{value: hub.Zone},
			X:         hub.Pos.X,
			Y:         hub.Pos.Y,
			MaxDrones: hub.MaxDrones,
		}
	}
	for _, conn := range topo.Connections {
		doc.Connections = append(doc.Connections, ConnectionSpec{
			A:        conn.A,
			B:        conn.B,
			Capacity: conn.MaxLinkCapacity,
		})
	}

	data, err := yaml.Marshal(&doc)
	if err != nil {
		return fmt.Errorf("encoding map file: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing map file %s: %w", path, err)
	}
	return nil
}
