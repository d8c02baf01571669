package evtfilter

import (
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

type ChannelID uint64

type ChannelType int

const (
	TIME ChannelType = iota
	ENERGY
)

func (c ChannelType) String() string {
	switch c {
	case TIME:
		return "TIME"
	case ENERGY:
		return "ENERGY"
	default:
		return "Unknown"
	}
}

func ParseChannelType(s string) (ChannelType, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TIME":
		return TIME, nil
	case "ENERGY":
		return ENERGY, nil
	default:
		return 0, fmt.Errorf("unknown channel type %q", s)
	}
}

func (c *ChannelType) UnmarshalText(text []byte) error {
	chType, err := ParseChannelType(string(text))
	if err != nil {
		return err
	}
	*c = chType
	return nil
}

func (c ChannelType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *ChannelType) UnmarshalYAML(value *yaml.Node) error {
	return c.UnmarshalText([]byte(value.Value))
}

// Hit is a single channel reading. On the wire it is the positional
// array [channel, value, ref] with an optional fourth timestamp element.
type Hit struct {
	Channel ChannelID
	Value   float64
	Ref     ChannelID
	Time    float64
}

func (h *Hit) UnmarshalJSON(data []byte) error {
	var fields []json.Number
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("hit must be a numeric array: %w", err)
	}
	if len(fields) < 3 || len(fields) > 4 {
		return fmt.Errorf("hit must have 3 or 4 elements, got %d", len(fields))
	}
	channel, err := parseChannelID(fields[0])
	if err != nil {
		return err
	}
	value, err := fields[1].Float64()
	if err != nil {
		return fmt.Errorf("invalid hit value %q: %w", fields[1], err)
	}
	ref, err := parseChannelID(fields[2])
	if err != nil {
		return err
	}
	var timestamp float64
	if len(fields) == 4 {
		timestamp, err = fields[3].Float64()
		if err != nil {
			return fmt.Errorf("invalid hit time %q: %w", fields[3], err)
		}
	}
	*h = Hit{Channel: channel, Value: value, Ref: ref, Time: timestamp}
	return nil
}

func (h Hit) MarshalJSON() ([]byte, error) {
	return json.Marshal([]any{h.Channel, h.Value, h.Ref, h.Time})
}

func parseChannelID(n json.Number) (ChannelID, error) {
	var id uint64
	if _, err := fmt.Sscan(n.String(), &id); err != nil {
		return 0, fmt.Errorf("invalid channel id %q: %w", n, err)
	}
	return ChannelID(id), nil
}

type ChannelTypeMap map[ChannelID][]ChannelType

// Has reports whether the channel carries the tag. An unknown channel is
// a lookup failure, never a plain false.
func (m ChannelTypeMap) Has(channel ChannelID, tag ChannelType) (bool, error) {
	tags, ok := m[channel]
	if !ok {
		return false, &ErrChannelNotMapped{Channel: channel, Table: "channel type"}
	}
	return slices.Contains(tags, tag), nil
}

// ModuleID identifies a minimodule inside its supermodule.
type ModuleID struct {
	SM int `json:"sm"`
	MM int `json:"mm"`
}

func (m ModuleID) String() string {
	return fmt.Sprintf("(%d, %d)", m.SM, m.MM)
}

type ModuleMap[M comparable] map[ChannelID]M

func (m ModuleMap[M]) Lookup(ref ChannelID) (M, error) {
	module, ok := m[ref]
	if !ok {
		return module, &ErrChannelNotMapped{Channel: ref, Table: "module"}
	}
	return module, nil
}

// SuperModules flattens a (supermodule, minimodule) map to supermodules.
func SuperModules(modules ModuleMap[ModuleID]) ModuleMap[int] {
	smMap := make(ModuleMap[int], len(modules))
	for ref, module := range modules {
		smMap[ref] = module.SM
	}
	return smMap
}

type ChannelSet map[ChannelID]struct{}

func NewChannelSet(channels ...ChannelID) ChannelSet {
	set := make(ChannelSet, len(channels))
	for _, ch := range channels {
		set[ch] = struct{}{}
	}
	return set
}

func (s ChannelSet) Contains(channel ChannelID) bool {
	_, ok := s[channel]
	return ok
}

// ROI is an open interval on one axis.
type ROI struct {
	Min float64 `json:"min" yaml:"min"`
	Max float64 `json:"max" yaml:"max"`
}

func (r ROI) Contains(v float64) bool {
	return v > r.Min && v < r.Max
}

// Mapping bundles the reference tables shared by every event.
type Mapping struct {
	ChannelTypes ChannelTypeMap
	Modules      ModuleMap[ModuleID]
}
