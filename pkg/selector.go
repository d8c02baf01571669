package evtfilter

import (
	"fmt"
	"math"
)

const (
	TotalEnergyFilter = "total_energy"
	MinChannelsFilter = "min_ch"
	SingleMMFilter    = "single_mm"
	ROIFilter         = "roi"
	MaxSMFilter       = "max_sm"
	SpecificMMFilter  = "specific_mm"
	ChannelListFilter = "channel_list"
	CoincidenceFilter = "coincidence"
)

type Event struct {
	EventID uint32  `json:"evt_number"`
	Det1    []Hit   `json:"det1"`
	Det2    []Hit   `json:"det2"`
	Energy  float64 `json:"energy"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
}

type Decision struct {
	Accepted bool
	// Name of the first filter rejecting the event, empty when accepted
	RejectedBy string
	// Time channels selected by the coincidence filter
	T1 Hit
	T2 Hit
}

type namedFilter struct {
	name  string
	apply func(event Event, decision *Decision) (bool, error)
}

// Selector applies the filters enabled in a configuration to each event,
// stopping at the first one that rejects it. It is immutable once built
// and safe to share between workers.
type Selector struct {
	filters []namedFilter
	metrics *Metrics
}

func NewSelector(config Configuration, mapping Mapping, metrics *Metrics) (*Selector, error) {
	if err := validateSelection(config, mapping); err != nil {
		return nil, err
	}
	s := &Selector{metrics: metrics}
	chTypes := mapping.ChannelTypes
	modules := mapping.Modules

	if config.UseEnergy {
		enMin, enMax := config.EnMin, config.EnMax
		s.add(TotalEnergyFilter, func(event Event, _ *Decision) (bool, error) {
			return FilterTotalEnergy(event.Energy, enMin, enMax), nil
		})
	}
	if config.MinCh > 0 {
		minCh, sumRowsCols, coinc := config.MinCh, config.SumRowsCols, config.CoincMode
		s.add(MinChannelsFilter, func(event Event, _ *Decision) (bool, error) {
			return perDetector(event, coinc, func(hits []Hit) (bool, error) {
				return FilterMinChannels(hits, minCh, chTypes, sumRowsCols)
			})
		})
	}
	if config.SingleMM {
		coinc := config.CoincMode
		s.add(SingleMMFilter, func(event Event, _ *Decision) (bool, error) {
			return perDetector(event, coinc, func(hits []Hit) (bool, error) {
				return FilterSingleMiniModule(hits, modules)
			})
		})
	}
	if config.UseROI {
		xROI, yROI := config.XROI, config.YROI
		s.add(ROIFilter, func(event Event, _ *Decision) (bool, error) {
			return FilterROI(event.X, event.Y, xROI, yROI), nil
		})
	}
	if config.MaxSM > 0 {
		maxSM := config.MaxSM
		smMap := SuperModules(modules)
		s.add(MaxSMFilter, func(event Event, _ *Decision) (bool, error) {
			return FilterMaxSuperModules(event.Det1, event.Det2, maxSM, smMap)
		})
	}
	if config.SpecificMM {
		sm, mm := config.SMNum, config.MMNum
		s.add(SpecificMMFilter, func(event Event, _ *Decision) (bool, error) {
			return FilterSpecificMiniModule(event.Det1, event.Det2, sm, mm, modules)
		})
	}
	if len(config.ValidChannels) > 0 {
		validChannels := NewChannelSet(config.ValidChannels...)
		s.add(ChannelListFilter, func(event Event, _ *Decision) (bool, error) {
			return FilterChannelList(event.Det1, event.Det2, validChannels), nil
		})
	}
	if config.UseCoincidence {
		timeWindow := config.TimeWindow
		s.add(CoincidenceFilter, func(event Event, decision *Decision) (bool, error) {
			passed, t1, t2, err := FilterCoincidence(event.Det1, event.Det2, chTypes, timeWindow)
			decision.T1 = t1
			decision.T2 = t2
			return passed, err
		})
	}

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Selector built with filters: %v", s.FilterNames())
		logger.Info(message, "selector")
	}
	return s, nil
}

func (s *Selector) add(name string, apply func(Event, *Decision) (bool, error)) {
	s.filters = append(s.filters, namedFilter{name: name, apply: apply})
}

// FilterNames lists the enabled filters in evaluation order.
func (s *Selector) FilterNames() []string {
	names := make([]string, len(s.filters))
	for i, f := range s.filters {
		names[i] = f.name
	}
	return names
}

// Select reports whether the event passes every enabled filter. A lookup
// failure aborts the selection and is returned with the event id.
func (s *Selector) Select(event Event) (Decision, error) {
	decision := Decision{}
	for _, f := range s.filters {
		passed, err := f.apply(event, &decision)
		if err != nil {
			s.metrics.observeLookupError(f.name)
			return Decision{RejectedBy: f.name}, fmt.Errorf("event %d, filter %s: %w", event.EventID, f.name, err)
		}
		s.metrics.observeFilter(f.name, passed)
		if !passed {
			decision.RejectedBy = f.name
			s.metrics.observeEvent(false)
			if configuration.Verbosity > 1 {
				message := fmt.Sprintf("Event %d rejected by %s", event.EventID, f.name)
				logger.Info(message, "selector")
			}
			return decision, nil
		}
	}
	decision.Accepted = true
	s.metrics.observeEvent(true)
	return decision, nil
}

// perDetector requires det1 to pass and, in coincidence mode, det2 too.
func perDetector(event Event, coinc bool, filter func([]Hit) (bool, error)) (bool, error) {
	passed, err := filter(event.Det1)
	if err != nil || !passed || !coinc {
		return passed, err
	}
	return filter(event.Det2)
}

func validateSelection(config Configuration, mapping Mapping) error {
	if !config.CoincMode {
		switch {
		case config.MaxSM > 0:
			return &ErrInvalidConfiguration{Field: "max_sm", Reason: "only valid in coincidence mode"}
		case config.SpecificMM:
			return &ErrInvalidConfiguration{Field: "specific_mm", Reason: "only valid in coincidence mode"}
		case len(config.ValidChannels) > 0:
			return &ErrInvalidConfiguration{Field: "valid_channels", Reason: "only valid in coincidence mode"}
		case config.UseCoincidence:
			return &ErrInvalidConfiguration{Field: "use_coincidence", Reason: "only valid in coincidence mode"}
		}
	}
	if config.UseEnergy && !(config.EnMin < config.EnMax) {
		return &ErrInvalidConfiguration{Field: "en_min", Reason: fmt.Sprintf("%v is not below en_max %v", config.EnMin, config.EnMax)}
	}
	if config.UseROI {
		if !(config.XROI.Min < config.XROI.Max) {
			return &ErrInvalidConfiguration{Field: "x_roi", Reason: "min is not below max"}
		}
		if !(config.YROI.Min < config.YROI.Max) {
			return &ErrInvalidConfiguration{Field: "y_roi", Reason: "min is not below max"}
		}
	}
	if config.UseCoincidence && (config.TimeWindow <= 0 || math.IsNaN(config.TimeWindow)) {
		return &ErrInvalidConfiguration{Field: "time_window", Reason: "must be positive"}
	}
	needsChannelTypes := config.MinCh > 0 || config.UseCoincidence
	if needsChannelTypes && len(mapping.ChannelTypes) == 0 {
		return &ErrInvalidConfiguration{Field: "mapping", Reason: "channel type map is empty"}
	}
	needsModules := config.SingleMM || config.MaxSM > 0 || config.SpecificMM
	if needsModules && len(mapping.Modules) == 0 {
		return &ErrInvalidConfiguration{Field: "mapping", Reason: "module map is empty"}
	}
	if config.SpecificMM && !hasModule(mapping.Modules, ModuleID{SM: config.SMNum, MM: config.MMNum}) {
		return &ErrInvalidConfiguration{Field: "sm_num", Reason: fmt.Sprintf("minimodule %v not in mapping", ModuleID{SM: config.SMNum, MM: config.MMNum})}
	}
	return nil
}

func hasModule(modules ModuleMap[ModuleID], target ModuleID) bool {
	for _, module := range modules {
		if module == target {
			return true
		}
	}
	return false
}
