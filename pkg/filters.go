package evtfilter

import "math"

const (
	DefaultMinEnergy float64 = 10
	DefaultMaxEnergy float64 = 100
)

// FilterTotalEnergy accepts events whose total energy lies strictly
// between enMin and enMax.
func FilterTotalEnergy(enTotal, enMin, enMax float64) bool {
	return enTotal > enMin && enTotal < enMax
}

// FilterMinChannelCount is FilterMinChannels for an energetic channel
// count computed upstream.
func FilterMinChannelCount(numEngCh int, minCh int) bool {
	return numEngCh >= minCh
}

// FilterMinChannels requires at least minCh energetic channels. When rows
// and columns are summed, the energetic channels must also be strictly
// fewer than the hits.
func FilterMinChannels(hits []Hit, minCh int, chTypes ChannelTypeMap, sumRowsCols bool) (bool, error) {
	numEngCh, err := NumEnergyChannels(hits, chTypes)
	if err != nil {
		return false, err
	}
	if !sumRowsCols {
		return FilterMinChannelCount(numEngCh, minCh), nil
	}
	return minCh <= numEngCh && numEngCh < len(hits), nil
}

// FilterSingleMiniModule accepts events where every hit belongs to the
// same minimodule. Empty events are rejected.
func FilterSingleMiniModule[M comparable](hits []Hit, mmMap ModuleMap[M]) (bool, error) {
	minimodules := make(map[M]struct{})
	for _, hit := range hits {
		mm, err := mmMap.Lookup(hit.Ref)
		if err != nil {
			return false, err
		}
		minimodules[mm] = struct{}{}
	}
	return len(minimodules) == 1, nil
}

// FilterMaxSuperModules rejects coincidence events touching more than
// maxSM distinct supermodules.
func FilterMaxSuperModules[M comparable](det1, det2 []Hit, maxSM int, smMap ModuleMap[M]) (bool, error) {
	supermodules := make(map[M]struct{})
	for _, det := range [][]Hit{det1, det2} {
		for _, hit := range det {
			sm, err := smMap.Lookup(hit.Ref)
			if err != nil {
				return false, err
			}
			supermodules[sm] = struct{}{}
			if len(supermodules) > maxSM {
				return false, nil
			}
		}
	}
	return true, nil
}

// FilterSpecificMiniModule accepts events with at least one hit in
// minimodule mm of supermodule sm.
func FilterSpecificMiniModule(det1, det2 []Hit, sm, mm int, smMMMap ModuleMap[ModuleID]) (bool, error) {
	target := ModuleID{SM: sm, MM: mm}
	for _, det := range [][]Hit{det1, det2} {
		for _, hit := range det {
			module, err := smMMMap.Lookup(hit.Ref)
			if err != nil {
				return false, err
			}
			if module == target {
				return true, nil
			}
		}
	}
	return false, nil
}

// FilterChannelList accepts events where all the hits of at least one
// detector are in validChannels. An empty detector list always passes.
func FilterChannelList(det1, det2 []Hit, validChannels ChannelSet) bool {
	return allValid(det1, validChannels) || allValid(det2, validChannels)
}

func allValid(hits []Hit, validChannels ChannelSet) bool {
	for _, hit := range hits {
		if !validChannels.Contains(hit.Channel) {
			return false
		}
	}
	return true
}

func FilterROI(xPos, yPos float64, xROI, yROI ROI) bool {
	return xROI.Contains(xPos) && yROI.Contains(yPos)
}

// FilterCoincidence compares the time channels of the most energetic
// reading on each detector. It returns whether they are closer than
// timeWindow together with both selected time channels. Events without
// a time channel on either detector are rejected.
func FilterCoincidence(det1, det2 []Hit, chTypes ChannelTypeMap, timeWindow float64) (bool, Hit, Hit, error) {
	tchDet1, found1, err := MaxEnergyChannel(det1, chTypes, TIME)
	if err != nil {
		return false, Hit{}, Hit{}, err
	}
	tchDet2, found2, err := MaxEnergyChannel(det2, chTypes, TIME)
	if err != nil {
		return false, Hit{}, Hit{}, err
	}
	if !found1 || !found2 {
		return false, tchDet1, tchDet2, nil
	}
	timeDiff := math.Abs(tchDet1.Time - tchDet2.Time)
	return timeDiff < timeWindow, tchDet1, tchDet2, nil
}
