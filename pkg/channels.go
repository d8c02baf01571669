package evtfilter

// NumEnergyChannels counts the hits whose channel carries an ENERGY reading.
func NumEnergyChannels(hits []Hit, chTypes ChannelTypeMap) (int, error) {
	nEnergy := 0
	for _, hit := range hits {
		isEnergy, err := chTypes.Has(hit.Channel, ENERGY)
		if err != nil {
			return 0, err
		}
		if isEnergy {
			nEnergy++
		}
	}
	return nEnergy, nil
}

// MaxEnergyChannel returns the most energetic hit among channels tagged
// both ENERGY and tag. On equal energies the first hit in list order wins.
// The boolean is false when no hit qualifies.
func MaxEnergyChannel(hits []Hit, chTypes ChannelTypeMap, tag ChannelType) (Hit, bool, error) {
	var maxHit Hit
	found := false
	for _, hit := range hits {
		isEnergy, err := chTypes.Has(hit.Channel, ENERGY)
		if err != nil {
			return Hit{}, false, err
		}
		hasTag, _ := chTypes.Has(hit.Channel, tag)
		if !isEnergy || !hasTag {
			continue
		}
		if !found || hit.Value > maxHit.Value {
			maxHit = hit
			found = true
		}
	}
	return maxHit, found, nil
}
