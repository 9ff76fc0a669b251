package entities

// DistributionResult is the resolver's verdict over a pool snapshot.
// Winner is nil when quorum was missed or no proposal attracted votes.
type DistributionResult struct {
	Winner         *Proposal
	VotableWeight  uint64
	QuorumRequired uint64
	VotesCast      uint64
}

// Resolve is a pure function of the proposal registry, ledger, and params.
// Quorum is weight-based: ceil(votable_weight * quorum% / 100) of eligible
// weight must have voted. The winner is the proposal with the strictly
// highest tally; ties resolve to the lowest (earliest) proposal id, so the
// outcome is independent of call order.
func Resolve(p *Pool) DistributionResult {
	result := DistributionResult{}
	if p.Params == nil {
		return result
	}

	for _, record := range p.Ledger {
		if !record.Withdrawn {
			result.VotableWeight += record.Amount
		}
	}
	result.QuorumRequired = ceilPercent(result.VotableWeight, p.Params.QuorumPercentage)

	for i := range p.Proposals {
		result.VotesCast += p.Proposals[i].VoteWeight
	}
	if result.VotesCast == 0 || result.VotesCast < result.QuorumRequired {
		return result
	}

	best := -1
	for i := range p.Proposals {
		if p.Proposals[i].VoteWeight == 0 {
			continue
		}
		if best < 0 || p.Proposals[i].VoteWeight > p.Proposals[best].VoteWeight {
			best = i
		}
	}
	if best >= 0 {
		winner := p.Proposals[best]
		result.Winner = &winner
	}
	return result
}

func ceilPercent(weight uint64, percent uint8) uint64 {
	if percent == 0 || weight == 0 {
		return 0
	}
	product := weight * uint64(percent)
	if product/uint64(percent) != weight {
		// Overflow guard for absurd weights; saturate to the full weight.
		return weight
	}
	return (product + 99) / 100
}
