package returns

import "math"

// PVAnnuity returns the present value of a level annuity.
//
// With a zero rate no discounting applies and the timing mode is ignored.
func PVAnnuity(p AnnuityParams) (float64, error) {
	if p.Periods <= 0 {
		return 0, NewInvalidInputError(opPVAnnuity, "number of periods must be a positive integer, got %d", p.Periods)
	}
	if p.Timing != Ordinary && p.Timing != Due {
		return 0, NewInvalidInputError(opPVAnnuity, "unknown timing mode %v", p.Timing)
	}
	if err := checkFinite(opPVAnnuity, []float64{p.Rate, p.Payment}); err != nil {
		return 0, err
	}

	if p.Rate == 0 {
		return p.Payment * float64(p.Periods), nil
	}
	if p.Rate == -1 {
		return 0, NewDomainError(opPVAnnuity, "a rate of -100%% makes the discount factor undefined")
	}

	factor := discountFactor(p.Rate, p.Periods)
	if p.Timing == Due {
		factor *= 1 + p.Rate
	}

	pv := p.Payment * factor
	if !isFinite(pv) {
		return 0, NewDomainError(opPVAnnuity, "present value is undefined for rate %g over %d periods", p.Rate, p.Periods)
	}
	return pv, nil
}

// discountFactor returns (1 - (1+rate)^-n) / rate. Above -100% it is
// evaluated through Log1p and Expm1 so rates near zero keep full precision.
func discountFactor(rate float64, n int) float64 {
	if rate > -1 {
		return -math.Expm1(-float64(n)*math.Log1p(rate)) / rate
	}
	return (1 - math.Pow(1+rate, -float64(n))) / rate
}
