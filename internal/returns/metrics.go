package returns

import "math"

// ArithmeticMean returns the unweighted average of series.
func ArithmeticMean(series ReturnSeries) (float64, error) {
	if len(series) == 0 {
		return 0, NewEmptyInputError(opArithmeticMean)
	}
	if err := checkFinite(opArithmeticMean, series); err != nil {
		return 0, err
	}

	var sum float64
	for _, r := range series {
		sum += r
	}
	mean := sum / float64(len(series))
	if !isFinite(mean) {
		return 0, NewDomainError(opArithmeticMean, "mean overflows")
	}
	return mean, nil
}

// GeometricMean returns the compounded per-period return (Π(1+r))^(1/n) - 1.
//
// A period that lost more than everything (r < -1) leaves no real root and is
// reported as a domain error, even when an even count of such periods would
// make the product positive again.
func GeometricMean(series ReturnSeries) (float64, error) {
	if len(series) == 0 {
		return 0, NewEmptyInputError(opGeometricMean)
	}
	if err := checkFinite(opGeometricMean, series); err != nil {
		return 0, err
	}

	growth := 1.0
	for _, r := range series {
		if 1+r < 0 {
			return 0, NewDomainError(opGeometricMean, "return below -100%% invalidates compounding")
		}
		growth *= 1 + r
	}
	if !isFinite(growth) {
		return 0, NewDomainError(opGeometricMean, "compounded growth factor overflows")
	}

	g := math.Pow(growth, 1/float64(len(series))) - 1
	if !isFinite(g) {
		return 0, NewDomainError(opGeometricMean, "geometric mean is undefined")
	}
	return g, nil
}

// AnnualizedReturn converts a holding-period return earned over years into a
// per-year compound rate.
func AnnualizedReturn(totalReturn, years float64) (float64, error) {
	if err := checkFinite(opAnnualized, []float64{totalReturn, years}); err != nil {
		return 0, err
	}
	if years == 0 {
		return 0, NewDomainError(opAnnualized, "time period must be nonzero")
	}
	if 1+totalReturn <= 0 {
		return 0, NewDomainError(opAnnualized, "total return must be greater than -100%%")
	}

	annualized := math.Pow(1+totalReturn, 1/years) - 1
	if !isFinite(annualized) {
		return 0, NewDomainError(opAnnualized, "annualized return overflows")
	}
	return annualized, nil
}

// ContinuousCompoundedReturn returns ln(end/start).
func ContinuousCompoundedReturn(start, end float64) (float64, error) {
	if err := checkFinite(opContinuous, []float64{start, end}); err != nil {
		return 0, err
	}
	if start <= 0 {
		return 0, NewDomainError(opContinuous, "initial value must be positive")
	}
	if end <= 0 {
		return 0, NewDomainError(opContinuous, "ending value must be positive")
	}

	r := math.Log(end / start)
	if !isFinite(r) {
		return 0, NewDomainError(opContinuous, "value ratio is out of range")
	}
	return r, nil
}
