// Package sizing computes the smallest fleet of identical servers that carries
// a database workload, what the fleet costs, and which resource limits it.
//
// All arithmetic is integer. Every division that maps a requirement onto
// whole units rounds up, so a fleet is never under-provisioned by truncation.
// Divisors come from the inputs and must be positive; see request.Validate.
package sizing

// maxIterations caps the RAM convergence loop. Valid inputs converge in a few
// passes.
const maxIterations = 64

// StoredSize is the replicated dataset including storage overhead, in MB.
func StoredSize(req Requirements, p EngineProfile) int {
	return CeilPercent(req.DatasetSize, p.StorageOverhead) * req.Replicas
}

// ComputeInput is Compute applied to the parts of in.
func ComputeInput(in Input) Result {
	return Compute(in.Hardware, in.Params, in.Facility, in.Requirements, in.Profile)
}

// Compute sizes and costs a fleet. It is a pure function of its arguments and
// is safe for concurrent use.
func Compute(hc HardwareCost, hp HardwareParams, fc FacilityCost, req Requirements, p EngineProfile) Result {
	var res Result

	// Reads and writes must each fit, and so must the mix: at the margin
	// integer rounding can leave the separate bounds short of the combined one.
	res.Servers = max(
		CeilDiv(req.ReadQPS, p.MaxReadQPSPerServer),
		CeilDiv(req.WriteQPS, p.MaxWriteQPSPerServer),
		CeilDiv(req.ReadQPS+req.WriteQPS, p.MaxReadQPSPerServer+p.MaxWriteQPSPerServer),
	)
	// Every replica needs its own server.
	res.Servers = max(res.Servers, req.Replicas, 1)

	stored := StoredSize(req, p)

	for {
		res.Iterations++

		capacity := stored / res.Servers

		res.SSDPerServer = req.DisksPerRAID * CeilDiv(CeilPercent(capacity, p.SSDRatio), hp.SSDSize)
		res.SpinningPerServer = req.DisksPerRAID * CeilDiv(CeilPercent(capacity, p.SpinningRatio), hp.SpinningSize)

		ram := max(CeilPercent(capacity, p.RAMRatio), p.MinRAMPerServer)
		res.RAMUnitsPerServer = CeilDiv(ram, hp.RAMUnitSize)
		res.RAMPerServer = res.RAMUnitsPerServer * hp.RAMUnitSize

		overSlots := res.RAMUnitsPerServer > hp.MaxRAMUnitsPerServer
		overEngine := res.RAMPerServer > p.MaxRAMPerServer
		if !overSlots && !overEngine {
			res.Feasible = true
			break
		}
		// The engine minimum alone overflows the server: more servers
		// cannot shrink it.
		if ram == p.MinRAMPerServer || res.Iterations >= maxIterations {
			break
		}
		// Spread the data over enough servers to resolve the worse overflow.
		res.Servers = max(
			res.Servers*CeilDiv(res.RAMUnitsPerServer, hp.MaxRAMUnitsPerServer),
			res.Servers*CeilDiv(res.RAMPerServer, p.MaxRAMPerServer),
		)
	}

	price(&res, hc, fc, p)

	res.ReadQPSPerServer = req.ReadQPS / res.Servers
	res.WriteQPSPerServer = req.WriteQPS / res.Servers

	res.Utilization = utilization(res, p)
	res.Bottleneck = classify(res.Utilization)

	return res
}

// price fills in the cost fields of res. It returns the name of the first
// cost that left the int range, or "" when all of them fit.
func price(res *Result, hc HardwareCost, fc FacilityCost, p EngineProfile) string {
	var c checked

	res.ServerCost = c.add(
		c.add(hc.ServerBody, c.mul(res.SSDPerServer, hc.SSDPrice)),
		c.add(c.mul(res.SpinningPerServer, hc.SpinningPrice), c.mul(res.RAMUnitsPerServer, hc.RAMUnitPrice)),
	)
	c.mark("cost_of_server")
	res.TotalUpfrontCost = c.mul(res.ServerCost, res.Servers)
	c.mark("total_upfront_cost")

	res.MonthlyCost = c.add(
		c.mul(c.ceilDiv(c.mul(res.Servers, fc.UnitsPerServer), fc.UnitsPerRack), fc.RackMonthlyPrice),
		c.mul(res.Servers, c.add(p.MonthlySupportPerServer, p.MonthlyLicenseFeePerServer)),
	)
	c.mark("monthly_cost")
	res.GrandTotalMonthly = c.add(res.MonthlyCost, amortize(&c, res.TotalUpfrontCost, fc))
	c.mark("grand_total_monthly")

	return c.first
}

// amortize spreads upfront over the amortization period, straight line, with
// simple interest for the whole period.
func amortize(c *checked, upfront int, fc FacilityCost) int {
	interest := c.mul(fc.AmortizationPeriod, fc.CostOfMoney) / 12
	return c.mul(upfront/fc.AmortizationPeriod, c.add(100, interest)) / 100
}
