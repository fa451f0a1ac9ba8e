package sizing

// Bottleneck names the resource that limits a fleet.
type Bottleneck string

const (
	BottleneckRead       Bottleneck = "read"
	BottleneckWrite      Bottleneck = "write"
	BottleneckRAMCeiling Bottleneck = "ram_ceiling"
	BottleneckRAMFloor   Bottleneck = "ram_floor"
	BottleneckReplicas   Bottleneck = "replicas"
)

// bottleneckThreshold is the utilization, in percent, a resource must exceed
// before it is reported as the limit.
const bottleneckThreshold = 85

var bottleneckReasons = map[Bottleneck]string{
	BottleneckRead:       "Database system should handle more reads per second",
	BottleneckWrite:      "Database system should handle more writes per second",
	BottleneckRAMCeiling: "Database system should be able to use more RAM per server",
	BottleneckRAMFloor:   "Database system should be able to use less RAM per server",
	BottleneckReplicas:   "Database system is only bound by number of replicas requirement",
}

// Reason returns the human-readable message for b.
func (b Bottleneck) Reason() string {
	return bottleneckReasons[b]
}

// utilization returns the four tracked ratios in priority order.
func utilization(res Result, p EngineProfile) []Utilization {
	return []Utilization{
		{BottleneckRead, res.ReadQPSPerServer * 100 / p.MaxReadQPSPerServer},
		{BottleneckWrite, res.WriteQPSPerServer * 100 / p.MaxWriteQPSPerServer},
		{BottleneckRAMCeiling, res.RAMPerServer * 100 / p.MaxRAMPerServer},
		{BottleneckRAMFloor, p.MinRAMPerServer * 100 / res.RAMPerServer},
	}
}

// classify picks the first ratio, in priority order, that is above the
// threshold and not below any other ratio.
func classify(ratios []Utilization) Bottleneck {
	for i, u := range ratios {
		if u.Percent <= bottleneckThreshold {
			continue
		}
		highest := true
		for j, other := range ratios {
			if j != i && other.Percent > u.Percent {
				highest = false
				break
			}
		}
		if highest {
			return u.Resource
		}
	}
	return BottleneckReplicas
}
