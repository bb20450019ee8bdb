package host

// Budget meters CPU and memory consumption across a host's lifetime. It
// charges against a CostModel: Charge adds to one CPU total summed over
// all CostTypes and trips once it exceeds the model's CPU limit, and
// ChargeMem does the same for the memory total against the memory limit.
// Charges are never refunded, including on Frame rollback: spent work was
// still done.
type Budget struct {
	model    CostModel
	counts   [numCostTypes]uint64
	cpuUsed  uint64
	memUsed  uint64
	disabled bool // set by tests that want charging to be a no-op
}

// NewBudget constructs a Budget from the given cost model.
func NewBudget(model CostModel) *Budget {
	return &Budget{model: model}
}

// Charge records `input` units of work under CostType ct, accumulating
// cpu cost into the CPU limit and returning errBudgetExceeded once it is
// crossed. Charging happens even on the call that trips the limit: the
// partial work already performed is non-refundable, matching host.rs's
// "charge before" policy for everything except record_debug_event and
// the explicitly documented "charge after" exceptions in serialization.
func (b *Budget) Charge(ct CostType, input uint64) error {
	if b.disabled {
		return nil
	}
	p := b.model.Params[ct]
	cost := p.Const + p.Linear*input
	b.counts[ct] += input
	b.cpuUsed += cost
	if b.cpuUsed > b.model.CPULimit {
		return errBudgetExceeded(ct)
	}
	return nil
}

// ChargeMem records a memory allocation of the given size in bytes,
// independent of any particular CostType's CPU accounting.
func (b *Budget) ChargeMem(bytes uint64) error {
	if b.disabled {
		return nil
	}
	b.memUsed += bytes
	if b.memUsed > b.model.MemLimit {
		return errBudgetExceeded(HostObjAlloc)
	}
	return nil
}

// Reset zeroes all counters while keeping the cost model, used between
// independent top-level invocations sharing one Host.
func (b *Budget) Reset() {
	b.counts = [numCostTypes]uint64{}
	b.cpuUsed = 0
	b.memUsed = 0
}

// CPUUsed and MemUsed expose running totals, mainly for tests and
// diagnostics.
func (b *Budget) CPUUsed() uint64 { return b.cpuUsed }
func (b *Budget) MemUsed() uint64 { return b.memUsed }

// CountOf returns how many input units have been charged under ct.
func (b *Budget) CountOf(ct CostType) uint64 { return b.counts[ct] }
