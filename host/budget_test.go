package host

import "testing"

func tinyCostModel() CostModel {
	var m CostModel
	m.Params[HostObjAlloc] = CostModelParams{Const: 1, Linear: 1}
	m.CPULimit = 5
	m.MemLimit = 1024
	return m
}

func TestBudgetChargeAccumulatesAndTrips(t *testing.T) {
	b := NewBudget(tinyCostModel())

	if err := b.Charge(HostObjAlloc, 1); err != nil {
		t.Fatalf("first charge should fit within the limit: %v", err)
	}
	if b.CPUUsed() != 2 {
		t.Fatalf("CPUUsed() = %d, want 2", b.CPUUsed())
	}

	if err := b.Charge(HostObjAlloc, 10); err == nil {
		t.Fatal("expected the second charge to exceed the CPU limit")
	}
	// Charging is never refunded, even on the call that trips the limit.
	if b.CPUUsed() != 13 {
		t.Fatalf("CPUUsed() after the tripping charge = %d, want 13", b.CPUUsed())
	}
}

func TestBudgetResetZeroesCounters(t *testing.T) {
	b := NewBudget(tinyCostModel())
	_ = b.Charge(HostObjAlloc, 1)
	b.Reset()
	if b.CPUUsed() != 0 || b.CountOf(HostObjAlloc) != 0 {
		t.Fatalf("Reset left CPUUsed=%d CountOf=%d, want both 0", b.CPUUsed(), b.CountOf(HostObjAlloc))
	}
}

func TestBudgetMemLimit(t *testing.T) {
	b := NewBudget(tinyCostModel())
	if err := b.ChargeMem(2000); err == nil {
		t.Fatal("expected ChargeMem to exceed the tiny MemLimit")
	}
}
