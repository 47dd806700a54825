package profile

import (
	"testing"

	"github.com/sadopc/fitbot/internal/metrics"
	"github.com/sadopc/fitbot/internal/store"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	kv := newTestStore(t)

	p := metrics.Calculate(metrics.Input{
		Age: 30, Gender: "male", HeightCm: 175, WeightKg: 70,
		ActivityFactor: 1.55, Goal: metrics.GoalMaintain,
	})
	if err := Save(kv, "ada@example.com", p); err != nil {
		t.Fatal(err)
	}

	got, ok, err := Load(kv, "ada@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("profile should exist after Save")
	}
	if got.BMI != p.BMI || got.Calories != p.Calories || got.Level != p.Level {
		t.Fatalf("profile changed across round trip: %+v vs %+v", got, p)
	}
}

func TestLoadAbsent(t *testing.T) {
	kv := newTestStore(t)

	p, ok, err := Load(kv, "nobody@example.com")
	if err != nil {
		t.Fatal(err)
	}
	if ok || p != nil {
		t.Fatal("absent profile should load as ok=false")
	}
}

func TestProfilesScopedPerAccount(t *testing.T) {
	kv := newTestStore(t)

	a := metrics.Calculate(metrics.Input{Age: 25, Gender: "female", HeightCm: 160, WeightKg: 55, ActivityFactor: 1.2, Goal: metrics.GoalGain})
	b := metrics.Calculate(metrics.Input{Age: 45, Gender: "male", HeightCm: 185, WeightKg: 95, ActivityFactor: 1.375, Goal: metrics.GoalLoss})

	Save(kv, "a@example.com", a)
	Save(kv, "b@example.com", b)

	gotA, _, _ := Load(kv, "a@example.com")
	gotB, _, _ := Load(kv, "b@example.com")
	if gotA.Calories == gotB.Calories {
		t.Fatal("test profiles should differ")
	}
	if gotA.Goal != metrics.GoalGain || gotB.Goal != metrics.GoalLoss {
		t.Fatal("profiles leaked across accounts")
	}
}
