package service

import (
	"context"
	"errors"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/newsportal/internal/constants"
	"github.com/newsportal/internal/models"
	"github.com/newsportal/internal/repository"
)

type fakePicksObserver struct {
	results map[string]int
}

func (f *fakePicksObserver) ObservePick(result string) {
	if f.results == nil {
		f.results = map[string]int{}
	}
	f.results[result]++
}

func TestPickForSlotWeightedDistribution(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	slot := createTestSlot(t, db, "SIDEBAR_TOP", true)
	light := createTestPlacement(t, db, slot.ID, "A", 1, nil)
	heavy := createTestPlacement(t, db, slot.ID, "B", 3, nil)

	rng := rand.New(rand.NewPCG(42, 7))
	svc := NewAdSelectionService(repos.slots, repos.placements).WithRandom(rng.Float64)

	const picks = 10000
	counts := map[uint]int{}
	for i := 0; i < picks; i++ {
		selection, err := svc.PickForSlot(context.Background(), "SIDEBAR_TOP")
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
		counts[selection.Placement.PlacementID]++
	}
	if counts[light.ID] == 0 {
		t.Fatalf("light placement never picked: %+v", counts)
	}
	ratio := float64(counts[heavy.ID]) / float64(counts[light.ID])
	if ratio < 2.6 || ratio > 3.4 {
		t.Fatalf("expected ratio near 3, got %.3f (%+v)", ratio, counts)
	}
}

func TestPickForSlotSkipsClosedWindow(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	slot := createTestSlot(t, db, "HERO", true)
	expired := now.Add(-time.Minute)
	createTestPlacement(t, db, slot.ID, "expired", 5, func(p *models.AdPlacement, _ *models.AdCreative) {
		p.ActiveTo = &expired
	})
	createTestPlacement(t, db, slot.ID, "zero", 0, func(p *models.AdPlacement, _ *models.AdCreative) {
		p.IsActive = false
	})

	observer := &fakePicksObserver{}
	svc := NewAdSelectionService(repos.slots, repos.placements).
		WithClock(func() time.Time { return now }).
		WithObserver(observer)
	if _, err := svc.PickForSlot(context.Background(), "HERO"); !errors.Is(err, ErrNoEligibleCreative) {
		t.Fatalf("expected ErrNoEligibleCreative, got %v", err)
	}
	if observer.results[constants.AdPickResultNoEligible] != 1 {
		t.Fatalf("expected no-eligible observation, got %+v", observer.results)
	}
}

func TestPickForSlotRequiresCreativeWindow(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	now := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)
	slot := createTestSlot(t, db, "HERO", true)
	future := now.Add(time.Hour)
	createTestPlacement(t, db, slot.ID, "not-yet", 5, func(_ *models.AdPlacement, c *models.AdCreative) {
		c.ActiveFrom = &future
	})
	open := createTestPlacement(t, db, slot.ID, "open", 1, nil)

	svc := NewAdSelectionService(repos.slots, repos.placements).WithClock(func() time.Time { return now })
	for i := 0; i < 20; i++ {
		selection, err := svc.PickForSlot(context.Background(), "HERO")
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
		if selection.Placement.PlacementID != open.ID {
			t.Fatalf("expected open placement %d, got %d", open.ID, selection.Placement.PlacementID)
		}
	}
}

func TestPickForSlotComparesWindowInUTC(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	from := time.Date(2026, 5, 1, 7, 0, 0, 0, time.UTC)
	to := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	slot := createTestSlot(t, db, "HERO", true)
	placement := createTestPlacement(t, db, slot.ID, "morning", 1, func(p *models.AdPlacement, _ *models.AdCreative) {
		p.ActiveFrom = &from
		p.ActiveTo = &to
	})

	// 08:00 UTC 以 UTC+6 表示为 14:00
	local := time.Date(2026, 5, 1, 14, 0, 0, 0, time.FixedZone("UTC+6", 6*3600))
	svc := NewAdSelectionService(repos.slots, repos.placements).WithClock(func() time.Time { return local })
	selection, err := svc.PickForSlot(context.Background(), "HERO")
	if err != nil {
		t.Fatalf("pick inside window failed: %v", err)
	}
	if selection.Placement.PlacementID != placement.ID {
		t.Fatalf("expected placement %d, got %d", placement.ID, selection.Placement.PlacementID)
	}
}

func TestPickForSlotDisabledSlot(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	slot := createTestSlot(t, db, "FOOTER", false)
	createTestPlacement(t, db, slot.ID, "A", 10, nil)

	observer := &fakePicksObserver{}
	svc := NewAdSelectionService(repos.slots, repos.placements).WithObserver(observer)
	if _, err := svc.PickForSlot(context.Background(), "FOOTER"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound for disabled slot, got %v", err)
	}
	if _, err := svc.PickForSlot(context.Background(), "MISSING"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound for missing slot, got %v", err)
	}
	if _, err := svc.PickForSlot(context.Background(), "  "); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound for blank key, got %v", err)
	}
	if observer.results[constants.AdPickResultSlotNotFound] != 3 {
		t.Fatalf("unexpected observations %+v", observer.results)
	}
}

func TestPickForSlotZeroWeightFallsBackToFirstRow(t *testing.T) {
	db := setupServiceTestDB(t)
	repos := newAdTestRepos(db)
	slot := createTestSlot(t, db, "INLINE", true)
	first := createTestPlacement(t, db, slot.ID, "first", 0, nil)
	createTestPlacement(t, db, slot.ID, "second", 0, nil)

	rng := rand.New(rand.NewPCG(1, 2))
	svc := NewAdSelectionService(repos.slots, repos.placements).WithRandom(rng.Float64)
	for i := 0; i < 50; i++ {
		selection, err := svc.PickForSlot(context.Background(), "INLINE")
		if err != nil {
			t.Fatalf("pick failed: %v", err)
		}
		if selection.Placement.PlacementID != first.ID {
			t.Fatalf("expected first placement %d, got %d", first.ID, selection.Placement.PlacementID)
		}
		if selection.Slot.ID != slot.ID || selection.Placement.CreativeName != "first" {
			t.Fatalf("unexpected selection payload %+v", selection)
		}
	}
}

func TestPickWeightedLinearScan(t *testing.T) {
	rows := []repository.AdEligibleRow{
		{PlacementID: 1, PlacementWeight: 0},
		{PlacementID: 2, PlacementWeight: 2},
		{PlacementID: 3, PlacementWeight: 2},
	}
	cases := []struct {
		draw float64
		want uint
	}{
		{draw: 0, want: 2},
		{draw: 0.5, want: 2},
		{draw: 0.5000001, want: 3},
		{draw: 0.999999, want: 3},
	}
	for _, tc := range cases {
		got := pickWeighted(rows, func() float64 { return tc.draw })
		if got.PlacementID != tc.want {
			t.Fatalf("draw %v: expected placement %d, got %d", tc.draw, tc.want, got.PlacementID)
		}
	}
}
