package list_test

import (
	"testing"
	"time"

	"github.com/The-Layout-List/pointercrate/internal/list"
)

func assertList(t *testing.T, got []list.TimeShiftedDemon, want map[string]int) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("ListAt() returned %d demons, want %d (%v)", len(got), len(want), got)
	}
	for _, e := range got {
		if want[e.Demon.Name] != e.Position {
			t.Errorf("position of %s = %d, want %d", e.Demon.Name, e.Position, want[e.Demon.Name])
		}
	}
}

func TestListAt(t *testing.T) {
	s, clock := newTestService(t)
	t0 := clock.Now()

	a := addDemon(t, s, "Acheron", 1)
	addDemon(t, s, "Bloodbath", 2)
	c := addDemon(t, s, "Cadrega City", 3)

	clock.Advance(time.Hour)
	if _, err := s.MoveDemon(actor, c.ID, 1); err != nil {
		t.Fatalf("MoveDemon() error = %v", err)
	}

	t.Run("instant before the move shows the old order", func(t *testing.T) {
		got, err := s.ListAt(t0.Add(30 * time.Minute))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		assertList(t, got, map[string]int{"Acheron": 1, "Bloodbath": 2, "Cadrega City": 3})

		// Each row also carries the demon's current position.
		for _, e := range got {
			if e.Demon.Name == "Acheron" && e.PositionNow != 2 {
				t.Errorf("PositionNow of Acheron = %d, want 2", e.PositionNow)
			}
		}
	})

	t.Run("future instant shows the live list", func(t *testing.T) {
		got, err := s.ListAt(clock.Now().Add(time.Hour))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		assertList(t, got, map[string]int{"Cadrega City": 1, "Acheron": 2, "Bloodbath": 3})
	})

	t.Run("instant before any demon existed is empty", func(t *testing.T) {
		got, err := s.ListAt(t0.Add(-time.Hour))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		if len(got) != 0 {
			t.Errorf("ListAt() returned %d demons, want 0", len(got))
		}
	})

	t.Run("no-op patches do not disturb reconstruction", func(t *testing.T) {
		if _, err := s.PatchDemon(actor, a.ID, list.DemonPatch{}); err != nil {
			t.Fatalf("PatchDemon() error = %v", err)
		}
		got, err := s.ListAt(t0.Add(30 * time.Minute))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		assertList(t, got, map[string]int{"Acheron": 1, "Bloodbath": 2, "Cadrega City": 3})
	})
}

func TestListAt_ExcludesDemonsAddedLater(t *testing.T) {
	s, clock := newTestService(t)
	t0 := clock.Now()

	addDemon(t, s, "Acheron", 1)
	clock.Advance(time.Hour)
	t1 := clock.Now()
	addDemon(t, s, "Bloodbath", 2)

	got, err := s.ListAt(t0.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("ListAt() error = %v", err)
	}
	assertList(t, got, map[string]int{"Acheron": 1})

	// A demon added exactly at the instant did not yet exist at it.
	got, err = s.ListAt(t1)
	if err != nil {
		t.Fatalf("ListAt() error = %v", err)
	}
	assertList(t, got, map[string]int{"Acheron": 1})
}

func TestListAt_UnrankedDemonsAreExcluded(t *testing.T) {
	s, clock := newTestService(t)
	t0 := clock.Now()

	a := addDemon(t, s, "Acheron", 1)
	addDemon(t, s, "Bloodbath", 2)

	clock.Advance(time.Hour)
	t1 := clock.Now()
	if _, err := s.RemoveDemon(actor, a.ID); err != nil {
		t.Fatalf("RemoveDemon() error = %v", err)
	}

	t.Run("before the removal both demons are listed", func(t *testing.T) {
		got, err := s.ListAt(t0.Add(30 * time.Minute))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		assertList(t, got, map[string]int{"Acheron": 1, "Bloodbath": 2})
	})

	t.Run("after the removal the demon is gone", func(t *testing.T) {
		got, err := s.ListAt(t1.Add(30 * time.Minute))
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		assertList(t, got, map[string]int{"Bloodbath": 1})
	})
}

func TestListAt_RerankedDemon(t *testing.T) {
	s, clock := newTestService(t)
	t0 := clock.Now()

	a := addDemon(t, s, "Acheron", 1)
	addDemon(t, s, "Bloodbath", 2)

	clock.Advance(time.Hour)
	if _, err := s.RemoveDemon(actor, a.ID); err != nil {
		t.Fatalf("RemoveDemon() error = %v", err)
	}
	clock.Advance(time.Hour)
	if _, err := s.MoveDemon(actor, a.ID, 2); err != nil {
		t.Fatalf("MoveDemon() error = %v", err)
	}

	// The re-rank logged the unranked marker as the prior position; that
	// entry must never be mistaken for a historical position. The removal
	// entry before it fixes the value instead.
	got, err := s.ListAt(t0.Add(30 * time.Minute))
	if err != nil {
		t.Fatalf("ListAt() error = %v", err)
	}
	assertList(t, got, map[string]int{"Acheron": 1, "Bloodbath": 2})
}

func TestListAt_SuccessiveMoves(t *testing.T) {
	s, clock := newTestService(t)

	var erebus *list.Demon
	for i, name := range []string{"Acheron", "Bloodbath", "Cadrega City", "Deadlocked", "Erebus"} {
		erebus = addDemon(t, s, name, i+1)
	}
	t0 := clock.Now()

	clock.Advance(time.Hour)
	t1 := clock.Now()
	if _, err := s.MoveDemon(actor, erebus.ID, 3); err != nil {
		t.Fatalf("MoveDemon() error = %v", err)
	}

	clock.Advance(time.Hour)
	t2 := clock.Now()
	if _, err := s.MoveDemon(actor, erebus.ID, 1); err != nil {
		t.Fatalf("MoveDemon() error = %v", err)
	}

	positionOfErebus := func(t *testing.T, at time.Time) int {
		t.Helper()
		got, err := s.ListAt(at)
		if err != nil {
			t.Fatalf("ListAt() error = %v", err)
		}
		for _, e := range got {
			if e.Demon.Name == "Erebus" {
				return e.Position
			}
		}
		t.Fatal("Erebus not in reconstructed list")
		return 0
	}

	if got := positionOfErebus(t, t0.Add(time.Minute)); got != 5 {
		t.Errorf("position just after creation = %d, want 5", got)
	}
	if got := positionOfErebus(t, t1.Add(30*time.Minute)); got != 3 {
		t.Errorf("position between the moves = %d, want 3", got)
	}
	if got := positionOfErebus(t, t2.Add(time.Minute)); got != 1 {
		t.Errorf("position after the second move = %d, want 1", got)
	}
}

func TestReconstructAt_RecordProgress(t *testing.T) {
	s, clock := newTestService(t)
	raw := "https://example.com/raw.mp4"

	d := addDemon(t, s, "Zodiac", 1)
	r, err := s.SubmitRecord(actor, list.Submission{Progress: 95, Player: "spaceuk", DemonID: d.ID, RawFootage: &raw})
	if err != nil {
		t.Fatalf("SubmitRecord() error = %v", err)
	}
	t0 := clock.Now()

	clock.Advance(time.Hour)
	progress := 100
	if _, err := s.PatchRecord(actor, r.ID, list.RecordPatch{Progress: &progress}); err != nil {
		t.Fatalf("PatchRecord() error = %v", err)
	}

	got, err := s.ReconstructAt(list.KindRecord, t0.Add(30*time.Minute), list.AttrProgress)
	if err != nil {
		t.Fatalf("ReconstructAt() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ReconstructAt() returned %d entities, want 1", len(got))
	}
	if !got[0].Historical.Equal(list.Int64(95)) {
		t.Errorf("historical progress = %v, want 95", got[0].Historical)
	}
	if !got[0].Current.Equal(list.Int64(100)) {
		t.Errorf("current progress = %v, want 100", got[0].Current)
	}
}

func TestReconstructAt_Errors(t *testing.T) {
	s, clock := newTestService(t)

	if _, err := s.ReconstructAt(list.KindDemon, clock.Now(), "bogus"); err == nil {
		t.Error("ReconstructAt(bogus attr) = nil, want error")
	}
	if _, err := s.ReconstructAt(list.KindPlayer, clock.Now(), list.AttrName); err == nil {
		t.Error("ReconstructAt(player) = nil, want error")
	}
}
