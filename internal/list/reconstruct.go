package list

import (
	"fmt"
	"sort"
	"time"
)

// ReconstructedEntity pairs an entity with an attribute's value as of
// the reconstruction instant and its current live value.
type ReconstructedEntity struct {
	Kind       EntityKind
	EntityID   int64
	Historical FieldValue
	Current    FieldValue
}

// TimeShiftedDemon is one row of a historical list: the demon as it is
// now, the position it held at the reconstruction instant, and the
// position it holds today.
type TimeShiftedDemon struct {
	Demon       *Demon
	Position    int
	PositionNow int
}

// ReconstructAt derives the value every entity of the given kind held
// for attr at instant at, from the audit log and current live state.
//
// For each entity, the earliest modification at or after the instant
// whose diff names attr with a non-sentinel value fixes the historical
// value: the diff records what the attribute held immediately before
// that change, which is exactly its value at the instant. Entities with
// no such modification have not changed since, so their live value
// stands. Entities created at or after the instant are excluded
// entirely. The result is ordered by historical value ascending.
//
// Out-of-range instants never fail: an instant before all recorded
// history degrades to live values, and a future instant returns current
// state.
func (s *ListService) ReconstructAt(kind EntityKind, at time.Time, attr string) ([]ReconstructedEntity, error) {
	current, err := s.currentValues(kind, attr)
	if err != nil {
		return nil, err
	}

	mods, err := s.database.ModificationsSince(kind, attr, at)
	if err != nil {
		return nil, fmt.Errorf("querying modifications: %w", err)
	}

	// Entries arrive ordered by time then insertion id, so the first
	// non-sentinel entry seen per entity is the one that fixes its
	// historical value.
	historical := make(map[int64]FieldValue)
	for _, m := range mods {
		if _, done := historical[m.EntityID]; done {
			continue
		}
		old, ok := m.Diffs[attr]
		if !ok || Sentinel(attr, old) {
			continue
		}
		historical[m.EntityID] = old
	}

	additions, err := s.database.Additions(kind)
	if err != nil {
		return nil, fmt.Errorf("querying additions: %w", err)
	}
	addedSince := make(map[int64]bool)
	for _, a := range additions {
		if a.CreatedAtOrAfter(at) {
			addedSince[a.EntityID] = true
		}
	}

	var out []ReconstructedEntity
	for id, live := range current {
		if addedSince[id] {
			continue
		}
		value, ok := historical[id]
		if !ok {
			value = live
		}
		if Sentinel(attr, value) {
			// The entity held no valid value at the instant (an unranked
			// demon, say) and does not appear in the reconstruction.
			continue
		}
		out = append(out, ReconstructedEntity{
			Kind:       kind,
			EntityID:   id,
			Historical: value,
			Current:    live,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if !out[i].Historical.Equal(out[j].Historical) {
			return out[i].Historical.Less(out[j].Historical)
		}
		return out[i].EntityID < out[j].EntityID
	})
	return out, nil
}

// ListAt reconstructs the ranked list as it stood at the given instant.
func (s *ListService) ListAt(at time.Time) ([]TimeShiftedDemon, error) {
	demons, err := s.database.ListDemons()
	if err != nil {
		return nil, fmt.Errorf("listing demons: %w", err)
	}
	byID := make(map[int64]*Demon, len(demons))
	for _, d := range demons {
		byID[d.ID] = d
	}

	reconstructed, err := s.ReconstructAt(KindDemon, at, AttrPosition)
	if err != nil {
		return nil, err
	}

	out := make([]TimeShiftedDemon, 0, len(reconstructed))
	for _, r := range reconstructed {
		demon := byID[r.EntityID]
		if demon == nil {
			continue
		}
		out = append(out, TimeShiftedDemon{
			Demon:       demon,
			Position:    int(r.Historical.Int),
			PositionNow: demon.Position,
		})
	}
	return out, nil
}

// currentValues maps every live entity of the given kind to its current
// value for attr.
func (s *ListService) currentValues(kind EntityKind, attr string) (map[int64]FieldValue, error) {
	out := make(map[int64]FieldValue)
	switch kind {
	case KindDemon:
		demons, err := s.database.ListDemons()
		if err != nil {
			return nil, fmt.Errorf("listing demons: %w", err)
		}
		for _, d := range demons {
			v, err := demonAttr(d, attr)
			if err != nil {
				return nil, err
			}
			out[d.ID] = v
		}
	case KindRecord:
		records, err := s.database.ListRecords()
		if err != nil {
			return nil, fmt.Errorf("listing records: %w", err)
		}
		for _, r := range records {
			v, err := recordAttr(r, attr)
			if err != nil {
				return nil, err
			}
			out[r.ID] = v
		}
	default:
		return nil, fmt.Errorf("cannot reconstruct entities of kind %q", kind)
	}
	return out, nil
}

func demonAttr(d *Demon, attr string) (FieldValue, error) {
	switch attr {
	case AttrName:
		return Text(d.Name), nil
	case AttrPosition:
		return Int64(int64(d.Position)), nil
	case AttrRequirement:
		return Int64(int64(d.Requirement)), nil
	case AttrVideo:
		return optText(d.Video), nil
	case AttrThumbnail:
		return Text(d.Thumbnail), nil
	case AttrPublisher:
		return Int64(d.PublisherID), nil
	case AttrVerifier:
		return Int64(d.VerifierID), nil
	case AttrLevelID:
		return optInt(d.LevelID), nil
	case AttrDifficulty:
		return Text(string(d.Difficulty)), nil
	}
	return FieldValue{}, fmt.Errorf("demons have no attribute %q", attr)
}

func recordAttr(r *Record, attr string) (FieldValue, error) {
	switch attr {
	case AttrProgress:
		return Int64(int64(r.Progress)), nil
	case AttrVideo:
		return optText(r.Video), nil
	case AttrRawFootage:
		return optText(r.RawFootage), nil
	case AttrStatus:
		return Text(string(r.Status)), nil
	case AttrPlayer:
		return Int64(r.PlayerID), nil
	case AttrDemon:
		return Int64(r.DemonID), nil
	case AttrEnjoyment:
		return optIntPtr(r.Enjoyment), nil
	}
	return FieldValue{}, fmt.Errorf("records have no attribute %q", attr)
}
