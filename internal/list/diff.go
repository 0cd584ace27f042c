package list

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// Audited attribute names. Diff keys and reconstruction queries use
// these identifiers.
const (
	AttrName        = "name"
	AttrPosition    = "position"
	AttrRequirement = "requirement"
	AttrVideo       = "video"
	AttrThumbnail   = "thumbnail"
	AttrPublisher   = "publisher"
	AttrVerifier    = "verifier"
	AttrLevelID     = "level_id"
	AttrDifficulty  = "difficulty"
	AttrProgress    = "progress"
	AttrRawFootage  = "raw_footage"
	AttrStatus      = "status"
	AttrPlayer      = "player"
	AttrDemon       = "demon"
	AttrEnjoyment   = "enjoyment"
	AttrBanned      = "banned"
)

// FieldKind discriminates the value held by a FieldValue.
type FieldKind int

const (
	FieldNull FieldKind = iota
	FieldInt
	FieldText
)

// FieldValue is a tagged attribute value. A diff maps attribute names to
// FieldValues; presence of a key means the attribute changed, and the
// value is what the attribute held *before* the change. The prior value
// may itself be null (an unset video, say), which is why absence and
// null are distinct.
type FieldValue struct {
	Kind FieldKind
	Int  int64
	Text string
}

// Null returns the null FieldValue.
func Null() FieldValue { return FieldValue{Kind: FieldNull} }

// Int64 returns an integer FieldValue.
func Int64(v int64) FieldValue { return FieldValue{Kind: FieldInt, Int: v} }

// Text returns a text FieldValue.
func Text(v string) FieldValue { return FieldValue{Kind: FieldText, Text: v} }

func (v FieldValue) Equal(o FieldValue) bool {
	return v.Kind == o.Kind && v.Int == o.Int && v.Text == o.Text
}

// Less orders FieldValues: null sorts before integers, integers before
// text; integers compare numerically and text lexically.
func (v FieldValue) Less(o FieldValue) bool {
	if v.Kind != o.Kind {
		return v.Kind < o.Kind
	}
	switch v.Kind {
	case FieldInt:
		return v.Int < o.Int
	case FieldText:
		return v.Text < o.Text
	}
	return false
}

func (v FieldValue) String() string {
	switch v.Kind {
	case FieldInt:
		return strconv.FormatInt(v.Int, 10)
	case FieldText:
		return v.Text
	}
	return "null"
}

// MarshalJSON encodes the value as a bare JSON null, number or string.
func (v FieldValue) MarshalJSON() ([]byte, error) {
	switch v.Kind {
	case FieldInt:
		return json.Marshal(v.Int)
	case FieldText:
		return json.Marshal(v.Text)
	}
	return []byte("null"), nil
}

// UnmarshalJSON decodes a bare JSON null, number or string.
func (v *FieldValue) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*v = Null()
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err == nil {
		*v = Int64(n)
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*v = Text(s)
		return nil
	}
	return fmt.Errorf("field value must be null, an integer or a string: %s", data)
}

// Sentinel reports whether the value is the reserved "unranked" marker
// for the given attribute. Sentinel values mark transitions to and from
// the unranked state and are never valid historical values.
func Sentinel(attr string, v FieldValue) bool {
	return attr == AttrPosition && v.Kind == FieldInt && v.Int == UnrankedPosition
}

// Diff is a sparse set of attribute changes. Each present key maps to
// the attribute's value before the update; unchanged attributes are
// absent. A diff may be entirely empty.
type Diff map[string]FieldValue

func optText(s *string) FieldValue {
	if s == nil {
		return Null()
	}
	return Text(*s)
}

func optInt(i *int64) FieldValue {
	if i == nil {
		return Null()
	}
	return Int64(*i)
}

func optIntPtr(i *int) FieldValue {
	if i == nil {
		return Null()
	}
	return Int64(int64(*i))
}

func boolInt(b bool) FieldValue {
	if b {
		return Int64(1)
	}
	return Int64(0)
}

// DiffDemon compares a demon's attributes before and after an update and
// records the prior value of every attribute that changed.
func DiffDemon(before, after *Demon) Diff {
	diff := Diff{}
	if before.Name != after.Name {
		diff[AttrName] = Text(before.Name)
	}
	if before.Position != after.Position {
		diff[AttrPosition] = Int64(int64(before.Position))
	}
	if before.Requirement != after.Requirement {
		diff[AttrRequirement] = Int64(int64(before.Requirement))
	}
	if !optText(before.Video).Equal(optText(after.Video)) {
		diff[AttrVideo] = optText(before.Video)
	}
	if before.Thumbnail != after.Thumbnail {
		diff[AttrThumbnail] = Text(before.Thumbnail)
	}
	if before.PublisherID != after.PublisherID {
		diff[AttrPublisher] = Int64(before.PublisherID)
	}
	if before.VerifierID != after.VerifierID {
		diff[AttrVerifier] = Int64(before.VerifierID)
	}
	if !optInt(before.LevelID).Equal(optInt(after.LevelID)) {
		diff[AttrLevelID] = optInt(before.LevelID)
	}
	if before.Difficulty != after.Difficulty {
		diff[AttrDifficulty] = Text(string(before.Difficulty))
	}
	return diff
}

// DiffPlayer compares a player's attributes before and after an update
// and records the prior value of every attribute that changed. Booleans
// are audited as 0/1.
func DiffPlayer(before, after *Player) Diff {
	diff := Diff{}
	if before.Name != after.Name {
		diff[AttrName] = Text(before.Name)
	}
	if before.Banned != after.Banned {
		diff[AttrBanned] = boolInt(before.Banned)
	}
	return diff
}

// DiffRecord compares a record's attributes before and after an update
// and records the prior value of every attribute that changed.
func DiffRecord(before, after *Record) Diff {
	diff := Diff{}
	if before.Progress != after.Progress {
		diff[AttrProgress] = Int64(int64(before.Progress))
	}
	if !optText(before.Video).Equal(optText(after.Video)) {
		diff[AttrVideo] = optText(before.Video)
	}
	if !optText(before.RawFootage).Equal(optText(after.RawFootage)) {
		diff[AttrRawFootage] = optText(before.RawFootage)
	}
	if before.Status != after.Status {
		diff[AttrStatus] = Text(string(before.Status))
	}
	if before.PlayerID != after.PlayerID {
		diff[AttrPlayer] = Int64(before.PlayerID)
	}
	if before.DemonID != after.DemonID {
		diff[AttrDemon] = Int64(before.DemonID)
	}
	if !optIntPtr(before.Enjoyment).Equal(optIntPtr(after.Enjoyment)) {
		diff[AttrEnjoyment] = optIntPtr(before.Enjoyment)
	}
	return diff
}
