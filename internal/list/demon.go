package list

import (
	"fmt"
	"math"
)

// UnrankedPosition is the position assigned to demons that have been
// removed from the list. It is never a valid historical position.
const UnrankedPosition = -1

// Difficulty is the closed set of tiers a demon can be rated at.
type Difficulty string

const (
	DifficultySilent    Difficulty = "silent"
	DifficultyLegendary Difficulty = "legendary"
	DifficultyExtreme   Difficulty = "extreme"
	DifficultyMythical  Difficulty = "mythical"
	DifficultyInsane    Difficulty = "insane"
	DifficultyHard      Difficulty = "hard"
	DifficultyMedium    Difficulty = "medium"
	DifficultyEasy      Difficulty = "easy"
	DifficultyBeginner  Difficulty = "beginner"
)

var difficulties = map[Difficulty]bool{
	DifficultySilent:    true,
	DifficultyLegendary: true,
	DifficultyExtreme:   true,
	DifficultyMythical:  true,
	DifficultyInsane:    true,
	DifficultyHard:      true,
	DifficultyMedium:    true,
	DifficultyEasy:      true,
	DifficultyBeginner:  true,
}

// ParseDifficulty validates a difficulty string and returns the typed tier.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(s)
	if !difficulties[d] {
		return "", ConstraintError{Field: "difficulty", Message: fmt.Sprintf("unknown difficulty tier: %s", s)}
	}
	return d, nil
}

// Demon models one level on the ranked list.
type Demon struct {
	ID          int64
	Name        string // level names are not unique
	Position    int    // UnrankedPosition when removed from the list
	Requirement int    // minimal progress for a record to be accepted, 0-100
	Video       *string
	Thumbnail   string
	PublisherID int64
	VerifierID  int64
	LevelID     *int64
	Difficulty  Difficulty
}

// Clone returns a deep copy so callers can mutate freely.
func (d *Demon) Clone() *Demon {
	cp := *d
	if d.Video != nil {
		v := *d.Video
		cp.Video = &v
	}
	if d.LevelID != nil {
		l := *d.LevelID
		cp.LevelID = &l
	}
	return &cp
}

// Ranked reports whether the demon currently holds a list position.
func (d *Demon) Ranked() bool {
	return d.Position != UnrankedPosition
}

// ValidateRequirement checks that a record requirement lies within 0-100.
func ValidateRequirement(requirement int) error {
	if requirement < 0 || requirement > 100 {
		return ConstraintError{Field: "requirement", Message: "record requirement must lie between 0 and 100"}
	}
	return nil
}

// ValidateLevelID checks that a level ID references a plausible level.
func ValidateLevelID(levelID int64) error {
	if levelID < 1 {
		return ConstraintError{Field: "level_id", Message: "level IDs are positive"}
	}
	return nil
}

// ValidatePosition checks that a position lies between 1 and maximal,
// inclusive. Callers pass the current highest position plus one when
// inserting, so that no holes can be created in the list.
func ValidatePosition(position, maximal int) error {
	if position < 1 || position > maximal {
		return ConstraintError{Field: "position", Message: fmt.Sprintf("position must lie between 1 and %d", maximal)}
	}
	return nil
}

// Score computes the list points a player earns for reaching the given
// progress on this demon. Progress below the demon's requirement scores
// zero, as do demons beyond the extended list.
func (d *Demon) Score(progress int) float64 {
	if progress < d.Requirement {
		return 0
	}

	position := float64(d.Position)

	var beaten float64
	switch {
	case d.Position >= 56 && d.Position <= 150:
		beaten = 1.039035131 * (185.7*math.Exp(-0.02715*position) + 14.84)
	case d.Position >= 36 && d.Position <= 55:
		beaten = 1.0371139743 * (212.61*math.Pow(1.036, 1-position) + 25.071)
	case d.Position >= 21 && d.Position <= 35:
		beaten = ((250-83.389)*math.Pow(1.0099685, 2-position) - 31.152) * 1.0371139743
	case d.Position >= 4 && d.Position <= 20:
		beaten = (326.1*math.Exp(-0.0871*position) + 51.09) * 1.037117142
	case d.Position >= 1 && d.Position <= 3:
		beaten = -18.2899079915*position + 368.2899079915
	}

	if progress != 100 {
		return beaten * math.Pow(5, float64(progress-d.Requirement)/float64(100-d.Requirement)) / 10
	}
	return beaten
}
