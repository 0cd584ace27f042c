package list

import (
	"fmt"
)

// List size boundaries. Records can only be submitted for demons on the
// main or extended list; demons beyond the extended list are legacy.
const (
	ListSize         = 75
	ExtendedListSize = 150
)

// ListService is the orchestration layer that coordinates storage, diff
// computation and audit logging to perform high-level list operations.
// Every mutating method takes the acting user explicitly; there is no
// ambient "current user" state.
type ListService struct {
	database Database
	logger   Logger
	clock    Clock
}

// NewListService creates a new ListService with the provided dependencies.
func NewListService(database Database, logger Logger, clock Clock) *ListService {
	return &ListService{
		database: database,
		logger:   logger,
		clock:    clock,
	}
}

// NewDemon describes a demon to be placed on the list. Publisher and
// verifier are player names, resolved (and created if needed) on insert.
type NewDemon struct {
	Name        string
	Position    int
	Requirement int
	Video       *string
	Thumbnail   string
	Publisher   string
	Verifier    string
	LevelID     *int64
	Difficulty  Difficulty
}

// AddDemon validates and inserts a new demon at the requested position.
// Demons at or below that position move down one place; every shifted
// demon gets its own audit entry, since the shift is itself a tracked
// update. The insertion is recorded in the addition log.
func (s *ListService) AddDemon(actor int64, post NewDemon) (*Demon, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}
	if err := ValidateRequirement(post.Requirement); err != nil {
		return nil, err
	}
	if _, err := ParseDifficulty(string(post.Difficulty)); err != nil {
		return nil, err
	}
	if post.LevelID != nil {
		if err := ValidateLevelID(*post.LevelID); err != nil {
			return nil, err
		}
	}

	var video *string
	if post.Video != nil {
		canonical, err := ValidateVideo(*post.Video)
		if err != nil {
			return nil, err
		}
		video = &canonical
	}

	// The new position must lie between 1 and (current last position + 1)
	// so that no holes are created in the list.
	maxPosition, err := s.database.MaxPosition()
	if err != nil {
		return nil, fmt.Errorf("querying max position: %w", err)
	}
	if err := ValidatePosition(post.Position, maxPosition+1); err != nil {
		return nil, err
	}

	publisher, err := s.database.FindOrCreatePlayer(post.Publisher)
	if err != nil {
		return nil, fmt.Errorf("resolving publisher: %w", err)
	}
	verifier, err := s.database.FindOrCreatePlayer(post.Verifier)
	if err != nil {
		return nil, fmt.Errorf("resolving verifier: %w", err)
	}

	demon := &Demon{
		Name:        post.Name,
		Position:    post.Position,
		Requirement: post.Requirement,
		Video:       video,
		Thumbnail:   post.Thumbnail,
		PublisherID: publisher.ID,
		VerifierID:  verifier.ID,
		LevelID:     post.LevelID,
		Difficulty:  post.Difficulty,
	}

	created, err := s.database.InsertDemonAudited(demon, actor, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("inserting demon: %w", err)
	}

	s.logger.Info("demon added", "id", created.ID, "name", created.Name, "position", created.Position)
	return created, nil
}

// DemonPatch describes a partial update to a demon. Nil fields are left
// untouched. An empty Video string clears the video.
type DemonPatch struct {
	Name        *string
	Position    *int
	Requirement *int
	Video       *string
	Thumbnail   *string
	Publisher   *string
	Verifier    *string
	LevelID     *int64
	Difficulty  *string
}

// PatchDemon applies a partial update to a demon. The mutation, the
// sparse diff and the audit append happen in one transaction; exactly
// one modification entry is written for the target even when the patch
// changes nothing. Position moves shift the span of demons between the
// old and new position, each of them audited in the same transaction.
func (s *ListService) PatchDemon(actor int64, id int64, patch DemonPatch) (*Demon, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}

	// Reject constraint violations before any diff is computed.
	if patch.Requirement != nil {
		if err := ValidateRequirement(*patch.Requirement); err != nil {
			return nil, err
		}
	}
	if patch.LevelID != nil {
		if err := ValidateLevelID(*patch.LevelID); err != nil {
			return nil, err
		}
	}
	var difficulty Difficulty
	if patch.Difficulty != nil {
		var err error
		difficulty, err = ParseDifficulty(*patch.Difficulty)
		if err != nil {
			return nil, err
		}
	}
	var video *string
	if patch.Video != nil && *patch.Video != "" {
		canonical, err := ValidateVideo(*patch.Video)
		if err != nil {
			return nil, err
		}
		video = &canonical
	}
	var maxPosition int
	if patch.Position != nil {
		var err error
		if maxPosition, err = s.database.MaxPosition(); err != nil {
			return nil, fmt.Errorf("querying max position: %w", err)
		}
	}

	var publisher, verifier *Player
	var err error
	if patch.Publisher != nil {
		if publisher, err = s.database.FindOrCreatePlayer(*patch.Publisher); err != nil {
			return nil, fmt.Errorf("resolving publisher: %w", err)
		}
	}
	if patch.Verifier != nil {
		if verifier, err = s.database.FindOrCreatePlayer(*patch.Verifier); err != nil {
			return nil, fmt.Errorf("resolving verifier: %w", err)
		}
	}

	updated, err := s.database.UpdateDemonAudited(id, actor, s.clock.Now(), func(d *Demon) error {
		if patch.Name != nil {
			d.Name = *patch.Name
		}
		if patch.Position != nil {
			// Moving a ranked demon only rearranges the list, so the last
			// position stays the bound; re-ranking from the sentinel grows
			// the list by one. Either way no holes can appear.
			bound := maxPosition
			if !d.Ranked() {
				bound = maxPosition + 1
			}
			if err := ValidatePosition(*patch.Position, bound); err != nil {
				return err
			}
			d.Position = *patch.Position
		}
		if patch.Requirement != nil {
			d.Requirement = *patch.Requirement
		}
		if patch.Video != nil {
			d.Video = video // nil when clearing
		}
		if patch.Thumbnail != nil {
			d.Thumbnail = *patch.Thumbnail
		}
		if publisher != nil {
			d.PublisherID = publisher.ID
		}
		if verifier != nil {
			d.VerifierID = verifier.ID
		}
		if patch.LevelID != nil {
			d.LevelID = patch.LevelID
		}
		if patch.Difficulty != nil {
			d.Difficulty = difficulty
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("demon patched", "id", id)
	return updated, nil
}

// MoveDemon moves a demon to a new position. Shorthand for a
// position-only patch.
func (s *ListService) MoveDemon(actor int64, id int64, to int) (*Demon, error) {
	return s.PatchDemon(actor, id, DemonPatch{Position: &to})
}

// RemoveDemon takes a demon off the list by moving it to the unranked
// sentinel position. Demons below it move up one place, each shift
// audited. The demon's history is retained and it can be re-ranked later.
func (s *ListService) RemoveDemon(actor int64, id int64) (*Demon, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}

	updated, err := s.database.UpdateDemonAudited(id, actor, s.clock.Now(), func(d *Demon) error {
		if !d.Ranked() {
			return ConstraintError{Field: "position", Message: "demon is already unranked"}
		}
		d.Position = UnrankedPosition
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("demon removed from list", "id", id)
	return updated, nil
}

// SetPlayerBanned bans or unbans a player, resolved by name. The flag
// flip is audited like any other update. Banning does not touch the
// player's existing records; it only blocks new submissions.
func (s *ListService) SetPlayerBanned(actor int64, name string, banned bool) (*Player, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}

	player, err := s.database.FindOrCreatePlayer(name)
	if err != nil {
		return nil, fmt.Errorf("resolving player: %w", err)
	}

	updated, err := s.database.UpdatePlayerAudited(player.ID, actor, s.clock.Now(), func(p *Player) error {
		p.Banned = banned
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("player ban flag set", "id", player.ID, "name", name, "banned", banned)
	return updated, nil
}

// Player returns a player by ID.
func (s *ListService) Player(id int64) (*Player, error) {
	player, err := s.database.FindPlayer(id)
	if err != nil {
		return nil, fmt.Errorf("finding player: %w", err)
	}
	if player == nil {
		return nil, NotFoundError{Kind: KindPlayer, ID: id}
	}
	return player, nil
}

// Submission is a record submitted for a demon. The player is resolved
// by name and created on first reference.
type Submission struct {
	Progress   int
	Player     string
	DemonID    int64
	Video      *string
	RawFootage *string
	Status     RecordStatus // zero value means submitted
	Enjoyment  *int
}

// SubmitRecord normalizes, validates and inserts a record submission.
// The insertion and the addition log append happen in one transaction.
func (s *ListService) SubmitRecord(actor int64, submission Submission) (*Record, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}

	status := submission.Status
	if status == "" {
		status = StatusSubmitted
	}
	if _, err := ParseRecordStatus(string(status)); err != nil {
		return nil, err
	}

	var video *string
	if submission.Video != nil {
		canonical, err := ValidateVideo(*submission.Video)
		if err != nil {
			return nil, err
		}
		video = &canonical
	}

	// Normalize: resolve player and demon against the database.
	player, err := s.database.FindOrCreatePlayer(submission.Player)
	if err != nil {
		return nil, fmt.Errorf("resolving player: %w", err)
	}
	demon, err := s.database.FindDemon(submission.DemonID)
	if err != nil {
		return nil, fmt.Errorf("finding demon: %w", err)
	}
	if demon == nil {
		return nil, NotFoundError{Kind: KindDemon, ID: submission.DemonID}
	}

	// Banned players can't have records on the list.
	if player.Banned {
		return nil, ConstraintError{Field: "player", Message: fmt.Sprintf("player %s is banned", player.Name)}
	}

	// Submissions are closed for the legacy list, and the extended list
	// only takes 100% records. List mods adding records directly are
	// exempt from both rules.
	if status == StatusSubmitted {
		if demon.Position > ExtendedListSize || !demon.Ranked() {
			return nil, ConstraintError{Field: "demon", Message: "submissions are closed for the legacy list"}
		}
		if demon.Position > ListSize && submission.Progress != 100 {
			return nil, ConstraintError{Field: "progress", Message: "only 100% records are accepted for the extended list"}
		}
		if submission.RawFootage == nil {
			return nil, ConstraintError{Field: "raw_footage", Message: "submissions require raw footage"}
		}
	}

	if err := ValidateProgress(submission.Progress, demon.Requirement); err != nil {
		return nil, err
	}
	if submission.Enjoyment != nil {
		if err := ValidateEnjoyment(*submission.Enjoyment); err != nil {
			return nil, err
		}
	}
	if submission.RawFootage != nil {
		if err := ValidateRawFootage(*submission.RawFootage); err != nil {
			return nil, err
		}
	}

	record := &Record{
		Progress:   submission.Progress,
		Video:      video,
		RawFootage: submission.RawFootage,
		Status:     status,
		PlayerID:   player.ID,
		DemonID:    demon.ID,
		Enjoyment:  submission.Enjoyment,
	}

	created, err := s.database.InsertRecordAudited(record, actor, s.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("inserting record: %w", err)
	}

	s.logger.Info("record submitted", "id", created.ID, "player", player.Name, "demon", demon.Name, "progress", created.Progress)
	return created, nil
}

// RecordPatch describes a partial update to a record. Nil fields are
// left untouched. An empty Video string clears the video.
type RecordPatch struct {
	Progress   *int
	Video      *string
	RawFootage *string
	Status     *string
	Player     *string
	DemonID    *int64
	Enjoyment  *int
}

// PatchRecord applies a partial update to a record. Exactly one
// modification entry is appended, even when the patch changes nothing.
func (s *ListService) PatchRecord(actor int64, id int64, patch RecordPatch) (*Record, error) {
	if actor == 0 {
		return nil, ErrMissingActor
	}

	var status RecordStatus
	if patch.Status != nil {
		var err error
		status, err = ParseRecordStatus(*patch.Status)
		if err != nil {
			return nil, err
		}
	}
	if patch.Enjoyment != nil {
		if err := ValidateEnjoyment(*patch.Enjoyment); err != nil {
			return nil, err
		}
	}
	if patch.RawFootage != nil {
		if err := ValidateRawFootage(*patch.RawFootage); err != nil {
			return nil, err
		}
	}
	var video *string
	if patch.Video != nil && *patch.Video != "" {
		canonical, err := ValidateVideo(*patch.Video)
		if err != nil {
			return nil, err
		}
		video = &canonical
	}

	var demon *Demon
	if patch.DemonID != nil {
		var err error
		demon, err = s.database.FindDemon(*patch.DemonID)
		if err != nil {
			return nil, fmt.Errorf("finding demon: %w", err)
		}
		if demon == nil {
			return nil, NotFoundError{Kind: KindDemon, ID: *patch.DemonID}
		}
	}
	var player *Player
	if patch.Player != nil {
		var err error
		player, err = s.database.FindOrCreatePlayer(*patch.Player)
		if err != nil {
			return nil, fmt.Errorf("resolving player: %w", err)
		}
		if player.Banned {
			return nil, ConstraintError{Field: "player", Message: fmt.Sprintf("player %s is banned", player.Name)}
		}
	}

	// Progress bounds depend on the (possibly changing) demon, so the
	// target demon and resulting progress are resolved up front. All
	// constraint checks happen before any diff is computed.
	current, err := s.database.FindRecord(id)
	if err != nil {
		return nil, fmt.Errorf("finding record: %w", err)
	}
	if current == nil {
		return nil, NotFoundError{Kind: KindRecord, ID: id}
	}
	if demon == nil {
		if demon, err = s.database.FindDemon(current.DemonID); err != nil {
			return nil, fmt.Errorf("finding demon: %w", err)
		}
	}
	progress := current.Progress
	if patch.Progress != nil {
		progress = *patch.Progress
	}
	if demon != nil {
		if err := ValidateProgress(progress, demon.Requirement); err != nil {
			return nil, err
		}
	}

	updated, err := s.database.UpdateRecordAudited(id, actor, s.clock.Now(), func(r *Record) error {
		if patch.Progress != nil {
			r.Progress = *patch.Progress
		}
		if patch.Video != nil {
			r.Video = video // nil when clearing
		}
		if patch.RawFootage != nil {
			r.RawFootage = patch.RawFootage
		}
		if patch.Status != nil {
			r.Status = status
		}
		if player != nil {
			r.PlayerID = player.ID
		}
		if demon != nil {
			r.DemonID = demon.ID
		}
		if patch.Enjoyment != nil {
			r.Enjoyment = patch.Enjoyment
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("record patched", "id", id)
	return updated, nil
}

// Demon returns a demon by ID.
func (s *ListService) Demon(id int64) (*Demon, error) {
	demon, err := s.database.FindDemon(id)
	if err != nil {
		return nil, fmt.Errorf("finding demon: %w", err)
	}
	if demon == nil {
		return nil, NotFoundError{Kind: KindDemon, ID: id}
	}
	return demon, nil
}

// Demons returns the current list, ranked demons first in position order.
func (s *ListService) Demons() ([]*Demon, error) {
	return s.database.ListDemons()
}

// Record returns a record by ID.
func (s *ListService) Record(id int64) (*Record, error) {
	record, err := s.database.FindRecord(id)
	if err != nil {
		return nil, fmt.Errorf("finding record: %w", err)
	}
	if record == nil {
		return nil, NotFoundError{Kind: KindRecord, ID: id}
	}
	return record, nil
}

// RecordsForDemon returns the records on a demon.
func (s *ListService) RecordsForDemon(demonID int64) ([]*Record, error) {
	return s.database.ListRecordsForDemon(demonID)
}

// AuditLog returns an entity's modification entries, oldest first.
func (s *ListService) AuditLog(kind EntityKind, entityID int64) ([]*ModificationEntry, error) {
	return s.database.ModificationsFor(kind, entityID)
}

// AttributeHistory returns an entity's modification entries that touched
// the given attribute, oldest first.
func (s *ListService) AttributeHistory(kind EntityKind, entityID int64, attr string) ([]*ModificationEntry, error) {
	entries, err := s.database.ModificationsFor(kind, entityID)
	if err != nil {
		return nil, err
	}
	var touched []*ModificationEntry
	for _, e := range entries {
		if _, ok := e.Diffs[attr]; ok {
			touched = append(touched, e)
		}
	}
	return touched, nil
}

// Addition returns an entity's creation entry.
func (s *ListService) Addition(kind EntityKind, entityID int64) (*AdditionEntry, error) {
	addition, err := s.database.AdditionFor(kind, entityID)
	if err != nil {
		return nil, fmt.Errorf("finding addition: %w", err)
	}
	if addition == nil {
		return nil, NotFoundError{Kind: kind, ID: entityID}
	}
	return addition, nil
}

// History returns the most recent CLI operations, newest first.
func (s *ListService) History(limit int) ([]*Operation, error) {
	ops, err := s.database.ListOperations(limit)
	if err != nil {
		return nil, fmt.Errorf("listing operations: %w", err)
	}
	return ops, nil
}
