package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/The-Layout-List/pointercrate/internal/app"
	"github.com/The-Layout-List/pointercrate/internal/config"
	"github.com/The-Layout-List/pointercrate/internal/list"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newApp reads the config and creates a ListApp. The caller must defer app.Close().
// operation identifies the CLI command being run (e.g. "AddDemon", "MoveDemon").
func newApp(operation, parameters string) (*app.ListApp, error) {
	defaults, err := app.GetDefaults()
	if err != nil {
		return nil, fmt.Errorf("getting defaults: %w", err)
	}

	cfg, err := config.ReadFromFile(defaults["config_path"])
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	a, err := app.NewListApp(cfg, operation, parameters)
	if err != nil {
		return nil, fmt.Errorf("initializing app: %w", err)
	}

	return a, nil
}

// actorFlag reads the required --by flag identifying the acting user.
func actorFlag(cmd *cobra.Command) (int64, error) {
	actor, err := cmd.Flags().GetInt64("by")
	if err != nil {
		return 0, err
	}
	if actor == 0 {
		return 0, fmt.Errorf("--by is required for mutating commands")
	}
	return actor, nil
}

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid id %q", arg)
	}
	return id, nil
}

func formatDemon(d *list.Demon) string {
	pos := "unranked"
	if d.Ranked() {
		pos = fmt.Sprintf("#%d", d.Position)
	}
	return fmt.Sprintf("%s  %s (id=%d, requirement=%d%%, difficulty=%s)", pos, d.Name, d.ID, d.Requirement, d.Difficulty)
}

var rootCmd = &cobra.Command{
	Use:   "demonlist",
	Short: "Ranked demon list with a full audit trail",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		listName, _ := cmd.Flags().GetString("name")
		cfg := config.NewConfig(listName, defaults["base_dir"])

		if err := config.Init(defaults["config_path"], cfg); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		fmt.Printf("Configuration initialized at %s\n", defaults["config_path"])
		fmt.Printf("List Name: %s\n", listName)
		fmt.Printf("Base Dir:  %s\n", defaults["base_dir"])
		return nil
	},
}

var configListCmd = &cobra.Command{
	Use:   "list",
	Short: "View configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}

		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		fmt.Printf("Configuration from %s:\n\n", defaults["config_path"])
		fmt.Printf("List Name: %s\n", cfg.ListName)
		fmt.Printf("Base Dir:  %s\n", cfg.BaseDir)
		fmt.Printf("Log Dir:   %s\n", cfg.LogDir)
		return nil
	},
}

// promptPassphrase reads a passphrase from the terminal without echo.
func promptPassphrase(prompt string) (string, error) {
	fmt.Print(prompt)
	passphrase, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("reading passphrase: %w", err)
	}
	return string(passphrase), nil
}

var configKeygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate the archive encryption key pair",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		passphrase, err := promptPassphrase("Passphrase for the archive key: ")
		if err != nil {
			return err
		}
		confirm, err := promptPassphrase("Repeat passphrase: ")
		if err != nil {
			return err
		}
		if passphrase != confirm {
			return fmt.Errorf("passphrases do not match")
		}

		if err := app.SetupArchiveKeys(cfg, passphrase); err != nil {
			return err
		}
		fmt.Printf("Archive keys written to %s\n", cfg.Encryption.PublicKeyPath)
		fmt.Println("Future vault uploads will be encrypted.")
		return nil
	},
}

// restore command
var restoreCmd = &cobra.Command{
	Use:   "restore",
	Short: "Replace the local database with the vault archive",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}
		force, _ := cmd.Flags().GetBool("force")

		var passphrase string
		if _, err := os.Stat(cfg.Encryption.PrivateKeyPath); err == nil {
			if passphrase, err = promptPassphrase("Passphrase for the archive key: "); err != nil {
				return err
			}
		}

		if err := app.RestoreArchive(cfg, passphrase, force); err != nil {
			return err
		}
		fmt.Println("Database restored from vault archive.")
		return nil
	},
}

// db command
var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Manage the list database",
}

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if err := app.MigrateDatabase(cfg); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date.")
		return nil
	},
}

var dbStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Check the database schema version",
	RunE: func(cmd *cobra.Command, args []string) error {
		defaults, err := app.GetDefaults()
		if err != nil {
			return fmt.Errorf("failed to get defaults: %w", err)
		}
		cfg, err := config.ReadFromFile(defaults["config_path"])
		if err != nil {
			return fmt.Errorf("failed to read config: %w", err)
		}

		if err := app.DatabaseStatus(cfg); err != nil {
			return err
		}
		fmt.Println("Database schema is up to date.")
		return nil
	},
}

// demon command
var demonCmd = &cobra.Command{
	Use:   "demon",
	Short: "Manage demons",
}

var demonAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Place a new demon on the list",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		position, _ := cmd.Flags().GetInt("position")
		requirement, _ := cmd.Flags().GetInt("requirement")
		thumbnail, _ := cmd.Flags().GetString("thumbnail")
		publisher, _ := cmd.Flags().GetString("publisher")
		verifier, _ := cmd.Flags().GetString("verifier")
		difficultyName, _ := cmd.Flags().GetString("difficulty")

		difficulty, err := list.ParseDifficulty(difficultyName)
		if err != nil {
			return err
		}

		demon := list.NewDemon{
			Name:        name,
			Position:    position,
			Requirement: requirement,
			Thumbnail:   thumbnail,
			Publisher:   publisher,
			Verifier:    verifier,
			Difficulty:  difficulty,
		}
		if cmd.Flags().Changed("video") {
			video, _ := cmd.Flags().GetString("video")
			demon.Video = &video
		}
		if cmd.Flags().Changed("level-id") {
			levelID, _ := cmd.Flags().GetInt64("level-id")
			demon.LevelID = &levelID
		}

		a, err := newApp("AddDemon", name)
		if err != nil {
			return err
		}
		defer a.Close()

		created, err := a.AddDemon(actor, demon)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Added %s\n", formatDemon(created))
		return nil
	},
}

var demonMoveCmd = &cobra.Command{
	Use:   "move ID POSITION",
	Short: "Move a demon to a new position",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		to, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("invalid position %q", args[1])
		}

		a, err := newApp("MoveDemon", strings.Join(args, " "))
		if err != nil {
			return err
		}
		defer a.Close()

		moved, err := a.MoveDemon(actor, id, to)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Moved %s\n", formatDemon(moved))
		return nil
	},
}

var demonPatchCmd = &cobra.Command{
	Use:   "patch ID",
	Short: "Update attributes of a demon",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch list.DemonPatch
		if cmd.Flags().Changed("name") {
			name, _ := cmd.Flags().GetString("name")
			patch.Name = &name
		}
		if cmd.Flags().Changed("position") {
			position, _ := cmd.Flags().GetInt("position")
			patch.Position = &position
		}
		if cmd.Flags().Changed("requirement") {
			requirement, _ := cmd.Flags().GetInt("requirement")
			patch.Requirement = &requirement
		}
		if cmd.Flags().Changed("video") {
			video, _ := cmd.Flags().GetString("video")
			patch.Video = &video
		}
		if cmd.Flags().Changed("thumbnail") {
			thumbnail, _ := cmd.Flags().GetString("thumbnail")
			patch.Thumbnail = &thumbnail
		}
		if cmd.Flags().Changed("publisher") {
			publisher, _ := cmd.Flags().GetString("publisher")
			patch.Publisher = &publisher
		}
		if cmd.Flags().Changed("verifier") {
			verifier, _ := cmd.Flags().GetString("verifier")
			patch.Verifier = &verifier
		}
		if cmd.Flags().Changed("level-id") {
			levelID, _ := cmd.Flags().GetInt64("level-id")
			patch.LevelID = &levelID
		}
		if cmd.Flags().Changed("difficulty") {
			difficultyName, _ := cmd.Flags().GetString("difficulty")
			if _, err := list.ParseDifficulty(difficultyName); err != nil {
				return err
			}
			patch.Difficulty = &difficultyName
		}

		a, err := newApp("PatchDemon", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		patched, err := a.PatchDemon(actor, id, patch)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Updated %s\n", formatDemon(patched))
		return nil
	},
}

var demonRemoveCmd = &cobra.Command{
	Use:   "remove ID",
	Short: "Take a demon off the ranked list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		a, err := newApp("RemoveDemon", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		removed, err := a.RemoveDemon(actor, id)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Removed %s from the list\n", removed.Name)
		return nil
	},
}

// record command
var recordCmd = &cobra.Command{
	Use:   "record",
	Short: "Manage records",
}

var recordSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Submit a record on a demon",
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}

		player, _ := cmd.Flags().GetString("player")
		demonID, _ := cmd.Flags().GetInt64("demon")
		progress, _ := cmd.Flags().GetInt("progress")

		submission := list.Submission{
			Player:   player,
			DemonID:  demonID,
			Progress: progress,
		}
		if cmd.Flags().Changed("video") {
			video, _ := cmd.Flags().GetString("video")
			submission.Video = &video
		}
		if cmd.Flags().Changed("raw-footage") {
			raw, _ := cmd.Flags().GetString("raw-footage")
			submission.RawFootage = &raw
		}
		if cmd.Flags().Changed("status") {
			statusName, _ := cmd.Flags().GetString("status")
			status, err := list.ParseRecordStatus(statusName)
			if err != nil {
				return err
			}
			submission.Status = status
		}
		if cmd.Flags().Changed("enjoyment") {
			enjoyment, _ := cmd.Flags().GetInt("enjoyment")
			submission.Enjoyment = &enjoyment
		}

		a, err := newApp("SubmitRecord", player)
		if err != nil {
			return err
		}
		defer a.Close()

		record, err := a.SubmitRecord(actor, submission)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Record #%d: %d%% by player %d on demon %d (%s)\n",
			record.ID, record.Progress, record.PlayerID, record.DemonID, record.Status)
		return nil
	},
}

var recordPatchCmd = &cobra.Command{
	Use:   "patch ID",
	Short: "Update attributes of a record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		actor, err := actorFlag(cmd)
		if err != nil {
			return err
		}
		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		var patch list.RecordPatch
		if cmd.Flags().Changed("progress") {
			progress, _ := cmd.Flags().GetInt("progress")
			patch.Progress = &progress
		}
		if cmd.Flags().Changed("video") {
			video, _ := cmd.Flags().GetString("video")
			patch.Video = &video
		}
		if cmd.Flags().Changed("raw-footage") {
			raw, _ := cmd.Flags().GetString("raw-footage")
			patch.RawFootage = &raw
		}
		if cmd.Flags().Changed("status") {
			statusName, _ := cmd.Flags().GetString("status")
			if _, err := list.ParseRecordStatus(statusName); err != nil {
				return err
			}
			patch.Status = &statusName
		}
		if cmd.Flags().Changed("player") {
			player, _ := cmd.Flags().GetString("player")
			patch.Player = &player
		}
		if cmd.Flags().Changed("demon") {
			demonID, _ := cmd.Flags().GetInt64("demon")
			patch.DemonID = &demonID
		}
		if cmd.Flags().Changed("enjoyment") {
			enjoyment, _ := cmd.Flags().GetInt("enjoyment")
			patch.Enjoyment = &enjoyment
		}

		a, err := newApp("PatchRecord", args[0])
		if err != nil {
			return err
		}
		defer a.Close()

		patched, err := a.PatchRecord(actor, id, patch)
		if err != nil {
			a.Fail()
			return err
		}

		fmt.Printf("Record #%d: %d%% (%s)\n", patched.ID, patched.Progress, patched.Status)
		return nil
	},
}

// player command
var playerCmd = &cobra.Command{
	Use:   "player",
	Short: "Manage players",
}

var playerBanCmd = &cobra.Command{
	Use:   "ban NAME",
	Short: "Ban a player from submitting records",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBanned(cmd, args[0], true)
	},
}

var playerUnbanCmd = &cobra.Command{
	Use:   "unban NAME",
	Short: "Lift a player's ban",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setBanned(cmd, args[0], false)
	},
}

func setBanned(cmd *cobra.Command, name string, banned bool) error {
	actor, err := actorFlag(cmd)
	if err != nil {
		return err
	}

	operation := "UnbanPlayer"
	if banned {
		operation = "BanPlayer"
	}
	a, err := newApp(operation, name)
	if err != nil {
		return err
	}
	defer a.Close()

	player, err := a.SetPlayerBanned(actor, name, banned)
	if err != nil {
		a.Fail()
		return err
	}

	if player.Banned {
		fmt.Printf("Banned player %s (id=%d)\n", player.Name, player.ID)
	} else {
		fmt.Printf("Unbanned player %s (id=%d)\n", player.Name, player.ID)
	}
	return nil
}

// list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "View the ranked list, optionally as it stood at an earlier time",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp("ViewList", "")
		if err != nil {
			return err
		}
		defer a.Close()

		if cmd.Flags().Changed("at") {
			atRaw, _ := cmd.Flags().GetString("at")
			at, err := time.Parse(time.RFC3339, atRaw)
			if err != nil {
				return fmt.Errorf("invalid --at timestamp (want RFC 3339): %w", err)
			}

			entries, err := a.ListAt(at.UTC())
			if err != nil {
				return err
			}

			if len(entries) == 0 {
				fmt.Println("The list was empty at that time.")
				return nil
			}
			for _, e := range entries {
				fmt.Printf("#%-3d %s (now #%d)\n", e.Position, e.Demon.Name, e.PositionNow)
			}
			return nil
		}

		demons, err := a.Demons()
		if err != nil {
			return err
		}

		if len(demons) == 0 {
			fmt.Println("The list is empty.")
			return nil
		}
		for _, d := range demons {
			fmt.Printf("%s  %.2f points\n", formatDemon(d), d.Score(100))
		}
		return nil
	},
}

// log command
var logCmd = &cobra.Command{
	Use:   "log KIND ID",
	Short: "View the audit log of an entity (kind is demon, record or player)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind := list.EntityKind(args[0])
		id, err := parseID(args[1])
		if err != nil {
			return err
		}

		a, err := newApp("ViewAuditLog", strings.Join(args, " "))
		if err != nil {
			return err
		}
		defer a.Close()

		addition, err := a.Addition(kind, id)
		var notFound list.NotFoundError
		if err != nil && !errors.As(err, &notFound) {
			return err
		}
		if addition != nil {
			fmt.Printf("%s  added by user %d\n", addition.Time.Format("2006-01-02 15:04:05"), addition.Actor)
		}

		var entries []*list.ModificationEntry
		if cmd.Flags().Changed("attr") {
			attr, _ := cmd.Flags().GetString("attr")
			entries, err = a.History(kind, id, attr)
		} else {
			entries, err = a.AuditLog(kind, id)
		}
		if err != nil {
			return err
		}

		if len(entries) == 0 && addition == nil {
			fmt.Println("No audit entries.")
			return nil
		}

		for _, e := range entries {
			fmt.Printf("%s  user %d", e.Time.Format("2006-01-02 15:04:05"), e.Actor)
			if len(e.Diffs) == 0 {
				fmt.Print("  (no attribute changes)")
			}
			for attr, old := range e.Diffs {
				fmt.Printf("  %s: was %s", attr, old)
			}
			fmt.Println()
		}
		return nil
	},
}

// history command
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View the operation journal",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		a, err := newApp("GetHistory", "")
		if err != nil {
			return err
		}
		defer a.Close()

		ops, err := a.Operations(limit)
		if err != nil {
			return err
		}

		if len(ops) == 0 {
			fmt.Println("No operations recorded.")
			return nil
		}

		for _, op := range ops {
			duration := ""
			if op.FinishedAt != nil {
				d := op.FinishedAt.Sub(op.StartedAt)
				duration = d.Truncate(time.Millisecond).String()
			}
			fmt.Printf("#%d  %-15s  %s  %-10s  %s\n",
				op.ID,
				op.Operation,
				op.StartedAt.Format("2006-01-02 15:04:05"),
				op.Status,
				duration,
			)
		}
		return nil
	},
}

func init() {
	// config subcommands
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configListCmd)
	configCmd.AddCommand(configKeygenCmd)
	configInitCmd.Flags().String("name", "main-list", "Name of the list")

	// demon subcommands
	demonCmd.AddCommand(demonAddCmd)
	demonCmd.AddCommand(demonMoveCmd)
	demonCmd.AddCommand(demonPatchCmd)
	demonCmd.AddCommand(demonRemoveCmd)

	demonAddCmd.Flags().Int64("by", 0, "ID of the acting user")
	demonAddCmd.Flags().String("name", "", "Name of the demon")
	demonAddCmd.Flags().Int("position", 0, "Position to insert at")
	demonAddCmd.Flags().Int("requirement", 100, "Minimal progress for list records (0-100)")
	demonAddCmd.Flags().String("video", "", "Verification video URL")
	demonAddCmd.Flags().String("thumbnail", "", "Thumbnail URL")
	demonAddCmd.Flags().String("publisher", "", "Name of the publishing player")
	demonAddCmd.Flags().String("verifier", "", "Name of the verifying player")
	demonAddCmd.Flags().Int64("level-id", 0, "In-game level ID")
	demonAddCmd.Flags().String("difficulty", "", "Difficulty tier")
	demonAddCmd.MarkFlagRequired("name")
	demonAddCmd.MarkFlagRequired("position")
	demonAddCmd.MarkFlagRequired("publisher")
	demonAddCmd.MarkFlagRequired("verifier")
	demonAddCmd.MarkFlagRequired("difficulty")

	demonMoveCmd.Flags().Int64("by", 0, "ID of the acting user")

	demonPatchCmd.Flags().Int64("by", 0, "ID of the acting user")
	demonPatchCmd.Flags().String("name", "", "New name")
	demonPatchCmd.Flags().Int("position", 0, "New position")
	demonPatchCmd.Flags().Int("requirement", 0, "New requirement (0-100)")
	demonPatchCmd.Flags().String("video", "", "New video URL (empty clears)")
	demonPatchCmd.Flags().String("thumbnail", "", "New thumbnail URL")
	demonPatchCmd.Flags().String("publisher", "", "Name of the new publishing player")
	demonPatchCmd.Flags().String("verifier", "", "Name of the new verifying player")
	demonPatchCmd.Flags().Int64("level-id", 0, "New in-game level ID")
	demonPatchCmd.Flags().String("difficulty", "", "New difficulty tier")

	demonRemoveCmd.Flags().Int64("by", 0, "ID of the acting user")

	// record subcommands
	recordCmd.AddCommand(recordSubmitCmd)
	recordCmd.AddCommand(recordPatchCmd)

	recordSubmitCmd.Flags().Int64("by", 0, "ID of the acting user")
	recordSubmitCmd.Flags().String("player", "", "Name of the player")
	recordSubmitCmd.Flags().Int64("demon", 0, "ID of the demon")
	recordSubmitCmd.Flags().Int("progress", 0, "Progress percentage (0-100)")
	recordSubmitCmd.Flags().String("video", "", "Video URL")
	recordSubmitCmd.Flags().String("raw-footage", "", "Raw footage URL")
	recordSubmitCmd.Flags().String("status", "", "Record status")
	recordSubmitCmd.Flags().Int("enjoyment", 0, "Enjoyment rating (0-10)")
	recordSubmitCmd.MarkFlagRequired("player")
	recordSubmitCmd.MarkFlagRequired("demon")
	recordSubmitCmd.MarkFlagRequired("progress")

	recordPatchCmd.Flags().Int64("by", 0, "ID of the acting user")
	recordPatchCmd.Flags().Int("progress", 0, "New progress percentage")
	recordPatchCmd.Flags().String("video", "", "New video URL")
	recordPatchCmd.Flags().String("raw-footage", "", "New raw footage URL")
	recordPatchCmd.Flags().String("status", "", "New record status")
	recordPatchCmd.Flags().String("player", "", "Name of the new record holder")
	recordPatchCmd.Flags().Int64("demon", 0, "ID of the new demon")
	recordPatchCmd.Flags().Int("enjoyment", 0, "New enjoyment rating")

	// player subcommands
	playerCmd.AddCommand(playerBanCmd)
	playerCmd.AddCommand(playerUnbanCmd)
	playerBanCmd.Flags().Int64("by", 0, "ID of the acting user")
	playerUnbanCmd.Flags().Int64("by", 0, "ID of the acting user")

	// db subcommands
	dbCmd.AddCommand(dbMigrateCmd)
	dbCmd.AddCommand(dbStatusCmd)

	// root commands
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(demonCmd)
	rootCmd.AddCommand(recordCmd)
	rootCmd.AddCommand(playerCmd)
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().String("at", "", "Reconstruct the list at this RFC 3339 timestamp")
	rootCmd.AddCommand(logCmd)
	logCmd.Flags().String("attr", "", "Restrict the log to one attribute")
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntP("limit", "n", 50, "Maximum number of operations to show")
	rootCmd.AddCommand(restoreCmd)
	restoreCmd.Flags().Bool("force", false, "Overwrite an existing local database")
}
