package system

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Tholomir/ChronoRex/internal/cli"
	"github.com/Tholomir/ChronoRex/internal/config"
	"github.com/Tholomir/ChronoRex/internal/storage"
	"github.com/Tholomir/ChronoRex/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized chronorex storage at: %s\n", ctx.Store.GetConfigPath())

	if err := writeDefaultConfig(ctx); err != nil {
		return err
	}

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	return nil
}

// reset deletes an existing SQLite database. PostgreSQL databases are never dropped.
func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return errors.New("--force is only supported for SQLite databases")
	}

	dbPath := ctx.Store.GetConfigPath()
	if c.Source != "" {
		absDbPath, err := filepath.Abs(dbPath)
		if err == nil {
			dbPath = absDbPath
		}
		absSource, err := filepath.Abs(config.ExpandPath(c.Source))
		if err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		// Close first to release the file
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func writeDefaultConfig(ctx *cli.Context) error {
	if ctx.ConfigFile == "" || ctx.Config == nil {
		return nil
	}
	path := config.ExpandPath(ctx.ConfigFile)
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to access config file: %w", err)
	}
	if err := config.Save(path, ctx.Config); err != nil {
		return err
	}
	fmt.Printf("Wrote default config to: %s\n", path)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, sourcePath string) error {
	sourceStore, err := cli.OpenStore(cli.Target{Value: sourcePath, Source: cli.SourceFlag})
	if err != nil {
		return err
	}
	if err := sourceStore.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer sourceStore.Close()

	return copyDiary(sourceStore, ctx.Store)
}

// copyDiary copies every record from src into dst. Settings, check-ins and reviews are upserted;
// symptom and activity IDs must not already exist in dst.
func copyDiary(src, dst storage.Provider) error {
	fmt.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	snap, err := storage.LoadSnapshot(src)
	if err != nil {
		return fmt.Errorf("failed to read source: %w", err)
	}

	fmt.Println("  Migrating check-ins...")
	for _, day := range snap.Days {
		if err := dst.SaveDay(day); err != nil {
			return fmt.Errorf("failed to save check-in %s: %w", day.Date, err)
		}
	}
	fmt.Printf("    Migrated %d check-ins\n", len(snap.Days))

	fmt.Println("  Migrating symptoms...")
	for _, s := range snap.Symptoms {
		if err := dst.AddSymptom(s); err != nil {
			return fmt.Errorf("failed to add symptom %s: %w", s.ID, err)
		}
	}
	fmt.Printf("    Migrated %d symptoms\n", len(snap.Symptoms))

	fmt.Println("  Migrating activities...")
	for _, a := range snap.Activities {
		if err := dst.AddActivity(a); err != nil {
			return fmt.Errorf("failed to add activity %s: %w", a.ID, err)
		}
	}
	fmt.Printf("    Migrated %d activities\n", len(snap.Activities))

	fmt.Println("  Migrating weekly reviews...")
	reviews, err := src.GetAllWeeklyReviews()
	if err != nil {
		return fmt.Errorf("failed to get weekly reviews from source: %w", err)
	}
	for _, r := range reviews {
		if err := dst.SaveWeeklyReview(r); err != nil {
			return fmt.Errorf("failed to save weekly review %s: %w", r.ID, err)
		}
	}
	fmt.Printf("    Migrated %d weekly reviews\n", len(reviews))

	return nil
}
