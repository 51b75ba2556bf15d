package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/abhisek/disha/internal/catalog"
	"github.com/abhisek/disha/internal/config"
	"github.com/abhisek/disha/internal/counsel"
	"github.com/abhisek/disha/internal/llm"
	"github.com/abhisek/disha/internal/logger"
	"github.com/abhisek/disha/internal/screen"
	"github.com/abhisek/disha/internal/session"
	"github.com/abhisek/disha/internal/store"
	"github.com/abhisek/disha/internal/student"
)

// deps is everything a command needs, built from config and flags.
type deps struct {
	cfg      *config.Config
	log      zerolog.Logger
	store    *store.Store
	catalog  *catalog.Catalog
	students *student.Service
	counsel  *counsel.Service

	closers []io.Closer
}

// openDeps loads config, opens the log file and the database, and builds
// the services. The caller must Close the result.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfg := config.Load()
	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		cfg.LogLevel = lvl
	}
	if p, _ := cmd.Flags().GetString("catalog"); p != "" {
		cfg.CatalogPath = p
	}

	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}

	d := &deps{cfg: cfg}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = filepath.Join(filepath.Dir(dbPath), "disha.log")
	}
	f, err := logger.OpenFile(logPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Logging disabled:", err)
		d.log = zerolog.Nop()
	} else {
		d.closers = append(d.closers, f)
		d.log = logger.Setup(cfg.LogLevel, cfg.LogFormat, f)
	}

	st, err := store.Open(dbPath)
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("open database: %w", err)
	}
	d.store = st
	d.closers = append(d.closers, st)

	if cfg.CatalogPath != "" {
		d.catalog, err = catalog.Load(cfg.CatalogPath)
	} else {
		d.catalog, err = catalog.Default()
	}
	if err != nil {
		d.Close()
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	d.students = student.NewService(st.StudentRepo(), st.StateRepo(),
		student.WithBcryptCost(cfg.BcryptCost),
		student.WithLogger(d.log))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if cfg.SeedDemo {
		if _, err := d.students.EnsureDemoStudent(ctx); err != nil {
			d.log.Warn().Err(err).Msg("seed demo student")
		}
	}

	provider, err := llm.NewProviderFromEnv(ctx, st.EventRepo(), d.log)
	if err != nil {
		d.log.Info().Err(err).Msg("no LLM provider configured, using offline counsellor")
	}
	d.counsel = counsel.NewService(provider, counsel.DefaultConfig(), d.log)

	d.log.Debug().Str("db", dbPath).Bool("ai", d.counsel.Online()).Msg("dependencies ready")
	return d, nil
}

// env builds the screen environment for the TUI.
func (d *deps) env() *screen.Env {
	return &screen.Env{
		Catalog:     d.catalog,
		Students:    d.students,
		Attempts:    d.store.AttemptRepo(),
		Counsel:     d.counsel,
		Log:         d.log,
		RevealDelay: session.DefaultRevealDelay,
	}
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i].Close()
	}
}
