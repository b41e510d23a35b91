package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/itrgo/internal/app"
	"github.com/rgehrsitz/itrgo/internal/calculation"
	"github.com/rgehrsitz/itrgo/internal/config"
	"github.com/rgehrsitz/itrgo/internal/domain"
	"github.com/rgehrsitz/itrgo/internal/logging"
	"github.com/rgehrsitz/itrgo/internal/profile"
)

// cliApp carries the settings and logger shared by one command run
type cliApp struct {
	settings *config.Settings
	log      *zap.Logger
	debug    bool
}

func newApp(cmd *cobra.Command) (*cliApp, error) {
	configFile, _ := cmd.Flags().GetString("config")
	debugMode, _ := cmd.Flags().GetBool("debug")

	settings, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}
	if debugMode {
		settings.Log.Level = "debug"
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}

	log, err := logging.New(settings.Log)
	if err != nil {
		return nil, err
	}
	if settings.ConfigFile != "" {
		log.Debug("settings loaded", zap.String("file", settings.ConfigFile))
	}

	return &cliApp{settings: settings, log: log, debug: debugMode}, nil
}

func (a *cliApp) sync() {
	_ = a.log.Sync()
}

// calcEngine only traces calculations when --debug is set
func (a *cliApp) calcEngine() *calculation.Engine {
	engine := calculation.NewEngine()
	if a.debug {
		engine.SetLogger(a.log.Sugar())
	}
	return engine
}

func (a *cliApp) openProfiles(ctx context.Context) (*profile.Service, error) {
	return app.OpenProfiles(ctx, a.settings, a.log)
}

func (a *cliApp) loadProfile(ctx context.Context) (*domain.Profile, error) {
	svc, err := a.openProfiles(ctx)
	if err != nil {
		return nil, err
	}
	defer svc.Close()
	return svc.Load(ctx)
}
