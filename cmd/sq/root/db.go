package root

import (
	"context"
	"io"

	"sidequest/internal/config"
	"sidequest/internal/engine"
	"sidequest/internal/logging"
	"sidequest/internal/storage"
)

type session struct {
	svc     *engine.Service
	gateway *storage.Gateway
	close   func()
}

// openService wires config, logging and storage into a loaded Service.
func openService(ctx context.Context, logOut io.Writer) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logger, err := logging.New(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	path, err := storage.ResolveDBPath(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	logger.Debug("database opened", "path", path)

	gw := storage.NewGateway(db)
	svc := engine.NewService(engine.NewTaskSet(), engine.NewLedger(nil),
		engine.WithGateway(gw),
		engine.WithLogger(logger),
	)
	if err := svc.Load(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &session{
		svc:     svc,
		gateway: gw,
		close:   func() { _ = db.Close() },
	}, nil
}
