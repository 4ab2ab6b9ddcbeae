package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/vietanh2810/student-report-api/internal/api"
	"github.com/vietanh2810/student-report-api/internal/config"
	"github.com/vietanh2810/student-report-api/internal/logger"
	"github.com/vietanh2810/student-report-api/internal/repository/dao"
)

func Start() error {
	conf, err := config.Load("./cmd/app/config.yml")
	if err != nil {
		return fmt.Errorf("failed to initialize config -> %w", err)
	}

	if err = logger.Init(conf.API.Environment); err != nil {
		return fmt.Errorf("failed to initialize logger -> %w", err)
	}

	roster, err := dao.LoadRoster(conf.Roster.Path)
	if err != nil {
		return fmt.Errorf("failed to load roster -> %w", err)
	}
	zap.L().Info("roster loaded",
		zap.String("path", conf.Roster.Path),
		zap.Int("students", len(roster)),
	)

	s, err := api.NewServer(conf, roster)
	if err != nil {
		return fmt.Errorf("failed to initialize server -> %w", err)
	}

	addr := ":" + s.Config.API.Port
	zap.L().Info(fmt.Sprintf("starting server at %v", addr))
	if err = s.Router.Run(addr); err != nil {
		return fmt.Errorf("failed to start the server -> %w", err)
	}

	return nil
}
