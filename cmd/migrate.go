package main

import (
	"errors"

	"github.com/urfave/cli/v2"

	"github.com/sheetinvoicer/pkg/logger"
)

func migrateCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "apply database migrations",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return errors.New("database url is required, set --database-url or DATABASE_URL")
			}
			log := logger.New(cfg.Log)

			db, err := openStore(c.Context, cfg, log)
			if err != nil {
				return err
			}
			log.Info("migrations applied")
			return db.Close()
		},
	}
}
