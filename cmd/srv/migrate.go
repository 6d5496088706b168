package main

import (
	"github.com/dawerha/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	defer s.close()

	if err := s.loadDatabase(); err != nil {
		return err
	}

	if err := s.migrateDB(); err != nil {
		return err
	}

	xcontext.Logger(s.ctx).Infof("Database migrated")
	return nil
}
