package main

import (
	"github.com/termwatch/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startMigrate(*cli.Context) error {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()

	return nil
}
