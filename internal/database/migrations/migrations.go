package migrations

import (
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"go.uber.org/zap"
)

const dir = "sql"

//go:embed sql/*.sql
var files embed.FS

func setup() error {
	goose.SetBaseFS(files)
	goose.SetLogger(&gooseLogger{log: zap.S().With("section", "goose")})
	return goose.SetDialect("postgres")
}

func Up(db *sql.DB) (err error) {
	if err = setup(); err != nil {
		return
	}
	if err = goose.Up(db, dir); err != nil {
		err = fmt.Errorf("failed to apply migrations: %w", err)
	}
	return
}

func Down(db *sql.DB) (err error) {
	if err = setup(); err != nil {
		return
	}
	if err = goose.Down(db, dir); err != nil {
		err = fmt.Errorf("failed to roll back migration: %w", err)
	}
	return
}

func Status(db *sql.DB) (err error) {
	if err = setup(); err != nil {
		return
	}
	return goose.Status(db, dir)
}

// gooseLogger routes goose output to zap.
type gooseLogger struct {
	log *zap.SugaredLogger
}

func (l *gooseLogger) Fatal(v ...interface{})                 { l.log.Fatal(v...) }
func (l *gooseLogger) Fatalf(format string, v ...interface{}) { l.log.Fatalf(format, v...) }
func (l *gooseLogger) Print(v ...interface{})                 { l.log.Info(v...) }
func (l *gooseLogger) Println(v ...interface{})               { l.log.Info(v...) }
func (l *gooseLogger) Printf(format string, v ...interface{}) { l.log.Infof(format, v...) }
