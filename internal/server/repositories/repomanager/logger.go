package repomanager

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/logging"
	"github.com/pressly/goose/v3"
)

// gooseLogger routes goose output into the structured logger.
type gooseLogger struct {
	l logging.Logger
}

func (g gooseLogger) Printf(format string, v ...any) {
	g.l.Info(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (g gooseLogger) Fatalf(format string, v ...any) {
	g.l.Error(context.Background(), strings.TrimSpace(fmt.Sprintf(format, v...)))
	os.Exit(1)
}

// SetMigrationLogger makes goose log through l. goose keeps a single
// package-wide logger, so this affects every manager.
func SetMigrationLogger(l logging.Logger) {
	goose.SetLogger(gooseLogger{l: l.With("module", "migrations")})
}
