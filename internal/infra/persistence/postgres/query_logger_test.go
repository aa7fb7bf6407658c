package postgres

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	deliverycontext "faceauth/internal/delivery/context"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newBufferedQueryLogger(debug bool) (*queryLogger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return newQueryLogger(logger, debug), buf
}

func insertStatement() (string, int64) {
	return `INSERT INTO "users" ("email","password_hash") VALUES ($1,$2)`, 1
}

func TestQueryLogger_Failure(t *testing.T) {
	queryLog, buf := newBufferedQueryLogger(false)

	queryLog.Trace(context.Background(), time.Now(), insertStatement, errors.New("boom"))

	assert.Contains(t, buf.String(), "Query failed")
	assert.Contains(t, buf.String(), "boom")
	assert.Contains(t, buf.String(), "level=ERROR")
}

func TestQueryLogger_RecordNotFoundIsQuiet(t *testing.T) {
	queryLog, buf := newBufferedQueryLogger(false)

	queryLog.Trace(context.Background(), time.Now(), insertStatement, gorm.ErrRecordNotFound)

	assert.Empty(t, buf.String())
}

func TestQueryLogger_StatementsOnlyInDebug(t *testing.T) {
	quiet, quietBuf := newBufferedQueryLogger(false)
	quiet.Trace(context.Background(), time.Now(), insertStatement, nil)
	assert.Empty(t, quietBuf.String())

	verbose, verboseBuf := newBufferedQueryLogger(true)
	verbose.Trace(context.Background(), time.Now(), insertStatement, nil)
	assert.Contains(t, verboseBuf.String(), "INSERT INTO")
}

func TestQueryLogger_SlowQuery(t *testing.T) {
	queryLog, buf := newBufferedQueryLogger(false)

	queryLog.Trace(context.Background(), time.Now().Add(-time.Second), insertStatement, nil)

	assert.Contains(t, buf.String(), "Slow query")
}

func TestQueryLogger_UsesRequestLogger(t *testing.T) {
	queryLog, _ := newBufferedQueryLogger(false)

	reqBuf := &bytes.Buffer{}
	reqLogger := slog.New(slog.NewTextHandler(reqBuf, nil)).With(slog.String("request_id", "req-42"))
	ctx := deliverycontext.WithLogger(context.Background(), reqLogger)

	queryLog.Trace(ctx, time.Now(), insertStatement, errors.New("boom"))

	assert.Contains(t, reqBuf.String(), "request_id=req-42")
}

func TestQueryLogger_Silent(t *testing.T) {
	queryLog, buf := newBufferedQueryLogger(true)

	queryLog.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), insertStatement, errors.New("boom"))

	assert.Empty(t, buf.String())
}

func TestQueryLogger_ParamsFilterDropsValues(t *testing.T) {
	queryLog, _ := newBufferedQueryLogger(true)

	sql, params := queryLog.ParamsFilter(context.Background(), "SELECT 1 WHERE email = $1", "a@x.com")

	assert.Equal(t, "SELECT 1 WHERE email = $1", sql)
	assert.Empty(t, params)
}

func TestQueryLogger_Printf(t *testing.T) {
	queryLog, buf := newBufferedQueryLogger(false)

	queryLog.Info(context.Background(), "migrated %d tables", 1)
	assert.Empty(t, buf.String())

	queryLog.Warn(context.Background(), "pool at %d%%", 90)
	assert.Contains(t, buf.String(), "pool at 90%")
}
