package handlers

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/structhr/structhr/internal/attendance"
	"github.com/structhr/structhr/internal/employee"
	"github.com/structhr/structhr/internal/eventstore"
	"github.com/structhr/structhr/internal/kv"
	"github.com/structhr/structhr/internal/storage"
	"github.com/structhr/structhr/internal/today"
)

// fixture wires the full service stack over an in-memory database, the way
// the daemon does at startup.
type fixture struct {
	today      *today.Service
	todayStore *today.Store
	employees  *employee.Service
	empRepo    *employee.Repository
	attendance *attendance.Service
	attRepo    *attendance.Repository
}

func jsonID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db, err := storage.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	events := eventstore.NewSQLiteStore(db)
	todayStore := today.NewStore(kv.NewSQLiteStore(db))
	todaySvc := today.NewService(todayStore, today.NewNotifier(), events, nil, nil)

	empRepo := employee.NewRepository(db)
	empSvc := employee.NewService(empRepo, events, nil)

	attRepo := attendance.NewRepository(db)
	attSvc := attendance.NewService(attRepo, empRepo, empSvc, events, nil)

	return &fixture{
		today:      todaySvc,
		todayStore: todayStore,
		employees:  empSvc,
		empRepo:    empRepo,
		attendance: attSvc,
		attRepo:    attRepo,
	}
}
