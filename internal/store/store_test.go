package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/physical-quantities/units/pkg/registry"
	"github.com/physical-quantities/units/pkg/unit"
)

var columns = []string{"name", "expression", "unit_offset", "comment", "url", "prefix", "created_at"}

func newMockStore(t *testing.T) (*Store, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s := New(db, nil)
	s.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	return s, mock
}

func TestMigrate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS custom_units")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO custom_units").
		WithArgs("ft", "0.3048*m", 0.0, "Foot", "", "engineering", time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := s.Save(context.Background(), Record{Name: "ft", Expression: "0.3048*m", Comment: "Foot", Prefix: registry.Engineering})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_DefaultsPrefixToNone(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO custom_units").
		WithArgs("ft", "0.3048*m", 0.0, "", "", "none", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, s.Save(context.Background(), Record{Name: "ft", Expression: "0.3048*m"}))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSave_Duplicate(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("INSERT INTO custom_units").
		WillReturnError(sqlite3.Error{Code: sqlite3.ErrConstraint, ExtendedCode: sqlite3.ErrConstraintPrimaryKey})

	err := s.Save(context.Background(), Record{Name: "ft", Expression: "0.3048*m"})
	assert.ErrorIs(t, err, ErrExists)
	assert.Contains(t, err.Error(), `"ft"`)
}

func TestSave_OtherErrorsPassThrough(t *testing.T) {
	s, mock := newMockStore(t)
	boom := errors.New("disk full")
	mock.ExpectExec("INSERT INTO custom_units").WillReturnError(boom)

	err := s.Save(context.Background(), Record{Name: "ft", Expression: "0.3048*m"})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrExists)
}

func TestGet(t *testing.T) {
	s, mock := newMockStore(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mock.ExpectQuery("SELECT (.+) FROM custom_units WHERE name = ?").
		WithArgs("degC").
		WillReturnRows(sqlmock.NewRows(columns).AddRow("degC", "K", 273.15, "Celsius", "", "none", created))

	rec, err := s.Get(context.Background(), "degC")
	require.NoError(t, err)
	assert.Equal(t, Record{Name: "degC", Expression: "K", Offset: 273.15, Comment: "Celsius", Prefix: registry.PrefixNone, CreatedAt: created}, rec)
}

func TestGet_NotFound(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM custom_units WHERE name = ?").
		WithArgs("nope").
		WillReturnError(sql.ErrNoRows)

	_, err := s.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAll(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM custom_units ORDER BY created_at, name").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ft", "0.3048*m", 0.0, "", "", "none", now).
			AddRow("yd", "3*ft", 0.0, "Yard", "", "full", now))

	records, err := s.All(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "yd", records[1].Name)
	assert.Equal(t, registry.Full, records[1].Prefix)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDelete(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectExec("DELETE FROM custom_units WHERE name = ?").
		WithArgs("ft").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM custom_units WHERE name = ?").
		WithArgs("ft").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, s.Delete(context.Background(), "ft"))
	assert.ErrorIs(t, s.Delete(context.Background(), "ft"), ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoadInto(t *testing.T) {
	s, mock := newMockStore(t)
	now := time.Now()
	mock.ExpectQuery("SELECT (.+) FROM custom_units").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ft", "0.3048*m", 0.0, "Foot", "", "none", now).
			AddRow("yd", "3*ft", 0.0, "", "", "engineering", now).
			AddRow("degC", "K", 273.15, "", "", "none", now))

	reg, err := registry.NewBootstrapped()
	require.NoError(t, err)

	n, err := s.LoadInto(context.Background(), reg)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	kyd, ok := reg.Lookup("kyd")
	require.True(t, ok)
	assert.InEpsilon(t, 3*0.3048*1000, kyd.Factor, 1e-12)

	ft, _ := reg.Lookup("ft")
	assert.Equal(t, "Foot", ft.Meta.Comment)

	degC, _ := reg.Lookup("degC")
	assert.Equal(t, 273.15, degC.Offset)
}

func TestLoadInto_StopsAtInvalidDefinition(t *testing.T) {
	s, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM custom_units").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("ft", "0.3048*m", 0.0, "", "", "none", time.Now()).
			AddRow("bad", "furlong", 0.0, "", "", "none", time.Now()))

	reg, err := registry.NewBootstrapped()
	require.NoError(t, err)

	n, err := s.LoadInto(context.Background(), reg)
	assert.ErrorIs(t, err, unit.ErrUnknownUnit)
	assert.Equal(t, 1, n)
}

func TestSQLite_RoundTrip(t *testing.T) {
	s, err := Open(":memory:", nil)
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))
	require.NoError(t, s.Migrate(ctx), "migrate must be repeatable")

	require.NoError(t, s.Save(ctx, Record{Name: "ft", Expression: "0.3048*m", Comment: "Foot"}))
	require.NoError(t, s.Save(ctx, Record{Name: "yd", Expression: "3*ft", Prefix: registry.Engineering}))
	assert.ErrorIs(t, s.Save(ctx, Record{Name: "ft", Expression: "m"}), ErrExists)

	rec, err := s.Get(ctx, "yd")
	require.NoError(t, err)
	assert.Equal(t, "3*ft", rec.Expression)
	assert.Equal(t, registry.Engineering, rec.Prefix)

	all, err := s.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, s.Delete(ctx, "yd"))
	_, err = s.Get(ctx, "yd")
	assert.ErrorIs(t, err, ErrNotFound)
}
