package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
)

func TestCode(t *testing.T) {
	require.Equal(t, ErrNotFound, Code(NotFound("Customer", 9)))
	require.Equal(t, ErrUnavailable, Code(fmt.Errorf("checkout: %w", Unavailable("no copies left"))))
	require.Equal(t, ErrCode(""), Code(errors.New("boom")))
	require.Equal(t, ErrCode(""), Code(nil))
}

func TestNotFoundMessage(t *testing.T) {
	require.EqualError(t, NotFound("Video", 999999), "Video 999999 was not found")
}

func TestFromDB(t *testing.T) {
	dataErr := &pgconn.PgError{Code: pgerrcode.InvalidDatetimeFormat}
	err := FromDB(fmt.Errorf("insert video: %w", dataErr))
	require.Equal(t, ErrPersistence, Code(err))
	require.ErrorIs(t, err, dataErr)

	checkErr := &pgconn.PgError{Code: pgerrcode.CheckViolation}
	require.Equal(t, ErrPersistence, Code(FromDB(checkErr)))

	other := errors.New("connection reset")
	require.Same(t, other, FromDB(other))
	require.NoError(t, FromDB(nil))
}

func TestLookup(t *testing.T) {
	err := Lookup(fmt.Errorf("get customer 3: %w", pgx.ErrNoRows), "Customer", 3)
	require.Equal(t, ErrNotFound, Code(err))
	require.EqualError(t, err, "Customer 3 was not found")

	require.NoError(t, Lookup(nil, "Customer", 3))
	require.Equal(t, ErrCode(""), Code(Lookup(errors.New("timeout"), "Customer", 3)))
}
