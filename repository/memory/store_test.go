package memory

import (
	"context"
	"errors"
	"testing"

	"videostore/model"
	rentalrepo "videostore/repository/rental"
	"videostore/util/database"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
)

func TestWithTx_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := New()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(q database.DBTX) error {
		c := &model.Customer{Name: "Ada", Phone: "555", PostalCode: "12345"}
		require.NoError(t, s.Customers().Insert(ctx, q, c))
		return boom
	})
	require.ErrorIs(t, err, boom)

	require.NoError(t, s.WithTx(ctx, func(q database.DBTX) error {
		all, err := s.Customers().List(ctx, q)
		require.NoError(t, err)
		require.Empty(t, all)

		c := &model.Customer{Name: "Ada"}
		require.NoError(t, s.Customers().Insert(ctx, q, c))
		require.Equal(t, int64(1), c.ID, "sequence is rolled back too")
		return nil
	}))
}

func TestWithTx_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := New().WithTx(ctx, func(database.DBTX) error { called = true; return nil })
	require.ErrorIs(t, err, context.Canceled)
	require.False(t, called)
}

func TestRentals_LifecycleAndProjections(t *testing.T) {
	ctx := context.Background()
	s := New()

	require.NoError(t, s.WithTx(ctx, func(q database.DBTX) error {
		c := &model.Customer{Name: "Ada", Phone: "555", PostalCode: "12345"}
		require.NoError(t, s.Customers().Insert(ctx, q, c))
		v := &model.Video{Title: "Movie", TotalInventory: 2}
		require.NoError(t, s.Videos().Insert(ctx, q, v))

		r1 := &model.Rental{CustomerID: c.ID, VideoID: v.ID}
		require.NoError(t, s.Rentals().Insert(ctx, q, r1))
		r2 := &model.Rental{CustomerID: c.ID, VideoID: v.ID}
		require.NoError(t, s.Rentals().Insert(ctx, q, r2))

		n, _ := s.Rentals().CountOpenByVideo(ctx, q, v.ID)
		require.Equal(t, int64(2), n)

		got, err := s.Rentals().FindByKeyForUpdate(ctx, q, c.ID, v.ID)
		require.NoError(t, err)
		require.Equal(t, r1.ID, got.ID, "oldest open rental first")

		require.NoError(t, s.Rentals().MarkCheckedIn(ctx, q, r1.ID))
		require.ErrorIs(t, s.Rentals().MarkCheckedIn(ctx, q, r1.ID), rentalrepo.ErrNotOpen)

		held, _ := s.Rentals().ListOpenByCustomer(ctx, q, c.ID)
		require.Len(t, held, 1)
		require.Equal(t, "Movie", held[0].Title)

		renters, _ := s.Rentals().ListRentersByVideo(ctx, q, v.ID)
		require.Len(t, renters, 1)
		require.Equal(t, "Ada", renters[0].Name)
		return nil
	}))
}

func TestMissingRowsReportNoRows(t *testing.T) {
	ctx := context.Background()
	s := New()
	require.NoError(t, s.WithTx(ctx, func(q database.DBTX) error {
		_, err := s.Customers().Get(ctx, q, 999999)
		require.ErrorIs(t, err, pgx.ErrNoRows)
		_, err = s.Videos().Get(ctx, q, 1)
		require.ErrorIs(t, err, pgx.ErrNoRows)
		require.ErrorIs(t, s.Videos().Delete(ctx, q, 1), pgx.ErrNoRows)
		_, err = s.Rentals().FindByKeyForUpdate(ctx, q, 1, 1)
		require.ErrorIs(t, err, pgx.ErrNoRows)
		return nil
	}))
}
