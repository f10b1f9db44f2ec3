package rentalrepo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCountOpenSQL(t *testing.T) {
	q, args, err := countOpenSQL("video_id", 3)
	require.NoError(t, err)
	require.Contains(t, q, `SELECT COUNT(*) FROM "rentals"`)
	require.Contains(t, q, `"video_id" = $1`)
	require.Contains(t, q, `"checked_in" IS FALSE`)
	require.Equal(t, []any{int64(3)}, args)
}

func TestOpenByCustomerSQL_JoinsThroughRentals(t *testing.T) {
	q, args, err := openByCustomerSQL(1)
	require.NoError(t, err)
	require.Contains(t, q, `FROM "rentals" AS "r"`)
	require.Contains(t, q, `INNER JOIN "videos" AS "v" ON ("v"."id" = "r"."video_id")`)
	require.Contains(t, q, `"r"."customer_id" = $1`)
	require.Equal(t, []any{int64(1)}, args)
}

func TestRentersByVideoSQL(t *testing.T) {
	q, args, err := rentersByVideoSQL(5)
	require.NoError(t, err)
	require.Contains(t, q, `INNER JOIN "customers" AS "c" ON ("c"."id" = "r"."customer_id")`)
	require.Contains(t, q, `"r"."video_id" = $1`)
	require.Contains(t, q, `"r"."checked_in" IS FALSE`)
	require.Equal(t, []any{int64(5)}, args)
}

func TestFindByKeySQL(t *testing.T) {
	q, args, err := findByKeySQL(1, 2)
	require.NoError(t, err)
	require.Contains(t, q, "LIMIT")
	require.Contains(t, q, "FOR UPDATE")
	require.Equal(t, []any{int64(1), int64(2)}, args[:2])
}
