package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDate_JSON(t *testing.T) {
	v := Video{ID: 1, Title: "A", ReleaseDate: NewDate(time.Date(2020, 1, 1, 15, 4, 0, 0, time.Local)), TotalInventory: 1}
	b, err := json.Marshal(v)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1,"title":"A","release_date":"2020-01-01","total_inventory":1}`, string(b))

	var back Video
	require.NoError(t, json.Unmarshal(b, &back))
	require.Equal(t, "2020-01-01", back.ReleaseDate.String())
}

func TestDate_RejectsGarbage(t *testing.T) {
	var d Date
	require.Error(t, json.Unmarshal([]byte(`"01/02/2020"`), &d))
}

func TestRentalStatus(t *testing.T) {
	require.Equal(t, RentalOpen, Rental{}.Status())
	require.Equal(t, RentalClosed, Rental{CheckedIn: true}.Status())
}
