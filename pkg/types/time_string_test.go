package types

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	ts, err := NewTimeStringFromString("14:30:00")
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", ts.String())

	ts, err = NewTimeStringFromString("14:30")
	require.NoError(t, err)
	assert.Equal(t, "14:30:00", ts.String())

	_, err = NewTimeStringFromString("25:00")
	assert.Error(t, err)

	_, err = NewTimeStringFromString("не время")
	assert.Error(t, err)
}

func TestTimeString_Validate(t *testing.T) {
	assert.NoError(t, TimeString("09:00").Validate())
	assert.NoError(t, TimeString("09:00:30").Validate())
	assert.Error(t, TimeString("").Validate())
	assert.Error(t, TimeString("9 утра").Validate())
}

func TestTimeString_IsBeforeIsAfter(t *testing.T) {
	a := TimeString("09:00")
	b := TimeString("10:00")

	assert.True(t, a.IsBefore(b))
	assert.False(t, b.IsBefore(a))
	assert.False(t, a.IsBefore(a))

	assert.True(t, b.IsAfter(a))
	assert.False(t, a.IsAfter(b))
	assert.False(t, a.IsAfter(a))
}

func TestTimeString_AddMinutes(t *testing.T) {
	ts, err := TimeString("10:00").AddMinutes(60)
	require.NoError(t, err)
	assert.Equal(t, "11:00:00", ts.String())

	ts, err = TimeString("10:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, "11:15:00", ts.String())
}

func TestTimeString_MinutesUntil(t *testing.T) {
	mins, err := TimeString("10:00").MinutesUntil("11:30")
	require.NoError(t, err)
	assert.Equal(t, 90, mins)

	mins, err = TimeString("11:30").MinutesUntil("10:00")
	require.NoError(t, err)
	assert.Equal(t, -90, mins)
}

func TestTimeString_At(t *testing.T) {
	date := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("14:30").At(date)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), got)
}

func TestTimeString_Scan(t *testing.T) {
	var ts TimeString

	require.NoError(t, ts.Scan("15:00:00"))
	assert.Equal(t, "15:00:00", ts.String())

	require.NoError(t, ts.Scan([]byte("16:30:00")))
	assert.Equal(t, "16:30:00", ts.String())

	require.NoError(t, ts.Scan(time.Date(2025, 1, 1, 8, 15, 0, 0, time.UTC)))
	assert.Equal(t, "08:15:00", ts.String())

	require.NoError(t, ts.Scan(nil))
	assert.True(t, ts.IsZero())

	assert.Error(t, ts.Scan(42))
}

func TestTimeString_JSON(t *testing.T) {
	data, err := json.Marshal(TimeString("09:30"))
	require.NoError(t, err)
	assert.Equal(t, `"09:30:00"`, string(data))

	var ts TimeString
	require.NoError(t, json.Unmarshal([]byte(`"10:15"`), &ts))
	assert.Equal(t, "10:15:00", ts.String())

	assert.Error(t, json.Unmarshal([]byte(`"later"`), &ts))
}
