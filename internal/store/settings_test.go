package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omidnw/room-organizer/pkg/types"
)

func TestSettings(t *testing.T) {
	s := newTestStore(t)
	settings := NewSettings(s)

	t.Run("unset key returns ErrNotFound", func(t *testing.T) {
		_, err := settings.Get(types.SettingTimezone)
		assert.ErrorIs(t, err, types.ErrNotFound)
	})

	t.Run("set then get round-trips", func(t *testing.T) {
		require.NoError(t, settings.Set(types.SettingTimezone, "Asia/Tehran"))
		value, err := settings.Get(types.SettingTimezone)
		require.NoError(t, err)
		assert.Equal(t, "Asia/Tehran", value)
	})

	t.Run("set overwrites an existing key", func(t *testing.T) {
		require.NoError(t, settings.Set(types.SettingTimezone, "UTC"))
		value, err := settings.Get(types.SettingTimezone)
		require.NoError(t, err)
		assert.Equal(t, "UTC", value)
	})

	t.Run("all lists entries ordered by key", func(t *testing.T) {
		require.NoError(t, settings.Set(types.SettingCurrency, "USD"))
		entries, err := settings.All()
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, types.SettingCurrency, entries[0].Key)
		assert.Equal(t, types.SettingTimezone, entries[1].Key)
	})

	t.Run("empty key is rejected", func(t *testing.T) {
		assert.ErrorIs(t, settings.Set("", "x"), types.ErrInvalidID)
		_, err := settings.Get("")
		assert.ErrorIs(t, err, types.ErrInvalidID)
	})
}

func TestRecords(t *testing.T) {
	s := newTestStore(t)
	records := NewRecords(s)

	version, err := records.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 0, version)

	require.NoError(t, records.Record(1, time.Now()))
	require.NoError(t, records.Record(2, time.Now()))

	version, err = records.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 2, version)

	all, err := records.All()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, 1, all[0].Version)

	// Removing the maximum lowers the current version.
	require.NoError(t, records.Remove(2))
	version, err = records.CurrentVersion()
	require.NoError(t, err)
	assert.Equal(t, 1, version)
}
