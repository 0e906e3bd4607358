package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"appshell/internal/logger"
)

func tempStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "app_config.json"), logger.Nop{})
}

func TestNewStore_WritesDefaultsWhenFileMissing(t *testing.T) {
	store := tempStore(t)

	_, err := os.Stat(store.Path())
	require.NoError(t, err, "defaults should be persisted on first load")

	assert.Equal(t, "AppShell", store.GetString("app.name", ""))
	assert.Equal(t, 12, store.GetInt("ui.font_size", 0))
	assert.Equal(t, "light", store.GetString("ui.theme", ""))
	assert.True(t, store.GetBool("app.debug", false))
}

func TestStore_GetMissingReturnsDefault(t *testing.T) {
	store := tempStore(t)

	assert.Equal(t, "fallback", store.Get("no.such.key", "fallback"))
	assert.Equal(t, 7, store.GetInt("no.such.key", 7))
}

func TestStore_SetCreatesIntermediateLevels(t *testing.T) {
	store := tempStore(t)

	require.True(t, store.Set("network.proxy.host", "localhost"))
	assert.Equal(t, "localhost", store.GetString("network.proxy.host", ""))

	all := store.All()
	network, ok := all["network"].(map[string]interface{})
	require.True(t, ok)
	_, ok = network["proxy"].(map[string]interface{})
	assert.True(t, ok)
}

func TestStore_SaveAndReload(t *testing.T) {
	store := tempStore(t)

	require.True(t, store.Set("ui.theme", "dark"))
	require.True(t, store.Set("ui.window_size.width", 1024))
	require.True(t, store.Save())

	reloaded := NewStore(store.Path(), logger.Nop{})
	assert.Equal(t, "dark", reloaded.GetString("ui.theme", ""))
	assert.Equal(t, 1024, reloaded.GetInt("ui.window_size.width", 0))
}

func TestStore_Remove(t *testing.T) {
	store := tempStore(t)

	require.True(t, store.Set("scratch.value", 1))
	require.True(t, store.Remove("scratch.value"))
	assert.Equal(t, "gone", store.Get("scratch.value", "gone"))
	assert.False(t, store.Remove("scratch.value"))
}

func TestStore_CorruptFileRecreatesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore(path, logger.Nop{})
	assert.Equal(t, "AppShell", store.GetString("app.name", ""))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "AppShell", "corrupt file should be rewritten with defaults")
}

func TestStore_YAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app_config.yaml")
	store := NewStore(path, logger.Nop{})

	require.True(t, store.Set("ui.theme", "dark"))
	require.True(t, store.Save())

	reloaded := NewStore(path, logger.Nop{})
	assert.Equal(t, "dark", reloaded.GetString("ui.theme", ""))
}

func TestWatcher_ReloadsOnFileChange(t *testing.T) {
	store := tempStore(t)

	watcher, err := NewWatcher(store, logger.Nop{}, WithDebounce(50*time.Millisecond))
	require.NoError(t, err)

	reloaded := make(chan *Store, 1)
	watcher.OnReload(func(s *Store) {
		select {
		case reloaded <- s:
		default:
		}
	})

	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	edited := NewStore(store.Path(), logger.Nop{})
	require.True(t, edited.Set("ui.theme", "dark"))
	require.True(t, edited.Save())

	select {
	case <-reloaded:
		assert.Equal(t, "dark", store.GetString("ui.theme", ""))
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the file change")
	}
}

func TestWatcher_IgnoresOwnSave(t *testing.T) {
	store := tempStore(t)

	watcher, err := NewWatcher(store, logger.Nop{}, WithDebounce(30*time.Millisecond))
	require.NoError(t, err)

	reloaded := make(chan struct{}, 1)
	watcher.OnReload(func(*Store) {
		select {
		case reloaded <- struct{}{}:
		default:
		}
	})

	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	require.True(t, store.Set("ui.theme", "dark"))
	require.True(t, store.Save())

	select {
	case <-reloaded:
		t.Fatal("a save through the store itself must not report a reload")
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcher_StartTwiceFails(t *testing.T) {
	store := tempStore(t)

	watcher, err := NewWatcher(store, logger.Nop{})
	require.NoError(t, err)
	require.NoError(t, watcher.Start())
	defer watcher.Stop()

	assert.Error(t, watcher.Start())
}
