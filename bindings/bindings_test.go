package bindings_test

import (
	"context"
	"testing"

	"github.com/plus3/welltris/bindings"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/store"
	"github.com/stretchr/testify/assert"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap/zaptest"
)

func TestDefault(t *testing.T) {
	table := bindings.Default()
	assert.NoError(t, table.Validate())

	tests := map[bindings.Action]string{
		bindings.Left:       "ArrowLeft",
		bindings.Forward:    "ArrowUp",
		bindings.RotateYNeg: "KeyQ",
		bindings.RotateXPos: "KeyD",
		bindings.RotateZNeg: "KeyW",
		bindings.FastDrop:   "KeyF",
		bindings.DropPiece:  "Space",
		bindings.Cancel:     "Escape",
	}
	for action, key := range tests {
		assert.Equal(t, key, table.Key(action), string(action))
		got, ok := table.ActionFor(key)
		assert.True(t, ok)
		assert.Equal(t, action, got)
	}
	assert.Len(t, bindings.Actions(), 14)
}

func TestRebind(t *testing.T) {
	t.Run("assigns a free key", func(t *testing.T) {
		table := bindings.Default()
		assert.NoError(t, table.Rebind(bindings.DropPiece, "KeyX"))
		assert.Equal(t, "KeyX", table.Key(bindings.DropPiece))
		_, ok := table.ActionFor("Space")
		assert.False(t, ok)
	})

	t.Run("rejects reserved keys", func(t *testing.T) {
		table := bindings.Default()
		for _, key := range []string{"ArrowUp", "ArrowDown", "Enter"} {
			assert.ErrorIs(t, table.Rebind(bindings.Left, key), bindings.ErrReservedKey)
		}
		assert.Equal(t, "ArrowLeft", table.Key(bindings.Left))
	})

	t.Run("rejects keys in use", func(t *testing.T) {
		table := bindings.Default()
		err := table.Rebind(bindings.Left, "KeyQ")
		assert.ErrorIs(t, err, bindings.ErrKeyInUse)
		assert.Contains(t, err.Error(), "Rotate Y Negative")
		assert.Equal(t, "ArrowLeft", table.Key(bindings.Left))
	})

	t.Run("rebinding to the current key is a no-op", func(t *testing.T) {
		table := bindings.Default()
		assert.NoError(t, table.Rebind(bindings.Forward, "ArrowUp"))
	})

	t.Run("delete and backspace unbind", func(t *testing.T) {
		table := bindings.Default()
		assert.NoError(t, table.Rebind(bindings.FastDrop, "Delete"))
		assert.NoError(t, table.Rebind(bindings.Cancel, "Backspace"))
		assert.Equal(t, "", table.Key(bindings.FastDrop))
		assert.Equal(t, "", table.Key(bindings.Cancel))
		_, ok := table.ActionFor("")
		assert.False(t, ok)

		assert.NoError(t, table.Rebind(bindings.Left, "KeyF"))
	})

	t.Run("unknown action", func(t *testing.T) {
		table := bindings.Default()
		assert.ErrorIs(t, table.Rebind("Jump", "KeyJ"), bindings.ErrUnknownAction)
	})

	t.Run("clone is independent", func(t *testing.T) {
		table := bindings.Default()
		clone := table.Clone()
		assert.NoError(t, clone.Rebind(bindings.Left, "KeyJ"))
		assert.Equal(t, "ArrowLeft", table.Key(bindings.Left))
	})
}

func TestEngineAction(t *testing.T) {
	a, ok := bindings.EngineAction(bindings.FastDrop, false)
	assert.True(t, ok)
	assert.Equal(t, engine.ActionFastDropOn, a)

	a, ok = bindings.EngineAction(bindings.FastDrop, true)
	assert.True(t, ok)
	assert.Equal(t, engine.ActionFastDropOff, a)

	a, ok = bindings.EngineAction(bindings.DropPiece, false)
	assert.True(t, ok)
	assert.Equal(t, engine.ActionHardDrop, a)

	_, ok = bindings.EngineAction(bindings.Left, true)
	assert.False(t, ok)
	_, ok = bindings.EngineAction(bindings.Confirm, false)
	assert.False(t, ok)
}

func TestPersistence(t *testing.T) {
	ctx := context.Background()
	logger := zaptest.NewLogger(t)

	t.Run("missing table loads defaults", func(t *testing.T) {
		kv := store.NewMemory()
		assert.Equal(t, bindings.Default(), bindings.Load(ctx, kv, logger))
	})

	t.Run("saved table survives a reload", func(t *testing.T) {
		kv := store.NewMemory()
		table := bindings.Default()
		assert.NoError(t, table.Rebind(bindings.DropPiece, "KeyX"))
		assert.NoError(t, table.Rebind(bindings.Cancel, "Delete"))
		assert.NoError(t, table.Save(ctx, kv))

		loaded := bindings.Load(ctx, kv, logger)
		assert.Equal(t, "KeyX", loaded.Key(bindings.DropPiece))
		assert.Equal(t, "", loaded.Key(bindings.Cancel))
		assert.Equal(t, table, loaded)
	})

	t.Run("corrupt payload falls back to defaults", func(t *testing.T) {
		kv := store.NewMemory()
		assert.NoError(t, kv.Set(ctx, bindings.StoreKey, []byte{0xc1, 0x00, 0xff}))
		assert.Equal(t, bindings.Default(), bindings.Load(ctx, kv, logger))
	})

	t.Run("duplicate keys fall back to defaults", func(t *testing.T) {
		kv := store.NewMemory()
		data, err := msgpack.Marshal(map[string]string{"Left": "KeyZ", "Right": "KeyZ"})
		assert.NoError(t, err)
		assert.NoError(t, kv.Set(ctx, bindings.StoreKey, data))
		assert.Equal(t, bindings.Default(), bindings.Load(ctx, kv, logger))
	})

	t.Run("missing actions take free defaults", func(t *testing.T) {
		data, err := msgpack.Marshal(map[string]string{"Left": "KeyF"})
		assert.NoError(t, err)

		table, err := bindings.Decode(data)
		assert.NoError(t, err)
		assert.Equal(t, "KeyF", table.Key(bindings.Left))
		assert.Equal(t, "", table.Key(bindings.FastDrop), "KeyF is already taken")
		assert.Equal(t, "ArrowRight", table.Key(bindings.Right))
		assert.NoError(t, table.Validate())
	})
}
