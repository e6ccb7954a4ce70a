package bindings

import (
	"context"
	"errors"
	"fmt"

	"github.com/plus3/welltris/store"
	"github.com/vmihailenco/msgpack/v5"
	"go.uber.org/zap"
)

const StoreKey = "keyBindings"

func (t *Table) MarshalMsgpack() ([]byte, error) {
	wire := make(map[string]string, len(t.keys))
	for a, key := range t.keys {
		wire[string(a)] = key
	}
	return msgpack.Marshal(wire)
}

func (t *Table) UnmarshalMsgpack(data []byte) error {
	var wire map[string]string
	if err := msgpack.Unmarshal(data, &wire); err != nil {
		return err
	}
	keys := make(map[Action]string, len(wire))
	for name, key := range wire {
		keys[Action(name)] = key
	}
	t.keys = keys
	return nil
}

// Decode parses a persisted table. Actions missing from the payload take
// their default key when it is still free.
func Decode(data []byte) (*Table, error) {
	t := &Table{}
	if err := msgpack.Unmarshal(data, t); err != nil {
		return nil, fmt.Errorf("decode bindings: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	for _, a := range order {
		if _, ok := t.keys[a]; ok {
			continue
		}
		t.keys[a] = ""
		if _, taken := t.ActionFor(defaults[a]); !taken {
			t.keys[a] = defaults[a]
		}
	}
	return t, nil
}

// Load reads the table from kv. A missing or corrupt table yields the
// defaults; corruption is logged and never returned.
func Load(ctx context.Context, kv store.KV, logger *zap.Logger) *Table {
	raw, err := kv.Get(ctx, StoreKey)
	if errors.Is(err, store.ErrNotFound) {
		return Default()
	}
	if err != nil {
		logger.Warn("failed to read key bindings, using defaults", zap.Error(err))
		return Default()
	}

	t, err := Decode(raw)
	if err != nil {
		logger.Warn("stored key bindings are corrupt, using defaults", zap.Error(err), zap.Int("bytes", len(raw)))
		return Default()
	}
	return t
}

// Save writes the table to kv.
func (t *Table) Save(ctx context.Context, kv store.KV) error {
	data, err := msgpack.Marshal(t)
	if err != nil {
		return fmt.Errorf("encode bindings: %w", err)
	}
	return kv.Set(ctx, StoreKey, data)
}
