package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
)

const HighScoreKey = "highScore"

// ErrCorruptHighScore marks a stored high score that is not a number.
var ErrCorruptHighScore = errors.New("store: corrupt high score")

// HighScore returns the stored best score, zero when none was recorded.
func HighScore(ctx context.Context, kv KV) (int, error) {
	raw, err := kv.Get(ctx, HighScoreKey)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	score, err := strconv.Atoi(string(raw))
	if err != nil {
		return 0, fmt.Errorf("%w %q: %w", ErrCorruptHighScore, raw, err)
	}
	return score, nil
}

// RecordHighScore stores score if it beats the current best and returns the
// best score afterwards. A corrupt stored value is overwritten; any other
// read failure is returned and nothing is written.
func RecordHighScore(ctx context.Context, kv KV, score int) (best int, improved bool, err error) {
	best, err = HighScore(ctx, kv)
	switch {
	case errors.Is(err, ErrCorruptHighScore):
		best = -1
	case err != nil:
		return 0, false, err
	}
	if score <= best {
		return best, false, nil
	}
	if err := kv.Set(ctx, HighScoreKey, []byte(strconv.Itoa(score))); err != nil {
		return best, false, err
	}
	return score, true, nil
}
