package engine

import "errors"

var (
	// ErrTopOut ends a session: a piece could not spawn or lock inside the
	// well.
	ErrTopOut = errors.New("engine: top out")
	// ErrTimeout ends a story session whose clock ran out.
	ErrTimeout = errors.New("engine: time expired")
	// ErrInvalidMove rejects a translation that would collide or leave the
	// well. The piece is left untouched.
	ErrInvalidMove = errors.New("engine: invalid move")
	// ErrInvalidRotation rejects a rotation that would collide, leave the
	// well or arrive while another rotation is still settling.
	ErrInvalidRotation = errors.New("engine: invalid rotation")
	// ErrNoActivePiece rejects piece actions while no piece is falling.
	ErrNoActivePiece = errors.New("engine: no active piece")
)
