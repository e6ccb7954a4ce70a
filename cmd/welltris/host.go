package main

import (
	"context"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/plus3/welltris/app"
	"github.com/plus3/welltris/debugui"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/remote"
	"go.uber.org/zap"
)

// Host adapts the app state machine to ebiten.
type Host struct {
	ctx     context.Context
	machine *app.Machine
	overlay *debugui.Overlay
	remote  *remote.Server
	logger  *zap.Logger

	broadcastEvery uint64
	frames         uint64
	keys           []ebiten.Key
}

func (h *Host) Update() error {
	if h.ctx.Err() != nil {
		return ebiten.Termination
	}
	h.frames++

	if h.overlay != nil {
		h.overlay.Update(1.0 / float64(ebiten.TPS()))
	}
	if h.overlay == nil || !h.overlay.WantsKeyboard() {
		h.dispatchKeys()
	}

	if h.remote != nil {
		h.remote.Drain(func(a engine.Action) {
			if err := h.machine.Apply(h.ctx, a); err != nil {
				h.logger.Debug("remote action rejected", zap.Stringer("action", a), zap.Error(err))
			}
		})
	}

	h.machine.Update(h.ctx)

	if h.remote != nil && h.broadcastEvery > 0 && h.frames%h.broadcastEvery == 0 && h.remote.Clients() > 0 {
		if err := h.remote.Broadcast(h.machine.Game().State()); err != nil {
			h.logger.Warn("failed to broadcast state", zap.Error(err))
		}
	}
	return nil
}

func (h *Host) dispatchKeys() {
	h.keys = inpututil.AppendJustPressedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.machine.Dispatch(h.ctx, app.Input{Key: domCode(k)})
	}
	h.keys = inpututil.AppendJustReleasedKeys(h.keys[:0])
	for _, k := range h.keys {
		h.machine.Dispatch(h.ctx, app.Input{Key: domCode(k), Released: true})
	}
}

func (h *Host) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{16, 16, 24, 255})

	view := h.machine.View()
	if view.Screen == app.ScreenGame {
		drawGame(screen, h.machine.Game(), view)
	} else {
		drawView(screen, view)
	}

	if h.overlay != nil {
		h.overlay.Draw(screen)
	}
}

func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	if h.overlay != nil {
		h.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
