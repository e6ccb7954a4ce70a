// Package app is the screen flow around the engine: title, menu, story
// dialog, play, results and key configuration. Device adapters feed raw key
// transitions to Dispatch; nothing else mutates the game.
package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/plus3/welltris/bindings"
	"github.com/plus3/welltris/engine"
	"github.com/plus3/welltris/store"
	"github.com/plus3/welltris/story"
	"go.uber.org/zap"
)

// Number of finished games listed on the game over screen.
const topResultsShown = 3

type Machine struct {
	game     *engine.Game
	bindings *bindings.Table
	store    store.Store
	campaign *story.Campaign
	logger   *zap.Logger

	screen    Screen
	mode      engine.Mode
	menuIndex int
	storyLine int
	keyIndex  int
	capturing bool
	notice    string

	highScore  int
	lastScore  int
	topResults []store.Result
	newRecord  bool
	finished   bool
	startTick  uint64
	onGameOver []func(engine.State)
}

// New builds the machine on the title screen. The high score is read from st
// up front; a failed read is logged and treated as zero.
func New(ctx context.Context, game *engine.Game, table *bindings.Table, st store.Store, campaign *story.Campaign, logger *zap.Logger) *Machine {
	m := &Machine{
		game:     game,
		bindings: table,
		store:    st,
		campaign: campaign,
		logger:   logger,
	}
	best, err := store.HighScore(ctx, st)
	if err != nil {
		logger.Warn("failed to read high score", zap.Error(err))
	}
	m.highScore = best
	return m
}

func (m *Machine) Screen() Screen            { return m.screen }
func (m *Machine) Game() *engine.Game        { return m.game }
func (m *Machine) Bindings() *bindings.Table { return m.bindings }
func (m *Machine) Campaign() *story.Campaign { return m.campaign }
func (m *Machine) HighScore() int            { return m.highScore }
func (m *Machine) Mode() engine.Mode         { return m.mode }

// OnGameEnd registers fn to observe the final state of every finished game.
func (m *Machine) OnGameEnd(fn func(engine.State)) {
	m.onGameOver = append(m.onGameOver, fn)
}

// Dispatch routes one key transition to the active screen.
func (m *Machine) Dispatch(ctx context.Context, in Input) {
	if in.Key == "" {
		return
	}
	if in.Released && m.screen != ScreenGame {
		return
	}

	switch m.screen {
	case ScreenTitle:
		m.screen = ScreenMenu
	case ScreenMenu:
		m.dispatchMenu(ctx, in.Key)
	case ScreenStory:
		m.dispatchStory(ctx, in.Key)
	case ScreenGame:
		m.dispatchGame(ctx, in)
	case ScreenGameOver:
		m.screen = ScreenMenu
	case ScreenWin:
		m.dispatchWin()
	case ScreenKeyConfig:
		m.dispatchKeyConfig(ctx, in.Key)
	}
}

// Apply sends an engine action directly, bypassing key bindings. It is a
// no-op outside the game screen.
func (m *Machine) Apply(ctx context.Context, a engine.Action) error {
	if m.screen != ScreenGame {
		return nil
	}
	err := m.game.HandleAction(a)
	m.checkOutcome(ctx)
	return err
}

// Update advances the simulation by one tick while a game is on screen.
func (m *Machine) Update(ctx context.Context) {
	if m.screen != ScreenGame {
		return
	}
	m.game.Tick()
	m.checkOutcome(ctx)
}

func (m *Machine) dispatchMenu(ctx context.Context, key string) {
	switch key {
	case keyUp:
		m.menuIndex = (m.menuIndex - 1 + len(menuLabels)) % len(menuLabels)
	case keyDown:
		m.menuIndex = (m.menuIndex + 1) % len(menuLabels)
	case keyEnter:
		switch menuOption(m.menuIndex) {
		case menuStory:
			m.campaign.Reset()
			m.finished = false
			m.storyLine = 0
			m.screen = ScreenStory
		case menuArcade:
			m.startGame(ctx, engine.ModeArcade, nil)
		case menuKeys:
			m.keyIndex = 0
			m.capturing = false
			m.notice = ""
			m.screen = ScreenKeyConfig
		}
	}
}

func (m *Machine) dispatchStory(ctx context.Context, key string) {
	if key == keyEsc {
		m.screen = ScreenMenu
		return
	}
	if key != keyEnter && key != keySpace {
		return
	}

	segment := m.campaign.Current()
	m.storyLine++
	if segment != nil && m.storyLine < len(segment.Lines) {
		return
	}

	if segment == nil || segment.Epilogue() {
		m.finished = true
		m.screen = ScreenWin
		return
	}
	m.startGame(ctx, engine.ModeStory, segment)
}

func (m *Machine) dispatchGame(ctx context.Context, in Input) {
	action, ok := m.bindings.ActionFor(in.Key)
	if !ok {
		return
	}
	if action == bindings.Cancel && !in.Released {
		m.logger.Info("game abandoned", zap.Int("score", m.game.Session().Score))
		m.screen = ScreenMenu
		return
	}

	ea, ok := bindings.EngineAction(action, in.Released)
	if !ok {
		return
	}
	if err := m.game.HandleAction(ea); err != nil && !errors.Is(err, engine.ErrNoActivePiece) {
		m.logger.Debug("action rejected", zap.Stringer("action", ea), zap.Error(err))
	}
	m.checkOutcome(ctx)
}

func (m *Machine) dispatchWin() {
	if m.mode == engine.ModeStory && !m.finished && m.campaign.Advance() {
		m.storyLine = 0
		m.screen = ScreenStory
		return
	}
	m.finished = false
	m.screen = ScreenMenu
}

func (m *Machine) dispatchKeyConfig(ctx context.Context, key string) {
	actions := bindings.Actions()

	if m.capturing {
		m.capturing = false
		action := actions[m.keyIndex]
		if err := m.bindings.Rebind(action, key); err != nil {
			m.notice = err.Error()
			return
		}
		m.notice = ""
		m.saveBindings(ctx)
		return
	}

	entries := len(actions) + 1
	switch key {
	case keyUp:
		m.keyIndex = (m.keyIndex - 1 + entries) % entries
	case keyDown:
		m.keyIndex = (m.keyIndex + 1) % entries
	case keyEnter:
		if m.keyIndex == len(actions) {
			m.screen = ScreenMenu
			return
		}
		m.capturing = true
		m.notice = fmt.Sprintf("Press a key for %s (Delete to unbind)", actions[m.keyIndex])
	case keyEsc:
		m.screen = ScreenMenu
	}
}

func (m *Machine) saveBindings(ctx context.Context) {
	if err := m.bindings.Save(ctx, m.store); err != nil {
		m.logger.Warn("failed to save key bindings", zap.Error(err))
	}
}

func (m *Machine) startGame(ctx context.Context, mode engine.Mode, segment *story.Segment) {
	if err := m.game.Start(mode, segment); err != nil {
		m.logger.Warn("game failed to start", zap.Stringer("mode", mode), zap.Error(err))
	}
	m.mode = mode
	m.startTick = m.game.Scheduler().Tick()
	m.screen = ScreenGame
	m.checkOutcome(ctx)
}

// checkOutcome leaves the game screen once the session has ended.
func (m *Machine) checkOutcome(ctx context.Context) {
	if m.screen != ScreenGame {
		return
	}
	session := m.game.Session()
	if !session.GameOver {
		return
	}

	state := m.game.State()
	m.lastScore = session.Score
	m.newRecord = false
	m.recordResult(ctx, state)

	if session.Won() {
		m.finished = m.mode == engine.ModeStory && m.campaign.Finished()
		m.screen = ScreenWin
	} else {
		best, improved, err := store.RecordHighScore(ctx, m.store, session.Score)
		if err != nil {
			m.logger.Warn("failed to record high score", zap.Error(err))
		} else {
			m.highScore = best
			m.newRecord = improved
		}
		top, err := m.store.TopResults(ctx, topResultsShown)
		if err != nil {
			m.logger.Warn("failed to read top results", zap.Error(err))
		}
		m.topResults = top
		m.screen = ScreenGameOver
	}

	for _, fn := range m.onGameOver {
		fn(state)
	}
}

func (m *Machine) recordResult(ctx context.Context, state engine.State) {
	_, err := m.store.RecordResult(ctx, store.Result{
		Mode:          state.Mode,
		Outcome:       state.Outcome,
		Score:         state.Score,
		LayersCleared: state.LayersCleared,
		Level:         state.Level,
		PiecesPlaced:  state.PiecesPlaced,
		Ticks:         state.Tick - m.startTick,
	})
	if err != nil {
		m.logger.Warn("failed to record result", zap.Error(err))
	}
}

// View describes the current screen.
func (m *Machine) View() View {
	v := View{Screen: m.screen, Notice: m.notice}

	switch m.screen {
	case ScreenTitle:
		v.Title = "WELLTRIS"
		v.Lines = []string{"Press any key"}
	case ScreenMenu:
		v.Title = "WELLTRIS"
		v.Options = append([]string(nil), menuLabels...)
		v.Selected = m.menuIndex
		v.Lines = []string{fmt.Sprintf("High Score: %d", m.highScore)}
	case ScreenStory:
		v.Title = fmt.Sprintf("Chapter %d", m.campaign.Index()+1)
		if segment := m.campaign.Current(); segment != nil && m.storyLine < len(segment.Lines) {
			v.Lines = strings.Split(segment.Lines[m.storyLine], "\n")
		}
		v.Notice = "Press Enter to continue"
	case ScreenGame:
		v.Title = strings.ToUpper(m.mode.String())
		v.Lines = m.hudLines()
	case ScreenGameOver:
		v.Title = "GAME OVER"
		v.Lines = []string{
			fmt.Sprintf("Your Score: %d", m.lastScore),
			fmt.Sprintf("High Score: %d", m.highScore),
		}
		if m.newRecord {
			v.Lines = append(v.Lines, "New high score!")
		}
		if len(m.topResults) > 0 {
			v.Lines = append(v.Lines, "Best Games:")
			for i, r := range m.topResults {
				v.Lines = append(v.Lines, fmt.Sprintf("%d. %d %s (level %d)", i+1, r.Score, r.Mode, r.Level))
			}
		}
		v.Notice = "Press Any Key to Return to Menu"
	case ScreenWin:
		if m.finished {
			v.Title = "THE END"
			v.Lines = []string{"You've completed your journey!", fmt.Sprintf("Final Score: %d", m.lastScore)}
		} else {
			v.Title = "YOU WIN!"
			v.Lines = []string{fmt.Sprintf("Score: %d", m.lastScore)}
		}
		v.Notice = "Press Any Key to Continue"
	case ScreenKeyConfig:
		v.Title = "Reconfigure Keys"
		for _, a := range bindings.Actions() {
			key := m.bindings.Key(a)
			if key == "" {
				key = "(unbound)"
			}
			v.Options = append(v.Options, fmt.Sprintf("%s: %s", a, key))
		}
		v.Options = append(v.Options, "Back")
		v.Selected = m.keyIndex
	}
	return v
}

func (m *Machine) hudLines() []string {
	s := m.game.Session()
	lines := []string{
		fmt.Sprintf("Score: %d", s.Score),
		fmt.Sprintf("Level: %d", s.Level),
		fmt.Sprintf("Layers: %d", s.LayersCleared),
		fmt.Sprintf("Next: %s", s.Next.Kind),
	}
	if s.Mode == engine.ModeStory {
		lines = append(lines,
			fmt.Sprintf("Opponent HP: %d", s.OpponentHP),
			fmt.Sprintf("Time: %.0f", s.TimeRemaining),
		)
	}
	if s.FastDrop {
		lines = append(lines, "FAST DROP")
	}
	return lines
}
