package timer

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/davecgh/go-spew/spew"

	"github.com/focuslog/focuslog/internal/engine"
)

// handleTick advances the engine and schedules the next tick.
func (m *Model) handleTick(msg tickMsg) (tea.Model, tea.Cmd) {
	m.engine.Tick(time.Time(msg))

	return m, tea.Batch(m.tick(), m.drain())
}

// switchMode loads a preset unless the countdown is running.
func (m *Model) switchMode(mode engine.Mode, customSeconds int) {
	if m.engine.State().Running {
		m.setFlash("Pause the timer before switching modes", true)
		return
	}

	m.engine.SwitchMode(mode, customSeconds)
	m.setFlash("", false)
}

// adjustCustom changes the custom duration by steps of the configured step.
func (m *Model) adjustCustom(steps int) {
	st := m.engine.State()

	if st.Mode != engine.Custom {
		m.setFlash("Switch to custom mode (4) to change its length", true)
		return
	}

	if st.Running {
		m.setFlash("Pause the timer before changing its length", true)
		return
	}

	secs := st.CustomSeconds + steps*int(m.cfg.Custom.Step.Seconds())

	m.engine.SwitchMode(engine.Custom, m.engine.Catalog().ClampCustom(secs))
	m.setFlash("", false)
}

// stopAndSave ends the interval early and records the elapsed time.
func (m *Model) stopAndSave() tea.Cmd {
	mode := m.engine.State().Mode

	secs := m.engine.StopAndSave()
	if secs <= 0 {
		m.setFlash("Nothing to save yet", false)
		return nil
	}

	return m.record(mode, secs)
}

func (m *Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch {
	case key.Matches(msg, m.keys.togglePlay):
		m.engine.Toggle()
		m.setFlash("", false)

	case key.Matches(msg, m.keys.reset):
		m.engine.Reset()
		m.setFlash("", false)

	case key.Matches(msg, m.keys.save):
		cmd = m.stopAndSave()

	case key.Matches(msg, m.keys.focus):
		m.switchMode(engine.Focus, 0)

	case key.Matches(msg, m.keys.shortBreak):
		m.switchMode(engine.ShortBreak, 0)

	case key.Matches(msg, m.keys.longBreak):
		m.switchMode(engine.LongBreak, 0)

	case key.Matches(msg, m.keys.custom):
		m.switchMode(engine.Custom, 0)

	case key.Matches(msg, m.keys.increase):
		m.adjustCustom(1)

	case key.Matches(msg, m.keys.decrease):
		m.adjustCustom(-1)

	case key.Matches(msg, m.keys.quit):
		// the engine has already persisted its state
		return m, m.quit()
	}

	m.writeStatus()

	return m, cmd
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.logger.Enabled(m.ctx, slog.LevelDebug) {
		if _, ok := msg.(tickMsg); !ok {
			m.logger.Debug(spew.Sdump(msg))
		}
	}

	switch msg := msg.(type) {
	case tickMsg:
		model, cmd := m.handleTick(msg)
		m.writeStatus()

		return model, cmd

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case recordedMsg:
		return m, m.handleRecorded(msg)

	case sessionCmdMsg:
		if msg.err != nil {
			m.logger.Warn("session command failed", slog.Any("error", msg.err))
			m.setFlash(fmt.Sprintf("Session command failed: %v", msg.err), true)
		}

		return m, nil

	case tea.WindowSizeMsg:
		m.progress.Width = msg.Width - padding*2 - 4
		if m.progress.Width > maxWidth {
			m.progress.Width = maxWidth
		}

		m.help.Width = msg.Width

		return m, nil
	}

	return m, nil
}
