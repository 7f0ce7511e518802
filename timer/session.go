package timer

import (
	"fmt"
	"log/slog"
	"os/exec"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kballard/go-shellquote"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/timeutil"
)

// drain turns the intervals completed since the last update into record
// commands.
func (m *Model) drain() tea.Cmd {
	if len(m.pending) == 0 {
		return nil
	}

	mode := m.engine.State().Mode

	cmds := make([]tea.Cmd, 0, len(m.pending))
	for _, secs := range m.pending {
		cmds = append(cmds, m.record(mode, secs))
	}

	m.pending = m.pending[:0]

	m.setFlash(fmt.Sprintf("%s complete!", mode.Label()), false)

	return tea.Batch(cmds...)
}

// record saves a session in the background.
func (m *Model) record(mode engine.Mode, secs int) tea.Cmd {
	if m.recorder == nil || secs <= 0 {
		return nil
	}

	ctx := m.ctx
	m.inflight++

	return func() tea.Msg {
		sess, err := m.recorder.Record(ctx, mode, secs)
		return recordedMsg{sess: sess, err: err}
	}
}

func (m *Model) handleRecorded(msg recordedMsg) tea.Cmd {
	m.inflight--

	cmd := m.afterRecorded(msg)

	if m.quitting && m.inflight == 0 {
		if cmd == nil {
			return tea.Quit
		}

		return tea.Sequence(cmd, tea.Quit)
	}

	return cmd
}

// quit exits once every finished interval has been saved. Asking again
// while the saves are outstanding exits at once.
func (m *Model) quit() tea.Cmd {
	if m.quitting {
		return tea.Quit
	}

	cmd := m.drain()
	if m.inflight == 0 {
		return tea.Quit
	}

	m.quitting = true
	m.setFlash("Saving session before quitting...", false)

	return cmd
}

func (m *Model) afterRecorded(msg recordedMsg) tea.Cmd {
	if msg.err != nil {
		m.logger.Error("unable to save session", slog.Any("error", msg.err))
		m.setFlash("Unable to save session: "+msg.err.Error(), true)

		return nil
	}

	m.setFlash(
		fmt.Sprintf("Saved %q (%s)", msg.sess.Title, timeutil.Clock(msg.sess.DurationSeconds)),
		false,
	)

	return runSessionCmd(m.cfg.Settings.Cmd)
}

// runSessionCmd executes the post-session command in the background.
func runSessionCmd(sessionCmd string) tea.Cmd {
	if sessionCmd == "" {
		return nil
	}

	return func() tea.Msg {
		cmdSlice, err := shellquote.Split(sessionCmd)
		if err != nil {
			return sessionCmdMsg{
				err: fmt.Errorf("unable to parse session_cmd option: %w", err),
			}
		}

		if len(cmdSlice) == 0 {
			return sessionCmdMsg{}
		}

		//nolint:gosec // the command comes from the user's own config
		cmd := exec.Command(cmdSlice[0], cmdSlice[1:]...)

		return sessionCmdMsg{err: cmd.Run()}
	}
}

func (m *Model) setFlash(msg string, isErr bool) {
	m.flash = msg
	m.flashErr = isErr
}
