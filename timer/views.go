package timer

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/focuslog/focuslog/internal/engine"
	"github.com/focuslog/focuslog/internal/timeutil"
)

func (m *Model) headerView(st engine.State) string {
	var s strings.Builder

	modeStyle := m.styles.main.Foreground(lipgloss.Color(m.cfg.Color(st.Mode)))

	s.WriteString(modeStyle.Render("[" + st.Mode.Label() + "]"))
	s.WriteString(" " + m.styles.hint.Render(m.cfg.Message(st.Mode)))
	s.WriteString("\n")

	switch st.Status() {
	case engine.Running:
		s.WriteString(m.styles.hint.Render(
			"until " + st.Deadline.Local().Format(m.cfg.TimeFormat()),
		))
	case engine.Paused:
		s.WriteString(m.styles.hint.Render("[Paused]"))
	case engine.Completed:
		s.WriteString(m.styles.hint.Render("[Done]"))
	default:
		s.WriteString(m.styles.hint.Render("[Ready]"))
	}

	if m.title != "" && st.Mode != engine.ShortBreak && st.Mode != engine.LongBreak {
		s.WriteString(m.styles.hint.Render(" " + m.title))
	}

	return s.String()
}

func (m *Model) helpView(st engine.State) string {
	bindings := []key.Binding{
		m.keys.togglePlay,
		m.keys.reset,
		m.keys.save,
	}

	if !st.Running {
		bindings = append(bindings,
			m.keys.focus,
			m.keys.shortBreak,
			m.keys.longBreak,
			m.keys.custom,
		)

		if st.Mode == engine.Custom {
			bindings = append(bindings, m.keys.increase)
		}
	}

	bindings = append(bindings, m.keys.quit)

	return m.help.ShortHelpView(bindings)
}

func (m *Model) View() string {
	st := m.engine.State()

	var s strings.Builder

	s.WriteString(m.headerView(st))
	s.WriteString("\n\n")
	s.WriteString(m.styles.main.Render(timeutil.Clock(st.RemainingSeconds)))
	s.WriteString("\n\n")
	s.WriteString(m.progress.ViewAs(st.Progress()))

	if m.flash != "" {
		style := m.styles.flash
		if m.flashErr {
			style = m.styles.errMsg
		}

		s.WriteString("\n\n" + style.Render(m.flash))
	}

	s.WriteString("\n\n" + m.helpView(st))

	return m.styles.base.Render(s.String())
}
