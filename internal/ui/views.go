package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LoginView:
		body = m.renderLogin()
	case RegisterView:
		body = m.renderRegister()
	case PlaylistListView:
		body = m.renderPlaylistList()
	case PlaylistFormView:
		body = m.renderPlaylistForm()
	case ConfirmDeleteView:
		body = m.renderConfirmDelete()
	case SongListView:
		body = m.renderSongList()
	}

	return body + m.renderOverlay()
}

// renderOverlay appends the transient notice and, while any request is in
// flight, the spinner line.
func (m *Model) renderOverlay() string {
	var b strings.Builder
	if m.notice != "" {
		b.WriteString("\n")
		b.WriteString(styles.notice.Render(m.notice))
	}
	if m.pending.active() {
		b.WriteString(fmt.Sprintf("\n%s %s", m.spin.View(), styles.help.Render("Loading...")))
	}
	return b.String()
}

func (m *Model) renderLogin() string {
	registerKey := key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "register"))
	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "sign in"))
	helpView := m.help.ShortHelpView([]key.Binding{submitKey, m.keys.tab, registerKey})

	return fmt.Sprintf("%s\n%s", m.loginForm.view(), helpView)
}

func (m *Model) renderRegister() string {
	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create account"))
	helpView := m.help.ShortHelpView([]key.Binding{submitKey, m.keys.tab, m.keys.back})

	return fmt.Sprintf("%s\n%s", m.registerForm.view(), helpView)
}

func (m *Model) renderPlaylistList() string {
	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.create, m.keys.edit, m.keys.remove, m.keys.logout, m.keys.quit,
	})

	if len(m.playlists) == 0 {
		empty := styles.help.Render("No playlists yet. Press n to create one.")
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render("Playlists"), empty, helpView)
	}

	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderPlaylistForm() string {
	submitKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save"))
	helpView := m.help.ShortHelpView([]key.Binding{submitKey, m.keys.tab, m.keys.back})

	return fmt.Sprintf("%s\n%s", m.playlistForm.view(), helpView)
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Delete '%s'?", m.deleting.Name))
	warning := styles.warn.Render("This cannot be undone.")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})

	return fmt.Sprintf("%s\n%s\n\n%s", title, warning, helpView)
}

func (m *Model) renderSongList() string {
	if m.searchOpen {
		addKey := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "add track"))
		helpView := m.help.ShortHelpView([]key.Binding{addKey, m.keys.back})

		return fmt.Sprintf("%s\n\n%s\n\n%s", m.searchInput.View(), m.searchList.View(), helpView)
	}

	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.search, m.keys.remove, m.keys.back, m.keys.quit,
	})

	return fmt.Sprintf("%s\n\n%s", m.trackList.View(), helpView)
}
