package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/vanderheijden86/workdeck/pkg/config"
	"github.com/vanderheijden86/workdeck/pkg/debug"
)

// gateDelay is the pause between a correct password and the dashboard
// appearing. Long enough to read the confirmation, short enough to ignore.
const gateDelay = 500 * time.Millisecond

// gateUnlockedMsg signals the root model that the gate cleared.
type gateUnlockedMsg struct{}

// gateModel is the password prompt shown before the dashboard. The shared
// secret comes from config; a cleared gate persists an authenticated flag
// in the XDG state dir so later launches skip the prompt.
type gateModel struct {
	form     *huh.Form
	secret   string
	input    string
	failed   bool
	unlocked bool
	theme    Theme
}

func newGateModel(th Theme, secret string) gateModel {
	g := gateModel{secret: secret, theme: th}
	g.form = g.buildForm()
	return g
}

func (g gateModel) buildForm() *huh.Form {
	title := "Team dashboard"
	desc := "Enter the team password to continue."
	if g.failed {
		desc = "Wrong password, try again."
	}
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("secret").
				Title(title).
				Description(desc).
				EchoMode(huh.EchoModePassword).
				Value(&g.input),
		),
	).WithShowHelp(false)
}

func (g gateModel) Init() tea.Cmd {
	return g.form.Init()
}

func (g gateModel) Update(msg tea.Msg) (gateModel, tea.Cmd) {
	if g.unlocked {
		return g, nil
	}

	form, cmd := g.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		g.form = f
	}

	if g.form.State != huh.StateCompleted {
		return g, cmd
	}

	if g.input != g.secret {
		debug.Log("gate: wrong password")
		g.failed = true
		g.input = ""
		g.form = g.buildForm()
		return g, g.form.Init()
	}

	g.unlocked = true
	if err := config.MarkAuthenticated(); err != nil {
		debug.Log("gate: could not persist auth flag: %v", err)
	}
	return g, tea.Tick(gateDelay, func(time.Time) tea.Msg {
		return gateUnlockedMsg{}
	})
}

func (g gateModel) View() string {
	if g.unlocked {
		return g.theme.GoodText.Render("✓ unlocked")
	}
	return g.form.View()
}
