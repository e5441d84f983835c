package app

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"console/internal/api"
	"console/internal/assistant"
	"console/internal/dashboard"
	"console/internal/logging"
	"console/internal/session"
	"console/internal/types"
)

const (
	minSidebarWidth  = 16
	maxSidebarWidth  = 28
	minContentWidth  = 40
	minContentHeight = 6
)

type uiMode int

const (
	uiModeLogin uiMode = iota
	uiModeNormal
	uiModeForm
)

type Model struct {
	ctl       *dashboard.Controller
	assistant *assistant.Client
	log       logging.Logger

	mode          uiMode
	sidebar       *SidebarController
	login         *LoginController
	form          *FormController
	confirm       *ConfirmController
	assistantPage *AssistantController

	formTarget    formTarget
	pendingDelete formTarget
	deleteLabel   string
	selection     map[page]int

	width  int
	height int

	status   string
	toast    string
	toastErr bool
	offline  bool
	loading  bool
}

func NewModel(ctl *dashboard.Controller, ai *assistant.Client, log logging.Logger) *Model {
	if log == nil {
		log = logging.Nop()
	}
	m := &Model{
		ctl:       ctl,
		assistant: ai,
		log:       log.With(logging.F("component", "ui")),
		mode:      uiModeLogin,
		login:     NewLoginController(32),
		form:      NewFormController(48),
		confirm:   NewConfirmController(),
		selection: map[page]int{},
	}
	m.sidebar = NewSidebarController(true)
	m.assistantPage = NewAssistantController(minContentWidth, minContentHeight, ai != nil && ai.Configured())
	return m
}

// Run blocks until the user quits.
func Run(ctl *dashboard.Controller, ai *assistant.Client, log logging.Logger) error {
	model := NewModel(ctl, ai, log)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.startCmd(), snapshotTickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case sessionRestoredMsg:
		return m, m.applyRestore(msg)

	case loginResultMsg:
		if msg.err != nil {
			m.login.SetError(loginErrorText(msg.err))
			return m, nil
		}
		m.enterNormal(msg.identity)
		return m, nil

	case loadDoneMsg:
		m.loading = false
		return m, nil

	case mutationDoneMsg:
		if msg.err != nil {
			return m, m.toastError(mutationErrorText(msg.err))
		}
		return m, m.toastInfo(msg.status)

	case assistantAnswerMsg:
		if msg.err != nil {
			m.assistantPage.SetError(msg.err.Error())
			return m, nil
		}
		m.assistantPage.SetAnswer(msg.answer)
		return m, nil

	case snapshotTickMsg:
		return m, tea.Batch(m.onSnapshotTick(), snapshotTickCmd())

	case clearToastMsg:
		m.toast = ""
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.mode == uiModeLogin {
		_, cmd := m.login.Update(msg)
		return m, cmd
	}
	if m.mode == uiModeForm {
		_, cmd := m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) applyRestore(msg sessionRestoredMsg) tea.Cmd {
	switch msg.result.Status {
	case session.RestoreValid:
		m.enterNormal(msg.result.Identity)
		if msg.err != nil {
			return m.toastError(mutationErrorText(msg.err))
		}
		return nil
	case session.RestoreOffline:
		m.offline = true
		m.mode = uiModeLogin
		m.login.SetError("backend unreachable; try again once it is back")
		return nil
	default:
		m.mode = uiModeLogin
		return nil
	}
}

// enterNormal rebuilds the page list for the signed-in user's role and
// switches to the main layout.
func (m *Model) enterNormal(identity *types.User) {
	m.offline = false
	m.mode = uiModeNormal
	showClients := identity != nil && identity.Admin()
	m.sidebar = NewSidebarController(showClients)
	m.resize(m.width, m.height)
	m.syncCounts()
}

func (m *Model) enterLogin(reason string) {
	m.mode = uiModeLogin
	m.login.Reset()
	if reason != "" {
		m.login.SetError(reason)
	}
}

func (m *Model) onSnapshotTick() tea.Cmd {
	if m.mode == uiModeLogin {
		return nil
	}
	if !m.ctl.Valid() {
		// Background refresh hit a 401 and the session is gone.
		m.enterLogin("session expired; sign in again")
		return nil
	}
	m.syncCounts()
	return nil
}

func (m *Model) syncCounts() {
	m.sidebar.SetCounts(len(m.ctl.Clients()), len(m.ctl.Tickets()), len(m.ctl.Assets()))
	m.clampSelection()
}

func (m *Model) clampSelection() {
	for _, p := range []page{pageClients, pageTickets, pageAssets} {
		limit := m.pageLen(p)
		if limit == 0 {
			m.selection[p] = 0
			continue
		}
		m.selection[p] = clamp(m.selection[p], 0, limit-1)
	}
}

func (m *Model) pageLen(p page) int {
	switch p {
	case pageClients:
		return len(m.ctl.Clients())
	case pageTickets:
		return len(m.ctl.Tickets())
	case pageAssets:
		return len(m.ctl.Assets())
	}
	return 0
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if msg.String() == "ctrl+c" {
		return tea.Quit
	}

	if m.confirm.IsOpen() {
		handled, choice := m.confirm.HandleKey(msg)
		if !handled {
			return nil
		}
		switch choice {
		case confirmChoiceConfirm:
			m.confirm.Close()
			return m.runPendingDelete()
		case confirmChoiceCancel:
			m.confirm.Close()
			m.pendingDelete = formTarget{}
		}
		return nil
	}

	switch m.mode {
	case uiModeLogin:
		submit, cmd := m.login.Update(msg)
		if submit {
			username, password := m.login.Credentials()
			m.login.SetBusy()
			return m.loginCmd(username, password)
		}
		return cmd

	case uiModeForm:
		if msg.String() == "esc" {
			m.form.Exit()
			m.mode = uiModeNormal
			return nil
		}
		done, cmd := m.form.Update(msg)
		if done {
			m.form.Exit()
			m.mode = uiModeNormal
			return m.submitForm()
		}
		return cmd

	default:
		return m.handleNormalKey(msg)
	}
}

func (m *Model) handleNormalKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	switch key {
	case "tab":
		m.cyclePage(1)
		return nil
	case "shift+tab":
		m.cyclePage(-1)
		return nil
	}

	current := m.sidebar.Selected()
	if current == pageAssistant {
		problem, cmd := m.assistantPage.Update(msg)
		if problem != "" {
			m.assistantPage.SetBusy()
			return m.assistantCmd(problem)
		}
		return cmd
	}

	switch key {
	case "q":
		return tea.Quit
	case "up", "k":
		m.moveSelection(current, -1)
		return nil
	case "down", "j":
		m.moveSelection(current, 1)
		return nil
	case "r":
		m.loading = true
		return m.retryCmd()
	case "x":
		m.ctl.Logout()
		m.enterLogin("signed out")
		return nil
	case "c":
		return m.copySelected(current)
	case "a":
		return m.openAddForm(current)
	case "e":
		return m.openEditForm(current)
	case "d":
		m.openDeleteConfirm(current)
		return nil
	}
	return nil
}

func (m *Model) cyclePage(dir int) {
	pages := m.sidebar.pages
	current := m.sidebar.Selected()
	for i, p := range pages {
		if p == current {
			m.sidebar.Select(pages[(i+dir+len(pages))%len(pages)])
			return
		}
	}
}

func (m *Model) moveSelection(p page, dir int) {
	limit := m.pageLen(p)
	if limit == 0 {
		return
	}
	m.selection[p] = clamp(m.selection[p]+dir, 0, limit-1)
}

func (m *Model) copySelected(p page) tea.Cmd {
	var text string
	switch p {
	case pageClients:
		if c, ok := m.selectedClient(); ok {
			text = fmt.Sprintf("%s <%s> %s", c.Name, c.Email, c.Phone)
		}
	case pageTickets:
		if t, ok := m.selectedTicket(); ok {
			text = fmt.Sprintf("%s — %s [%s]", t.ID, t.Title, t.Status)
		}
	case pageAssets:
		if a, ok := m.selectedAsset(); ok {
			text = fmt.Sprintf("%s — %s (%s)", a.ID, a.Name, a.Type)
		}
	}
	if text == "" {
		return nil
	}
	if err := copyTextToClipboard(text); err != nil {
		return m.toastError(err.Error())
	}
	return m.toastInfo("copied")
}

func (m *Model) openAddForm(p page) tea.Cmd {
	switch p {
	case pageClients:
		m.form.Enter("New client", clientFormFields(types.Client{}))
	case pageTickets:
		m.form.Enter("New ticket", ticketFormFields(types.Ticket{}, ""))
	case pageAssets:
		m.form.Enter("New asset", assetFormFields(types.Asset{}, ""))
	default:
		return nil
	}
	m.formTarget = formTarget{page: p}
	m.mode = uiModeForm
	return nil
}

func (m *Model) openEditForm(p page) tea.Cmd {
	names := m.clientNames()
	switch p {
	case pageClients:
		c, ok := m.selectedClient()
		if !ok {
			return nil
		}
		m.form.Enter("Edit client", clientFormFields(c))
		m.formTarget = formTarget{page: p, id: c.ID}
	case pageTickets:
		t, ok := m.selectedTicket()
		if !ok {
			return nil
		}
		m.form.Enter("Edit ticket", ticketFormFields(t, names[t.ClientID]))
		m.formTarget = formTarget{page: p, id: t.ID}
	case pageAssets:
		a, ok := m.selectedAsset()
		if !ok {
			return nil
		}
		m.form.Enter("Edit asset", assetFormFields(a, names[a.ClientID]))
		m.formTarget = formTarget{page: p, id: a.ID}
	default:
		return nil
	}
	m.mode = uiModeForm
	return nil
}

func (m *Model) openDeleteConfirm(p page) {
	switch p {
	case pageClients:
		c, ok := m.selectedClient()
		if !ok {
			return
		}
		m.pendingDelete = formTarget{page: p, id: c.ID}
		m.deleteLabel = c.Name
		m.confirm.Open("Delete client",
			fmt.Sprintf("Delete %q? Its tickets and assets will be removed as well.", c.Name),
			"Delete", "Cancel")
	case pageTickets:
		t, ok := m.selectedTicket()
		if !ok {
			return
		}
		m.pendingDelete = formTarget{page: p, id: t.ID}
		m.deleteLabel = t.Title
		m.confirm.Open("Delete ticket", fmt.Sprintf("Delete %q?", t.Title), "Delete", "Cancel")
	case pageAssets:
		a, ok := m.selectedAsset()
		if !ok {
			return
		}
		m.pendingDelete = formTarget{page: p, id: a.ID}
		m.deleteLabel = a.Name
		m.confirm.Open("Delete asset", fmt.Sprintf("Delete %q?", a.Name), "Delete", "Cancel")
	}
}

func (m *Model) runPendingDelete() tea.Cmd {
	target := m.pendingDelete
	m.pendingDelete = formTarget{}
	label := m.deleteLabel
	m.deleteLabel = ""
	switch target.page {
	case pageClients:
		return mutationCmd(fmt.Sprintf("deleted %s", label), func(ctx context.Context) error {
			return m.ctl.DeleteClient(ctx, target.id)
		})
	case pageTickets:
		return mutationCmd(fmt.Sprintf("deleted %s", label), func(ctx context.Context) error {
			return m.ctl.DeleteTicket(ctx, target.id)
		})
	case pageAssets:
		return mutationCmd(fmt.Sprintf("deleted %s", label), func(ctx context.Context) error {
			return m.ctl.DeleteAsset(ctx, target.id)
		})
	}
	return nil
}

func (m *Model) selectedClient() (types.Client, bool) {
	records := m.ctl.Clients()
	idx := m.selection[pageClients]
	if idx < 0 || idx >= len(records) {
		return types.Client{}, false
	}
	return records[idx], true
}

func (m *Model) selectedTicket() (types.Ticket, bool) {
	records := m.ctl.Tickets()
	idx := m.selection[pageTickets]
	if idx < 0 || idx >= len(records) {
		return types.Ticket{}, false
	}
	return records[idx], true
}

func (m *Model) selectedAsset() (types.Asset, bool) {
	records := m.ctl.Assets()
	idx := m.selection[pageAssets]
	if idx < 0 || idx >= len(records) {
		return types.Asset{}, false
	}
	return records[idx], true
}

func (m *Model) clientNames() map[string]string {
	clients := m.ctl.Clients()
	names := make(map[string]string, len(clients))
	for _, c := range clients {
		names[c.ID] = c.Name
	}
	return names
}

func (m *Model) toastInfo(text string) tea.Cmd {
	m.toast = text
	m.toastErr = false
	return clearToastCmd()
}

func (m *Model) toastError(text string) tea.Cmd {
	m.toast = text
	m.toastErr = true
	m.log.Warn("ui error", logging.F("err", text))
	return clearToastCmd()
}

func loginErrorText(err error) string {
	switch {
	case api.IsAuth(err):
		return "invalid username or password"
	case api.IsNetwork(err):
		return "backend unreachable"
	case api.IsRateLimit(err):
		return "too many attempts; wait a moment"
	default:
		return err.Error()
	}
}

func mutationErrorText(err error) string {
	switch {
	case api.IsValidation(err):
		return "rejected: " + err.Error()
	case api.IsRateLimit(err):
		return "rate limited; try again shortly"
	case api.IsNetwork(err):
		return "backend unreachable"
	default:
		return err.Error()
	}
}

func (m *Model) resize(width, height int) {
	m.width = width
	m.height = height
	if width <= 0 || height <= 0 {
		return
	}
	contentHeight := max(minContentHeight, height-3)
	sidebarWidth := clamp(width/4, minSidebarWidth, maxSidebarWidth)
	contentWidth := max(minContentWidth, width-sidebarWidth-1)

	m.sidebar.SetSize(sidebarWidth, contentHeight)
	m.login.Resize(clamp(width/2, 24, 48))
	m.form.Resize(clamp(contentWidth-8, 24, 64))
	m.assistantPage.SetSize(contentWidth-2, contentHeight-3)
}

func (m *Model) View() string {
	if m.mode == uiModeLogin {
		return m.loginView()
	}

	contentHeight := max(minContentHeight, m.height-3)
	body := m.contentView(contentHeight)
	if m.mode == uiModeForm {
		body = m.form.View()
	}

	sidebarView := m.sidebar.View()
	divider := dividerStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", contentHeight), "\n"))
	main := lipgloss.JoinHorizontal(lipgloss.Top, sidebarView, divider, body)

	if m.confirm.IsOpen() {
		dialog, y := m.confirm.View(m.width, contentHeight)
		main = strings.Repeat("\n", max(0, y)) + dialog
	}

	return lipgloss.JoinVertical(lipgloss.Left, m.headerView(), main, m.statusLine())
}

func (m *Model) headerView() string {
	title := headerStyle.Render("MSP Console")
	identity := ""
	if user := m.ctl.Identity(); user != nil {
		identity = statusStyle.Render(user.DisplayName())
	}
	gap := m.width - lipgloss.Width(title) - lipgloss.Width(identity)
	if gap < 1 {
		return title
	}
	return title + strings.Repeat(" ", gap) + identity
}

func (m *Model) contentView(height int) string {
	state := m.ctl.State()
	if state.LastError != nil {
		banner := errorBannerStyle.Render("load failed: " + mutationErrorText(state.LastError) + "  (r to retry)")
		return banner
	}
	if state.Loading || m.loading {
		return loadingStyle.Render("loading…")
	}

	width := max(minContentWidth, m.width-m.sidebarWidth()-1)
	names := m.clientNames()
	switch m.sidebar.Selected() {
	case pageDashboard:
		return renderStats(m.ctl.Clients(), m.ctl.Tickets(), m.ctl.Assets())
	case pageClients:
		return renderTable(clientColumns(width), clientRows(m.ctl.Clients()), m.selection[pageClients], height)
	case pageTickets:
		return renderTable(ticketColumns(width), ticketRows(m.ctl.Tickets(), names), m.selection[pageTickets], height)
	case pageAssets:
		return renderTable(assetColumns(width), assetRows(m.ctl.Assets(), names), m.selection[pageAssets], height)
	case pageAssistant:
		return m.assistantPage.View()
	}
	return ""
}

func (m *Model) sidebarWidth() int {
	return clamp(m.width/4, minSidebarWidth, maxSidebarWidth)
}

func (m *Model) statusLine() string {
	help := helpStyle.Render(m.helpText())
	right := ""
	switch {
	case m.toast != "" && m.toastErr:
		right = toastErrorStyle.Render(" " + m.toast + " ")
	case m.toast != "":
		right = toastInfoStyle.Render(" " + m.toast + " ")
	default:
		state := m.ctl.State()
		if !state.LastRefresh.IsZero() {
			right = statusStyle.Render("refreshed " + state.LastRefresh.Format("15:04:05"))
		}
	}
	gap := m.width - lipgloss.Width(help) - lipgloss.Width(right)
	if gap < 1 {
		return help
	}
	return help + strings.Repeat(" ", gap) + right
}

func (m *Model) helpText() string {
	if m.confirm.IsOpen() {
		return "←/→ select · enter confirm · esc cancel"
	}
	switch m.mode {
	case uiModeForm:
		return "enter next · esc cancel"
	default:
		if m.sidebar.Selected() == pageAssistant {
			return "enter ask · tab page · ctrl+c quit"
		}
		return "j/k move · tab page · a add · e edit · d delete · c copy · r refresh · x sign out · q quit"
	}
}

func (m *Model) loginView() string {
	body := m.login.View()
	if m.offline {
		body = offlineBannerStyle.Render("offline") + "\n\n" + body
	}
	if m.width <= 0 || m.height <= 0 {
		return body
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, body)
}
