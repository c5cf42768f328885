package ui

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/mvx/internal/carousel"
	"github.com/desertthunder/mvx/internal/models"
	"github.com/desertthunder/mvx/internal/repositories"
	"github.com/desertthunder/mvx/internal/routes"
	"github.com/desertthunder/mvx/internal/services"
	"github.com/desertthunder/mvx/internal/session"
	"github.com/desertthunder/mvx/internal/shared"
	"github.com/desertthunder/mvx/internal/store"
	"github.com/desertthunder/mvx/internal/tasks"
	"github.com/desertthunder/mvx/internal/wishlist"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	HomeView ViewState = iota
	SearchView
	DetailView
	WishlistView
	LoginView
	SignupView
)

// ThemeKey is the store key the theme flag persists under.
const ThemeKey = "theme"

// themeRecord is the persisted shape of the theme flag.
type themeRecord struct {
	Theme string `json:"theme"`
}

// Model represents the TUI application state.
type Model struct {
	ctx      context.Context
	view     ViewState
	catalog  services.Catalog
	engine   *tasks.HomeEngine
	session  *session.Manager
	guard    *routes.Guard
	wishlist *wishlist.Manager
	history  *repositories.HistoryRepository
	store    store.Store

	width  int
	height int

	hero         *carousel.Controller
	heroInterval time.Duration
	home         *tasks.HomeData
	homeErr      error
	progressChan chan tasks.ProgressUpdate
	progress     tasks.ProgressUpdate

	homeList     list.Model
	searchList   list.Model
	wishlistList list.Model

	searchInput   textinput.Model
	emailInput    textinput.Model
	passwordInput textinput.Model

	detail      *models.Movie
	detailReq   int
	pendingPath string
	notice      string
	theme       string
	palette     *Palette
	err         error
	help        help.Model
	keys        keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The hero rotation interval comes from config; zero selects the default.
func NewModel(ctx context.Context, catalog services.Catalog, engine *tasks.HomeEngine, sess *session.Manager, guard *routes.Guard, wl *wishlist.Manager, history *repositories.HistoryRepository, s store.Store, heroInterval time.Duration) *Model {
	searchInput := textinput.New()
	searchInput.Placeholder = "Search movies..."

	emailInput := textinput.New()
	emailInput.Placeholder = "email"

	passwordInput := textinput.New()
	passwordInput.Placeholder = "password"
	passwordInput.EchoMode = textinput.EchoPassword

	m := &Model{
		ctx:           ctx,
		view:          HomeView,
		catalog:       catalog,
		engine:        engine,
		session:       sess,
		guard:         guard,
		wishlist:      wl,
		history:       history,
		store:         s,
		heroInterval:  heroInterval,
		searchInput:   searchInput,
		emailInput:    emailInput,
		passwordInput: passwordInput,
		theme:         "dark",
		palette:       darkPalette,
		help:          help.New(),
		keys:          newKeyMap(),
	}
	m.loadTheme()
	return m
}

// Init kicks off session resolution and the landing fetch concurrently.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.resolveSession(), m.loadHome())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		for _, l := range []*list.Model{&m.homeList, &m.searchList, &m.wishlistList} {
			if l.Width() == 0 {
				l.SetSize(msg.Width-4, msg.Height-10)
			}
		}
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case HomeView:
			return m.handleHomeKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case WishlistView:
			return m.handleWishlistKeys(msg)
		case LoginView, SignupView:
			return m.handleAuthKeys(msg)
		}

	case carousel.TickMsg:
		if m.hero == nil {
			return m, nil
		}
		return m, m.hero.Tick(msg)

	case sessionResolvedMsg:
		if m.pendingPath != "" {
			path := m.pendingPath
			m.pendingPath = ""
			return m, m.navigate(path)
		}
		return m, nil

	case homeLoadedMsg:
		if msg.err != nil {
			m.homeErr = msg.err
			return m, nil
		}
		m.home = msg.data
		m.homeErr = nil
		m.buildHomeList()
		m.hero = carousel.NewController(msg.data.Hero, m.heroInterval)
		return m, m.hero.Start()

	case homeProgressMsg:
		m.progress = tasks.ProgressUpdate(msg)
		return m, m.waitForProgress()

	case searchResultsMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.buildSearchList(msg.query, msg.page.Results)
		return m, nil

	case detailFetchedMsg:
		// A result from an abandoned detail view carries an old request id
		// and is dropped, the same way stale carousel ticks are.
		if msg.req != m.detailReq {
			return m, nil
		}
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.detail = msg.movie
		return m, nil

	case authCompleteMsg:
		if msg.err != nil {
			m.notice = fmt.Sprintf("Sign-in failed: %v", msg.err)
			return m, nil
		}
		m.notice = ""
		m.emailInput.Reset()
		m.passwordInput.Reset()
		if remembered := m.guard.ConsumeRemembered(); remembered != "" {
			return m, m.navigate(remembered)
		}
		m.view = HomeView
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	switch m.view {
	case HomeView:
		return m.renderHome()
	case SearchView:
		return m.renderSearch()
	case DetailView:
		return m.renderDetail()
	case WishlistView:
		return m.renderWishlist()
	case LoginView:
		return m.renderAuth("Sign In", "enter: sign in • tab: create account")
	case SignupView:
		return m.renderAuth("Create Account", "enter: sign up • tab: sign in instead")
	default:
		return ""
	}
}

// navigate routes through the guard before switching views.
//
// Defer leaves the current view in place and replays the navigation once the
// session resolves. RedirectToLogin swaps to the login form with the intended
// destination remembered by the guard.
func (m *Model) navigate(path string) tea.Cmd {
	decision := m.guard.Check(path)
	switch decision.Kind {
	case routes.Defer:
		m.pendingPath = path
		m.notice = "Checking session..."
		return nil
	case routes.RedirectToLogin:
		m.notice = "Sign in to continue"
		m.view = LoginView
		m.focusEmail()
		return nil
	}
	return m.open(path)
}

// open switches to the view for an allowed destination.
func (m *Model) open(path string) tea.Cmd {
	m.notice = ""
	switch {
	case path == routes.WishlistPath:
		m.buildWishlistList()
		m.view = WishlistView
		return nil
	case strings.HasPrefix(path, routes.MoviePrefix):
		id, err := strconv.ParseInt(strings.TrimPrefix(path, routes.MoviePrefix), 10, 64)
		if err != nil {
			return nil
		}
		m.detail = nil
		m.err = nil
		m.view = DetailView
		return m.fetchDetail(id)
	case path == routes.SearchPath:
		m.view = SearchView
		m.searchInput.Focus()
		return textinput.Blink
	case path == routes.LoginPath:
		m.view = LoginView
		m.focusEmail()
		return textinput.Blink
	case path == routes.SignupPath:
		m.view = SignupView
		m.focusEmail()
		return textinput.Blink
	default:
		m.view = HomeView
		return nil
	}
}

func (m *Model) handleHomeKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.search):
		return m, m.navigate(routes.SearchPath)
	case key.Matches(msg, m.keys.saved):
		return m, m.navigate(routes.WishlistPath)
	case key.Matches(msg, m.keys.next):
		if m.hero != nil {
			m.hero.Next()
		}
		return m, nil
	case key.Matches(msg, m.keys.prev):
		if m.hero != nil {
			m.hero.Prev()
		}
		return m, nil
	case key.Matches(msg, m.keys.theme):
		m.toggleTheme()
		return m, nil
	case key.Matches(msg, m.keys.retry):
		if m.homeErr != nil {
			m.homeErr = nil
			return m, m.loadHome()
		}
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.homeList.SelectedItem().(movieItem); ok {
			return m, m.toggleWishlist(item.movie)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.homeList.SelectedItem().(movieItem); ok {
			return m, m.navigate(routes.DetailPath(item.movie.ID))
		}
		if hero, ok := m.heroSelected(); ok {
			return m, m.navigate(routes.DetailPath(hero.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.homeList, cmd = m.homeList.Update(msg)
	return m, cmd
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		if m.searchInput.Focused() {
			m.searchInput.Blur()
			return m, nil
		}
		m.view = HomeView
		return m, nil
	case "enter":
		if m.searchInput.Focused() {
			query := strings.TrimSpace(m.searchInput.Value())
			if query == "" {
				return m, nil
			}
			m.searchInput.Blur()
			return m, m.runSearch(query)
		}
		if item, ok := m.searchList.SelectedItem().(movieItem); ok {
			return m, m.navigate(routes.DetailPath(item.movie.ID))
		}
		return m, nil
	case "/":
		if !m.searchInput.Focused() {
			m.searchInput.Focus()
			return m, textinput.Blink
		}
	case "s":
		if !m.searchInput.Focused() {
			if item, ok := m.searchList.SelectedItem().(movieItem); ok {
				return m, m.toggleWishlist(item.movie)
			}
			return m, nil
		}
	case "q":
		if !m.searchInput.Focused() {
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	if m.searchInput.Focused() {
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
	m.searchList, cmd = m.searchList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.detail = nil
		m.err = nil
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if m.detail != nil {
			return m, m.toggleWishlist(*m.detail)
		}
		return m, nil
	case key.Matches(msg, m.keys.saved):
		return m, m.navigate(routes.WishlistPath)
	}
	return m, nil
}

func (m *Model) handleWishlistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = HomeView
		return m, nil
	case key.Matches(msg, m.keys.toggle):
		if item, ok := m.wishlistList.SelectedItem().(movieItem); ok {
			cmd := m.toggleWishlist(item.movie)
			m.buildWishlistList()
			return m, cmd
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.wishlistList.SelectedItem().(movieItem); ok {
			return m, m.navigate(routes.DetailPath(item.movie.ID))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.wishlistList, cmd = m.wishlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleAuthKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.notice = ""
		m.view = HomeView
		return m, nil
	case "tab":
		if m.emailInput.Focused() || !m.passwordInput.Focused() {
			if m.view == LoginView {
				m.view = SignupView
			} else {
				m.view = LoginView
			}
			m.focusEmail()
			return m, nil
		}
	case "enter":
		if m.emailInput.Focused() {
			m.emailInput.Blur()
			m.passwordInput.Focus()
			return m, textinput.Blink
		}
		email := strings.TrimSpace(m.emailInput.Value())
		password := m.passwordInput.Value()
		if email == "" || password == "" {
			m.notice = "Email and password are required"
			return m, nil
		}
		if m.view == SignupView {
			return m, m.submitSignup(email, password)
		}
		return m, m.submitLogin(email, password)
	}

	var cmd tea.Cmd
	if m.emailInput.Focused() {
		m.emailInput, cmd = m.emailInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case HomeView:
		m.homeList, cmd = m.homeList.Update(msg)
	case SearchView:
		m.searchList, cmd = m.searchList.Update(msg)
	case WishlistView:
		m.wishlistList, cmd = m.wishlistList.Update(msg)
	}
	return m, cmd
}

// toggleWishlist adds or removes a movie, treating the toggle as a protected
// action: signed-out users are sent to the login view first.
func (m *Model) toggleWishlist(movie models.Movie) tea.Cmd {
	if decision := m.guard.Check(routes.WishlistPath); decision.Kind != routes.Allow {
		return m.navigate(routes.WishlistPath)
	}

	if m.wishlist.Contains(movie.ID) {
		m.wishlist.Remove(movie.ID)
	} else {
		m.wishlist.Add(movie)
	}
	return nil
}

func (m *Model) toggleTheme() {
	if m.theme == "dark" {
		m.theme = "light"
		m.palette = lightPalette
	} else {
		m.theme = "dark"
		m.palette = darkPalette
	}

	raw, err := json.Marshal(themeRecord{Theme: m.theme})
	if err != nil {
		return
	}
	m.store.Save(ThemeKey, raw)
}

func (m *Model) loadTheme() {
	raw := m.store.Load(ThemeKey)
	if raw == nil {
		return
	}

	var rec themeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return
	}
	if rec.Theme == "light" {
		m.theme = "light"
		m.palette = lightPalette
	}
}

func (m *Model) focusEmail() {
	m.passwordInput.Blur()
	m.emailInput.Focus()
}

func (m *Model) heroSelected() (models.Movie, bool) {
	if m.hero == nil {
		return models.Movie{}, false
	}
	return m.hero.Current()
}

func (m *Model) resolveSession() tea.Cmd {
	return func() tea.Msg {
		return sessionResolvedMsg{state: m.session.Resolve(m.ctx)}
	}
}

func (m *Model) loadHome() tea.Cmd {
	m.progressChan = make(chan tasks.ProgressUpdate, 8)

	go func() {
		data, err := m.engine.Load(m.ctx, m.progressChan)
		m.home = data
		m.homeErr = err
		close(m.progressChan)
	}()

	return m.waitForProgress()
}

func (m *Model) waitForProgress() tea.Cmd {
	return func() tea.Msg {
		if m.progressChan == nil {
			return homeLoadedMsg{data: m.home, err: m.homeErr}
		}

		update, ok := <-m.progressChan
		if !ok {
			m.progressChan = nil
			return homeLoadedMsg{data: m.home, err: m.homeErr}
		}
		return homeProgressMsg(update)
	}
}

func (m *Model) runSearch(query string) tea.Cmd {
	return func() tea.Msg {
		page, err := m.catalog.Search(m.ctx, query)
		return searchResultsMsg{query: query, page: page, err: err}
	}
}

func (m *Model) fetchDetail(id int64) tea.Cmd {
	m.detailReq++
	req := m.detailReq
	return func() tea.Msg {
		movie, err := m.catalog.Detail(m.ctx, id)
		if err == nil && m.history != nil {
			// History is best effort; a write failure never blocks the view.
			_ = m.history.Create(models.NewHistoryEntry(0, movie.ID, movie.Title, movie.PosterPath))
		}
		return detailFetchedMsg{movie: movie, err: err, req: req}
	}
}

func (m *Model) submitLogin(email, password string) tea.Cmd {
	return func() tea.Msg {
		return authCompleteMsg{err: m.session.Login(m.ctx, email, password)}
	}
}

func (m *Model) submitSignup(email, password string) tea.Cmd {
	return func() tea.Msg {
		return authCompleteMsg{err: m.session.Signup(m.ctx, email, password)}
	}
}

func (m *Model) buildHomeList() {
	var items []list.Item
	for _, movie := range m.home.Trending {
		items = append(items, movieItem{movie: movie, section: "Trending"})
	}
	for _, movie := range m.home.Popular {
		items = append(items, movieItem{movie: movie, section: "Popular"})
	}
	for _, movie := range m.home.TopRated {
		items = append(items, movieItem{movie: movie, section: "Top Rated"})
	}

	m.homeList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.homeList.Title = "Discover"
	m.homeList.SetShowHelp(false)
	m.homeList.SetSize(m.width-4, m.height-10)
}

func (m *Model) buildSearchList(query string, movies []models.Movie) {
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}

	m.searchList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.searchList.Title = fmt.Sprintf("Results for '%s'", query)
	m.searchList.SetShowHelp(false)
	m.searchList.SetSize(m.width-4, m.height-10)
}

func (m *Model) buildWishlistList() {
	movies := m.wishlist.All()
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}

	m.wishlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.wishlistList.Title = fmt.Sprintf("Wishlist (%d)", len(movies))
	m.wishlistList.SetShowHelp(false)
	m.wishlistList.SetSize(m.width-4, m.height-10)
}

func (m *Model) renderHome() string {
	if m.homeErr != nil {
		body := m.palette.err.Render(fmt.Sprintf("Failed to load the home screen: %v", m.homeErr))
		hint := m.palette.help.Render("r: retry • q: quit")
		return fmt.Sprintf("%s\n\n%s", body, hint)
	}

	if m.home == nil {
		msg := m.progress.Message
		if msg == "" {
			msg = "Loading..."
		}
		return m.palette.title.Render("mvx") + "\n\n" + msg
	}

	hero := m.renderHero()
	helpKeys := []key.Binding{m.keys.enter, m.keys.search, m.keys.saved, m.keys.toggle, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	sections := []string{hero, m.homeList.View(), helpView}
	if m.notice != "" {
		sections = append([]string{m.palette.warn.Render(m.notice)}, sections...)
	}
	return strings.Join(sections, "\n\n")
}

func (m *Model) renderHero() string {
	movie, ok := m.heroSelected()
	if !ok {
		return m.palette.help.Render("Nothing trending right now")
	}

	dots := make([]string, m.hero.Len())
	for i := range dots {
		if i == m.hero.Index() {
			dots[i] = "●"
		} else {
			dots[i] = "○"
		}
	}

	title := m.palette.title.Render(fmt.Sprintf("%s (%s)", movie.Title, movie.Year()))
	overview := movie.Overview
	if len(overview) > 200 {
		overview = overview[:200] + "..."
	}

	saved := ""
	if m.wishlist.Contains(movie.ID) {
		saved = m.palette.ok.Render(" ♥ saved")
	}

	return fmt.Sprintf("%s%s\n%s\n%s", title, saved, overview, strings.Join(dots, " "))
}

func (m *Model) renderSearch() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.back, m.keys.quit})

	body := m.searchList.View()
	if m.err != nil {
		body = m.palette.err.Render(fmt.Sprintf("Search failed: %v", m.err))
	}
	return fmt.Sprintf("%s\n\n%s\n\n%s", m.searchInput.View(), body, helpView)
}

func (m *Model) renderDetail() string {
	if m.err != nil {
		body := m.palette.err.Render(fmt.Sprintf("Failed to load movie: %v", m.err))
		if errors.Is(m.err, shared.ErrMovieNotFound) {
			body = m.palette.err.Render("Movie not found")
		}
		hint := m.palette.help.Render("esc: back • q: quit")
		return fmt.Sprintf("%s\n\n%s", body, hint)
	}
	if m.detail == nil {
		return "Loading movie..."
	}

	movie := m.detail
	title := m.palette.title.Render(fmt.Sprintf("%s (%s)", movie.Title, movie.Year()))

	var b strings.Builder
	b.WriteString(title)
	b.WriteString("\n")
	if movie.Tagline != "" {
		b.WriteString(m.palette.help.Render(movie.Tagline))
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("\n★ %.1f", movie.VoteAverage))
	if movie.Runtime > 0 {
		b.WriteString(fmt.Sprintf(" • %dm", movie.Runtime))
	}
	if len(movie.Genres) > 0 {
		names := make([]string, len(movie.Genres))
		for i, g := range movie.Genres {
			names[i] = g.Name
		}
		b.WriteString(" • " + strings.Join(names, ", "))
	}
	b.WriteString("\n\n")
	b.WriteString(movie.Overview)

	if trailer := movie.Trailer(); trailer != nil && trailer.Site == "YouTube" {
		b.WriteString(fmt.Sprintf("\n\nTrailer: https://www.youtube.com/watch?v=%s", trailer.Key))
	}

	if movie.Recommendations != nil && len(movie.Recommendations.Results) > 0 {
		b.WriteString("\n\nYou might also like:")
		max := len(movie.Recommendations.Results)
		if max > 5 {
			max = 5
		}
		for _, rec := range movie.Recommendations.Results[:max] {
			b.WriteString(fmt.Sprintf("\n  • %s (%s)", rec.Title, rec.Year()))
		}
	}

	if m.wishlist.Contains(movie.ID) {
		b.WriteString("\n\n" + m.palette.ok.Render("♥ on your wishlist"))
	}

	helpView := m.help.ShortHelpView([]key.Binding{m.keys.toggle, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", b.String(), helpView)
}

func (m *Model) renderWishlist() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.enter, m.keys.toggle, m.keys.back, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.wishlistList.View(), helpView)
}

func (m *Model) renderAuth(title, hint string) string {
	var b strings.Builder
	b.WriteString(m.palette.title.Render(title))
	b.WriteString("\n")
	if m.notice != "" {
		b.WriteString(m.palette.warn.Render(m.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.emailInput.View())
	b.WriteString("\n")
	b.WriteString(m.passwordInput.View())
	b.WriteString("\n\n")
	b.WriteString(m.palette.help.Render(hint + " • esc: back"))
	return b.String()
}
