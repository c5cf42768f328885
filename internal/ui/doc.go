// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view movie discovery workflow:
//  1. [HomeView] : Hero carousel plus trending/popular/top-rated sections
//  2. [SearchView] : Query the catalog by title
//  3. [DetailView] : Full movie record with trailer and recommendations
//  4. [WishlistView] : Saved movies, toggled from any view
//  5. [LoginView] / [SignupView] : Email and password forms
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// Navigation runs through the route guard: protected destinations defer while
// the session resolves and redirect to the login view when signed out, returning
// to the remembered destination after sign-in.
// Progress updates flow through a channel from the HomeEngine, providing non-blocking status reporting during the landing fetch.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
