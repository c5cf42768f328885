// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// browseCommand handles catalog browsing operations
func browseCommand(r *Runner) *cli.Command {
	jsonFlags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
			Value: true,
		},
	}

	return &cli.Command{
		Name:    "browse",
		Aliases: []string{"b"},
		Usage:   "Browse the movie catalog",
		Commands: []*cli.Command{
			{
				Name:   "home",
				Usage:  "Fetch the full landing view (trending, popular, top rated)",
				Flags:  jsonFlags,
				Action: r.BrowseHome,
			},
			{
				Name:   "trending",
				Usage:  "This week's trending movies",
				Flags:  jsonFlags,
				Action: r.BrowseTrending,
			},
			{
				Name:   "popular",
				Usage:  "Current popular movies",
				Flags:  jsonFlags,
				Action: r.BrowsePopular,
			},
			{
				Name:    "top-rated",
				Aliases: []string{"top"},
				Usage:   "All-time top rated movies",
				Flags:   jsonFlags,
				Action:  r.BrowseTopRated,
			},
			{
				Name:  "detail",
				Usage: "Full record for one movie, including trailer and recommendations",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Flags:  jsonFlags,
				Action: r.BrowseDetail,
			},
		},
	}
}

// searchCommand queries the catalog by title
func searchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "search",
		Usage: "Search the catalog by title",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "query",
			},
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Output raw JSON",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Usage: "Pretty-print output",
				Value: true,
			},
		},
		Action: r.Search,
	}
}

// authCommand handles authentication operations
func authCommand(r *Runner) *cli.Command {
	credentialFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "email",
			Aliases: []string{"e"},
			Usage:   "Account email",
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Account password",
		},
	}

	return &cli.Command{
		Name:  "auth",
		Usage: "Manage the signed-in session",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Sign in with email/password or through the browser",
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "browser",
						Usage: "Complete sign-in in the system browser",
					},
				}, credentialFlags...),
				Action: r.AuthLogin,
			},
			{
				Name:   "signup",
				Usage:  "Create a new account",
				Flags:  credentialFlags,
				Action: r.AuthSignup,
			},
			{
				Name:   "logout",
				Usage:  "Revoke the current session",
				Action: r.AuthLogout,
			},
			{
				Name:   "whoami",
				Usage:  "Show the current session state",
				Action: r.AuthWhoami,
			},
		},
	}
}

// wishlistCommand manages the persisted wishlist
func wishlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "wishlist",
		Aliases: []string{"wl"},
		Usage:   "Manage your movie wishlist",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show saved movies",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
						Value: true,
					},
				},
				Action: r.WishlistList,
			},
			{
				Name:  "add",
				Usage: "Save a movie by catalog ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.WishlistAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a movie by catalog ID",
				Arguments: []cli.Argument{
					&cli.StringArg{
						Name: "id",
					},
				},
				Action: r.WishlistRemove,
			},
			{
				Name:   "clear",
				Usage:  "Remove every saved movie",
				Action: r.WishlistClear,
			},
			{
				Name:  "export",
				Usage: "Export the wishlist to CSV, Markdown, or plain text",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Export format: csv, markdown, or text",
						Value:   "csv",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output path (base filename or directory)",
					},
				},
				Action: r.WishlistExport,
			},
		},
	}
}

// historyCommand inspects the local view history
func historyCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "history",
		Usage: "Movie detail views recorded locally",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show recent views, most recent first",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of entries to return",
						Value: 20,
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.HistoryList,
			},
			{
				Name:   "clear",
				Usage:  "Delete all recorded views",
				Action: r.HistoryClear,
			},
		},
	}
}

// setupCommand handles setup operations for the local database.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize the local database and config file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.SetupDatabase,
	}
}

// tuiCommand returns the top-level TUI command for interactive discovery.
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "tui",
		Aliases: []string{"interactive", "ui"},
		Usage:   "Launch the interactive discovery TUI",
		Action:  r.TUI,
	}
}
