// Package models contains the shared data model: catalog movies as immutable
// values in the TMDB wire shape, the authenticated identity, and the locally
// persisted history entry with its repository contract.
package models
