// Package services contains clients for the external collaborators: the
// read-only movie catalog API and the identity provider. Both are consumed
// behind interfaces so the UI and session layers can be tested with doubles.
package services
