// Package report renders election tallies: vote shares per candidate and
// Markdown tables for terminals and logs.
package report
