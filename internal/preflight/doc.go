// Package preflight provides readiness checks for the directories and the
// metadata service movielog depends on.
//
// The CLI "movielog status" command runs RunAll and renders the results;
// individual checks (CheckDirectoryAccess, CheckOMDb) are usable on their own.
package preflight
