// Package vault manages the folder that receives rendered notes.
//
// ResolveUnique picks a collision-free file name by trying "<stem> (N)<ext>"
// candidates. Each candidate gets a plain existence check, so another
// process may claim the same name between the check and the caller's write. Callers that
// can race with other writers should use Vault.CreateExclusive, which creates
// the file with O_EXCL and re-resolves on conflict.
//
// Overwrites go through a temporary file in the same directory followed by a
// rename so a crash never leaves a half-written note behind.
package vault
