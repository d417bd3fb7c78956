// Package notify prints styled, symbol-prefixed status lines for jenkins-manager commands.
//
// Each [MessageType] maps to a symbol and color: error (✗), warning (⚠), activity (►),
// generate (✚), success (✔), info (ℹ) and titles prefixed by an emoji. Success messages
// carrying a [timer.Timer] are followed by a timing block.
//
// [StageSeparatingWriter] inserts a blank line before every title that follows earlier
// output, so provisioning stages read as separate blocks.
package notify
