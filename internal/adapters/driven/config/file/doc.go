// Package file provides file-based configuration and prompt storage
// under the Deckdex config directory.
package file
