// Package domain contains the core business entities for chatvault:
// conversations mirrored from remote chat services, their messages, sync
// planning decisions, and search types. It has no dependencies on adapters
// or infrastructure.
package domain
