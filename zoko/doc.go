// Package zoko implements a Discord community-management bot: moderation
// helpers (warnings, tickets, registration), a per-guild leveling system,
// and a handful of turn-based mini-games (Blackjack, XOX, taş-kağıt-makas,
// Wordle) played through slash commands and message components.
//
// The game engines are pure state machines over in-memory session
// registries - they perform no I/O of their own. Discord wiring, embed
// rendering and persistence live at the handler boundary, so the engines
// can be tested without a gateway connection or a database.
//
// Persistence uses GORM (SQLite by default, PostgreSQL optional). A small
// gin-based status API exposes health and usage information.
package zoko
