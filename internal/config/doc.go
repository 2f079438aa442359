// Package config loads the keymask form configuration.
//
// Configuration is resolved in layers, higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← KEYMASK_*, optionally from .env
//	├─────────────────────────────┤
//	│  2. Config File             │  ← keymask.toml or keymask.yaml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← the demo form
//	└─────────────────────────────┘
//
// A config file holds four sections:
//
//	[logging]
//	level = "debug"
//	file = "keymask.log"
//
//	[theme]
//	focus = "#5fafff"
//
//	[defaults]
//	locale = "de-DE"
//	currency = "EUR"
//
//	[[fields]]
//	name = "phone"
//	kind = "pattern"
//	mask = "phone"
//
//	[[fields]]
//	name = "amount"
//	kind = "currency"
//
// When a file declares fields they replace the built-in form. Currency
// fields without a locale or currency take them from [defaults].
//
// Environment variables override logging, theme and defaults:
//
//	KEYMASK_LOG_LEVEL=debug
//	KEYMASK_DEFAULT_LOCALE=fr-FR
//	KEYMASK_THEME_FOCUS=#ff8700
package config
