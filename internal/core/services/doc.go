// Package services implements the driving port interfaces.
// Services contain the matching logic and orchestrate
// calls to driven ports (adapters).
//
//   - BuildQuery turns adopter preferences into query text.
//   - CatalogIndexer embeds a catalog and builds its cosine index.
//   - MatchService publishes index snapshots and answers FindMatches.
//   - SettingsService maps config keys to domain.AppSettings.
package services
