// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - CatalogSource: Loads the animal dataset
//   - EmbeddingService: Turns personality descriptions and queries into vectors
//   - VectorIndexFactory: Builds cosine nearest-neighbour structures
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
//   - CatalogWriter: Persists generated datasets. Only the generate command needs it.
//   - CatalogWatcher: Signals catalog changes so the engine can rebuild.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
