// Package driven defines the driven ports (secondary adapters) of the
// doclens engine: persistence stores, the run catalog and the knowledge
// miners. Implementations live under internal/adapters/driven and
// internal/miners.
package driven
