/*
Package ports defines the driven ports (interfaces) for the Skene engine.

These interfaces decouple the core scene machine from external
implementations, allowing it to work with various content sources, session
stores, and transports.

# Key Interfaces

  - ContentStore: read-only access to the question and persona tables.
  - SessionStore: persistence of per-session state for the transport layer.
  - DistributedLocker: distributed locking for concurrent session access.
  - TurnEngine: the driving port transport adapters consume.
*/
package ports
