/*
Package domain contains the core value types of the Skene engine: the turn
Request and Reply contracts, the session-state blob and its typed view, quiz
records, and lifecycle events.

These types are dependency-light and shared by the scene machine, the
storage adapters, and the transport layer.
*/
package domain
