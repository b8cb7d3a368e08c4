/*
Package session provides safe concurrent access to session state.

The engine itself is stateless; the webhook transport uses the Manager to
serialize turns that target the same session, locally via ref-counted
mutexes and, when replicated, via an optional distributed locker.
*/
package session
