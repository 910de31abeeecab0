/*
Package session implements the story terminal's session orchestration.

An Orchestrator routes each line of user input to the right handler: global
commands first, then the greeting, the mode menu or the active mode. It owns
the one-request-in-flight rule through a ports.BusyGuard, so input that
arrives while a completion is pending is dropped instead of queued.

A Manager keeps the orchestrators of concurrent sessions, keyed by a random
session id, for surfaces that serve several players at once.
*/
package session
