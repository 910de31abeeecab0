/*
Package ports defines the driven ports (interfaces) of the adrift story terminal.

These interfaces decouple the narrative core from external implementations, allowing
the modes and the orchestrator to work with any completion backend, any presentation
surface and any busy-guard backend.

# Key Interfaces

  - Completer: Sends a (prompt, system role) pair to a chat-completion backend.
  - Surface: Renders lines, menus and mode intros and toggles the input affordance.
  - Terminal: A Surface that can also read the next line of user input.
  - BusyGuard: Enforces the one-request-in-flight rule per session.
*/
package ports
