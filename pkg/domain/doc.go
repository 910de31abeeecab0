/*
Package domain contains the core models of the adrift story terminal.

It defines the values the narrative state machines exchange: the parsed StoryContext,
the per-turn history snapshot, adventure Themes and Phases, and the Evaluate trait vector.
This package is kept pure and free of external dependencies like I/O or transport,
following Hexagonal Architecture principles.

# Key Entities

  - StoryContext: The scenario text and ordered choices produced by the most recent turn.
  - Turn: A snapshot of what the user picked and the scenario it was picked from.
  - Theme: An adventure preset fixing tone and system instructions.
  - Traits: Evaluate mode's five running personality-score means.
*/
package domain
