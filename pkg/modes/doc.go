/*
Package modes implements the three narrative state machines of adrift.

Each Mode owns its turn counter, its choice history and the story context
parsed from the last model response. Modes render into a ports.Surface and
request text through a ports.Completer; they never read input themselves.

  - Wander: an open-ended relaxing exploration. From turn 10 a 4th option
    asks for a reflective summary of the journey so far.
  - Evaluate: twenty scenarios whose choices are scored on five personality
    traits, ending in a sarcastic analysis.
  - Adventure: a twenty-chapter themed story with an escalating dramatic arc
    and a recap at the end.

State is committed only once every completion of a turn succeeded, so a turn
that fails or times out can be retried with the same token.
*/
package modes
