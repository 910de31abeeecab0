/*
Package parser splits free-form model output into a domain.StoryContext.

The storyteller is asked for a short scenario followed by numbered choices, but nothing
guarantees the answer respects that shape. Parse applies line-prefix heuristics configured
by Rules and never fails: missing or extra choices simply produce a short or long list.

Each mode has historically parsed slightly differently; those variants are kept as the
named presets Wander, Evaluate and Adventure.
*/
package parser
