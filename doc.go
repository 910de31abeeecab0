/*
Package adrift is an interactive storytelling terminal backed by a chat-completion API.

A session greets the user, waits for the trigger word and then offers three story modes.
Each turn sends a prompt to the completion backend, parses the numbered choices out of the
answer and waits for the user to pick one.

# Modes

  - Wander (1): An open-ended relaxing story. After ten turns a reflection can be requested.
  - Evaluate (2): Twenty scenarios; every choice is scored on five personality traits.
  - Adventure (3): A themed story in twenty chapters across four narrative phases.

# Architecture

The narrative core (pkg/modes, pkg/session) only talks to ports (pkg/ports): a Completer for
the model and a Surface for presentation. Adapters provide the OpenAI-compatible client,
in-memory and Redis busy guards, and the HTTP server; pkg/runner provides the terminal
surfaces and the input loop.

# Usage

	completer := completion.WithFallback(openai.New(openai.Config{APIKey: key}))
	surface := runner.NewTextSurface(os.Stdin, os.Stdout)

	orch, err := session.New(completer, surface)
	if err != nil {
		log.Fatal(err)
	}
	if err := runner.New(surface, orch).Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package adrift
