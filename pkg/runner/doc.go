/*
Package runner implements the presentation surfaces and the input loop of adrift.

It acts as the bridge between a session.Orchestrator and the outside world.
Surfaces render what the orchestrator emits and, for interactive use, read the
next line of input.

# Key Components

  - Runner: Reads lines from a Terminal and hands them to the session until EOF or "quit".
  - TextSurface: Interactive terminal with optional markdown rendering.
  - JSONSurface: JSON-Lines events on stdout, one input per line on stdin.
  - Recorder: Collects events in memory, used by the HTTP surface.

# Usage

	surface := runner.NewTextSurface(os.Stdin, os.Stdout, runner.WithRenderer(tui.NewRenderer(0)))
	orch, _ := session.New(completer, surface)

	if err := runner.New(surface, orch).Run(ctx); err != nil {
		log.Fatal(err)
	}
*/
package runner
