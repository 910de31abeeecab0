package adrift_test

import (
	"context"
	"os"
	"strings"

	"github.com/aretw0/adrift/pkg/ports"
	"github.com/aretw0/adrift/pkg/runner"
	"github.com/aretw0/adrift/pkg/session"
)

func Example() {
	completer := ports.CompleterFunc(func(ctx context.Context, prompt, role string) (string, error) {
		return "The tide is calm.\n1. Swim\n2. Float\n3. Rest", nil
	})
	surface := runner.NewTextSurface(strings.NewReader(""), os.Stdout)

	orch, err := session.New(completer, surface)
	if err != nil {
		panic(err)
	}

	orch.Greet()
	if err := orch.Handle(context.Background(), "adrift"); err != nil {
		panic(err)
	}

	// Output:
	// Greetings wanderer,
	// Type 'adrift' to start or 'roadmap' to see what's next.
	// Start wandering (1,2,3):
	// 1. Adrift - Let your mind wander through a relaxing story
	// 2. Evaluate - Analyze your personality through an evolving narrative
	// 3. Adventure - Choose a theme and embark on a unique journey
}
