package ports

import "context"

// MenuOption is one entry of the mode selection menu.
type MenuOption struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Surface is the presentation collaborator the core renders into.
// It is intentionally narrow: the core never touches terminals, DOMs or sockets.
type Surface interface {
	// AppendLine renders text. Text may span several lines.
	AppendLine(text string)

	// ShowMenu renders the mode selection menu.
	ShowMenu(options []MenuOption)

	// ShowModeIntro renders the introduction of the mode about to start.
	ShowModeIntro(modeID string)

	// SetInputEnabled toggles the user-visible busy indicator.
	SetInputEnabled(enabled bool)
}

// Terminal is a Surface that can also collect user input.
type Terminal interface {
	Surface

	// ReadLine blocks until the user submits a line or ctx is done.
	// It returns io.EOF when the input source is exhausted.
	ReadLine(ctx context.Context) (string, error)
}
