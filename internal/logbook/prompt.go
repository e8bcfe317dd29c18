package logbook

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"movielog/internal/config"
)

// Decision is the answer to a file name conflict.
type Decision int

const (
	DecisionCancel Decision = iota
	DecisionOverwrite
	DecisionCopy
)

func (d Decision) String() string {
	switch d {
	case DecisionOverwrite:
		return "overwrite"
	case DecisionCopy:
		return "copy"
	default:
		return "cancel"
	}
}

// Conflict describes a note whose file name is already taken.
type Conflict struct {
	FileName string
	Path     string
}

// Prompter asks the user how to resolve a conflict.
type Prompter interface {
	ResolveConflict(ctx context.Context, conflict Conflict) (Decision, error)
}

// PrompterFunc adapts a function to Prompter.
type PrompterFunc func(ctx context.Context, conflict Conflict) (Decision, error)

func (f PrompterFunc) ResolveConflict(ctx context.Context, conflict Conflict) (Decision, error) {
	return f(ctx, conflict)
}

// decisionForPolicy maps a fixed on_conflict policy to a decision. ok is
// false for the ask policy.
func decisionForPolicy(policy string) (Decision, bool) {
	switch policy {
	case config.ConflictOverwrite:
		return DecisionOverwrite, true
	case config.ConflictCopy:
		return DecisionCopy, true
	case config.ConflictCancel:
		return DecisionCancel, true
	default:
		return DecisionCancel, false
	}
}

// LinePrompter asks on a text stream: overwrite, create a copy, or cancel.
// Empty input, EOF, and unrecognized answers after three tries all cancel.
type LinePrompter struct {
	In  io.Reader
	Out io.Writer
}

const promptAttempts = 3

func (p LinePrompter) ResolveConflict(ctx context.Context, conflict Conflict) (Decision, error) {
	reader := bufio.NewReader(p.In)
	fmt.Fprintf(p.Out, "File %q already exists.\n", conflict.FileName)
	for attempt := 0; attempt < promptAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return DecisionCancel, err
		}
		fmt.Fprint(p.Out, "What would you like to do? [o]verwrite, create [c]opy, ca[n]cel: ")
		line, err := reader.ReadString('\n')
		answer := strings.ToLower(strings.TrimSpace(line))
		switch answer {
		case "o", "overwrite":
			return DecisionOverwrite, nil
		case "c", "copy", "create copy":
			return DecisionCopy, nil
		case "n", "cancel", "":
			return DecisionCancel, nil
		}
		if err != nil {
			return DecisionCancel, nil
		}
		fmt.Fprintf(p.Out, "Unrecognized answer %q.\n", answer)
	}
	return DecisionCancel, nil
}
