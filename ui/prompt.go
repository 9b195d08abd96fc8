package ui

import (
	"errors"
	"fmt"

	"github.com/ncruces/zenity"
)

// PromptName asks for a custom name with a native dialog. It blocks until the
// dialog closes; ok is false if the user cancelled.
func PromptName(current string) (name string, ok bool, err error) {
	name, err = zenity.Entry("Name to spell after \"I Love You\":",
		zenity.Title("Custom name"),
		zenity.EntryText(current),
	)
	if errors.Is(err, zenity.ErrCanceled) {
		return current, false, nil
	}
	if err != nil {
		return current, false, fmt.Errorf("name prompt: %w", err)
	}
	return name, true, nil
}
