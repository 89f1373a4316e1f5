package cli

import (
	"errors"

	"github.com/charmbracelet/huh"
)

// PromptConfirm shows a yes/no prompt. Aborting counts as "no".
func PromptConfirm(title, description string) (bool, error) {
	var confirmed bool
	err := huh.NewConfirm().
		Title(title).
		Description(description).
		Affirmative("Yes").
		Negative("No").
		Value(&confirmed).
		Run()
	if err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return false, nil
		}
		return false, err
	}
	return confirmed, nil
}
