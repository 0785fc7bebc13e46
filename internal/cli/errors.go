package cli

import (
	"errors"
	"fmt"

	"zenban/internal/api"
)

// api403Notice renders an error for the transient notice line:
// authorization failures get the server detail (or a permission
// message), everything else the generic fallback.
func api403Notice(err error, fallback string) string {
	if api.IsForbidden(err) {
		return api.Detail(err, "You don't have permission to do that.")
	}
	return api.Detail(err, fallback)
}

func deleteBoardFailure(err error) string {
	return api403Notice(err, "Could not delete board.")
}

// commandError translates transport errors into user-facing command
// output. Session expiry points the user at login instead of dumping
// the raw error.
func commandError(err error) error {
	if errors.Is(err, api.ErrSessionExpired) {
		return fmt.Errorf("session expired; run `zenban login`")
	}
	if errors.Is(err, api.ErrNotLoggedIn) {
		return fmt.Errorf("not logged in; run `zenban login`")
	}
	return err
}
