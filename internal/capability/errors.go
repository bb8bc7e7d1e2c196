package capability

import "errors"

var (
	// ErrInvalidImplication is returned when a manage flag is granted while the view flag of the same group is not.
	ErrInvalidImplication = errors.New("manage permission requires view permission")

	// ErrUnsupportedAction is returned when an action is requested on a group that does not support it
	// (manage on Analytics). This is a programming error, not a deny.
	ErrUnsupportedAction = errors.New("action not supported for group")

	// ErrUnknownGroup is returned when a group value or name is outside the catalogue.
	ErrUnknownGroup = errors.New("unknown permission group")

	// ErrUnknownAction is returned when an action value or name is neither view nor manage.
	ErrUnknownAction = errors.New("unknown permission action")
)
