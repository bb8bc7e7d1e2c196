package capability

import "fmt"

// Validate checks the manage => view rule for every group and returns the set unchanged when it holds.
// The set is rejected as a whole on the first violation; it is never corrected.
func Validate(s Set) (Set, error) {
	for _, d := range catalogue {
		if !d.HasManage() {
			continue
		}

		if *s.manageFlag(d.Group) && !*s.viewFlag(d.Group) {
			return Set{}, fmt.Errorf("%w: %s", ErrInvalidImplication, d.Group)
		}
	}

	return s, nil
}

// Authorize returns Allow iff the flag for (g, a) is set. There is no cascading between flags.
// Requesting manage on a view-only group returns ErrUnsupportedAction.
func Authorize(s Set, g Group, a Action) (Decision, error) {
	granted, err := s.Get(g, a)
	if err != nil {
		return Deny, err
	}

	return Decision(granted), nil
}

// CountGranted returns the number of granted flags across all groups.
func CountGranted(s Set) int {
	count := 0

	for _, d := range catalogue {
		if *s.viewFlag(d.Group) {
			count++
		}

		if d.HasManage() && *s.manageFlag(d.Group) {
			count++
		}
	}

	return count
}
