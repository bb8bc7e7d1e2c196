// Package capability defines the closed catalogue of manager permissions and
// the evaluator that decides allow/deny for a (group, action) pair.
//
// A manager's access profile is a Set of 15 boolean flags spread over eight
// resource groups. Seven groups carry a view and a manage flag, Analytics is
// view-only. A manage flag is only meaningful together with its view flag:
// Validate rejects any Set where manage is granted without view.
//
// # Schema
//
//   - ListGroups: ordered group descriptors used for display and iteration
//   - Default: the initial grant for newly provisioned managers
//
// # Evaluator
//
//   - Validate: reject sets that break the manage => view rule
//   - Authorize: allow iff the exact flag for (group, action) is set
//   - CountGranted: number of granted flags, for listings and audit
//
// Example usage:
//
//	set := capability.Default()
//	set.Put(capability.Rents, capability.Manage, true)
//
//	if _, err := capability.Validate(set); err != nil {
//	    // errors.Is(err, capability.ErrInvalidImplication) when rents view is off
//	}
//
//	decision, err := capability.Authorize(set, capability.Rents, capability.Manage)
package capability
