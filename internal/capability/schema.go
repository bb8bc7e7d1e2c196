package capability

import (
	"fmt"
	"strings"
)

// Group is one of the eight resource groups permissions are organised under.
type Group int

const (
	// Guests covers guest records.
	Guests Group = iota
	// Rents covers monthly rent entries.
	Rents
	// Payments covers payment submissions and their verification.
	Payments
	// Complaints covers guest complaints.
	Complaints
	// Expenses covers property expenses.
	Expenses
	// Rooms covers rooms and beds.
	Rooms
	// Announcements covers notices published to guests.
	Announcements
	// Analytics covers financial dashboards. View-only.
	Analytics
)

// Action is the kind of access requested on a group.
type Action string

const (
	// View allows reading the group's resources.
	View Action = "view"
	// Manage allows mutating the group's resources.
	Manage Action = "manage"
)

// Decision is the outcome of an authorization check.
type Decision bool

const (
	// Deny rejects the request.
	Deny Decision = false
	// Allow permits the request.
	Allow Decision = true
)

func (d Decision) String() string {
	if d {
		return "allow"
	}

	return "deny"
}

// Descriptor describes one group as presented to callers building permission toggles.
type Descriptor struct {
	Group       Group  `json:"group"`
	Label       string `json:"label"`
	ViewKey     string `json:"viewKey"`
	ManageKey   string `json:"manageKey,omitempty"`
	ManageLabel string `json:"manageLabel,omitempty"`
}

// HasManage reports whether the group carries a manage flag.
func (d Descriptor) HasManage() bool {
	return d.ManageKey != ""
}

var catalogue = [...]Descriptor{ //nolint:gochecknoglobals
	{Group: Guests, Label: "Guests", ViewKey: "can_view_guests", ManageKey: "can_manage_guests", ManageLabel: "Add/Edit/Delete"},
	{Group: Rents, Label: "Rents", ViewKey: "can_view_rents", ManageKey: "can_manage_rents", ManageLabel: "Mark Paid"},
	{Group: Payments, Label: "Payments", ViewKey: "can_view_payments", ManageKey: "can_verify_payments", ManageLabel: "Verify"},
	{Group: Complaints, Label: "Complaints", ViewKey: "can_view_complaints", ManageKey: "can_manage_complaints", ManageLabel: "Close/Reopen"},
	{Group: Expenses, Label: "Expenses", ViewKey: "can_view_expenses", ManageKey: "can_manage_expenses", ManageLabel: "Add/Edit/Delete"},
	{Group: Rooms, Label: "Rooms", ViewKey: "can_view_rooms", ManageKey: "can_manage_rooms", ManageLabel: "Add/Edit/Delete"},
	{Group: Announcements, Label: "Announcements", ViewKey: "can_view_announcements", ManageKey: "can_manage_announcements", ManageLabel: "Create/Edit"},
	{Group: Analytics, Label: "Analytics", ViewKey: "can_view_analytics"},
}

// ListGroups returns the group descriptors in display order.
func ListGroups() []Descriptor {
	out := make([]Descriptor, len(catalogue))
	copy(out, catalogue[:])

	return out
}

func (g Group) valid() bool {
	return g >= Guests && g <= Analytics
}

// String returns the lower-case group name used in URLs and logs.
func (g Group) String() string {
	if !g.valid() {
		return fmt.Sprintf("group(%d)", int(g))
	}

	return strings.ToLower(catalogue[g].Label)
}

// MarshalText encodes the group by name.
func (g Group) MarshalText() ([]byte, error) {
	if !g.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, int(g))
	}

	return []byte(g.String()), nil
}

// UnmarshalText decodes a group name.
func (g *Group) UnmarshalText(text []byte) error {
	parsed, err := ParseGroup(string(text))
	if err != nil {
		return err
	}

	*g = parsed

	return nil
}

// ParseGroup resolves a group by name, case-insensitively.
func ParseGroup(name string) (Group, error) {
	for _, d := range catalogue {
		if strings.EqualFold(d.Label, strings.TrimSpace(name)) {
			return d.Group, nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownGroup, name)
}

// ParseAction resolves an action by name, case-insensitively.
func ParseAction(name string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(name))) {
	case View:
		return View, nil
	case Manage:
		return Manage, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, name)
	}
}

// Set is the full capability profile of one manager.
// The field tags double as the persisted column names of the managers table.
type Set struct {
	ViewGuests          bool `gorm:"column:can_view_guests;not null"          json:"can_view_guests"`
	ManageGuests        bool `gorm:"column:can_manage_guests;not null"        json:"can_manage_guests"`
	ViewRents           bool `gorm:"column:can_view_rents;not null"           json:"can_view_rents"`
	ManageRents         bool `gorm:"column:can_manage_rents;not null"         json:"can_manage_rents"`
	ViewPayments        bool `gorm:"column:can_view_payments;not null"        json:"can_view_payments"`
	VerifyPayments      bool `gorm:"column:can_verify_payments;not null"      json:"can_verify_payments"`
	ViewComplaints      bool `gorm:"column:can_view_complaints;not null"      json:"can_view_complaints"`
	ManageComplaints    bool `gorm:"column:can_manage_complaints;not null"    json:"can_manage_complaints"`
	ViewExpenses        bool `gorm:"column:can_view_expenses;not null"        json:"can_view_expenses"`
	ManageExpenses      bool `gorm:"column:can_manage_expenses;not null"      json:"can_manage_expenses"`
	ViewRooms           bool `gorm:"column:can_view_rooms;not null"           json:"can_view_rooms"`
	ManageRooms         bool `gorm:"column:can_manage_rooms;not null"         json:"can_manage_rooms"`
	ViewAnnouncements   bool `gorm:"column:can_view_announcements;not null"   json:"can_view_announcements"`
	ManageAnnouncements bool `gorm:"column:can_manage_announcements;not null" json:"can_manage_announcements"`
	ViewAnalytics       bool `gorm:"column:can_view_analytics;not null"       json:"can_view_analytics"`
}

// Default returns the grant applied when a manager is created without explicit capabilities:
// day-to-day operational data is visible, nothing is mutable, expenses and analytics stay hidden.
func Default() Set {
	return Set{
		ViewGuests:        true,
		ViewRents:         true,
		ViewPayments:      true,
		ViewComplaints:    true,
		ViewRooms:         true,
		ViewAnnouncements: true,
	}
}

// Full returns a set with every flag granted. It describes an owner's effective access.
func Full() Set {
	var s Set

	for _, d := range catalogue {
		*s.viewFlag(d.Group) = true

		if p := s.manageFlag(d.Group); p != nil {
			*p = true
		}
	}

	return s
}

// flag returns a pointer to the field backing (g, a).
func (s *Set) flag(g Group, a Action) (*bool, error) {
	if !g.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownGroup, int(g))
	}

	switch a {
	case View:
		return s.viewFlag(g), nil
	case Manage:
		if p := s.manageFlag(g); p != nil {
			return p, nil
		}

		return nil, fmt.Errorf("%w: %s on %s", ErrUnsupportedAction, a, g)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAction, string(a))
	}
}

func (s *Set) viewFlag(g Group) *bool {
	switch g {
	case Guests:
		return &s.ViewGuests
	case Rents:
		return &s.ViewRents
	case Payments:
		return &s.ViewPayments
	case Complaints:
		return &s.ViewComplaints
	case Expenses:
		return &s.ViewExpenses
	case Rooms:
		return &s.ViewRooms
	case Announcements:
		return &s.ViewAnnouncements
	case Analytics:
		return &s.ViewAnalytics
	}

	return nil
}

func (s *Set) manageFlag(g Group) *bool {
	switch g {
	case Guests:
		return &s.ManageGuests
	case Rents:
		return &s.ManageRents
	case Payments:
		return &s.VerifyPayments
	case Complaints:
		return &s.ManageComplaints
	case Expenses:
		return &s.ManageExpenses
	case Rooms:
		return &s.ManageRooms
	case Announcements:
		return &s.ManageAnnouncements
	case Analytics:
		return nil
	}

	return nil
}

// Get reports the flag for (g, a).
func (s Set) Get(g Group, a Action) (bool, error) {
	p, err := s.flag(g, a)
	if err != nil {
		return false, err
	}

	return *p, nil
}

// Put sets the flag for (g, a). It does not enforce the manage => view rule; run Validate before persisting.
func (s *Set) Put(g Group, a Action, value bool) error {
	p, err := s.flag(g, a)
	if err != nil {
		return err
	}

	*p = value

	return nil
}
