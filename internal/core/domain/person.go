package domain

// Person is the donor read model the ledger depends on.
// The people subsystem owns the rest of the profile.
type Person struct {
	PersonID        string `json:"PersonID"`
	AnashIdentifier string `json:"AnashIdentifier"`
	FirstName       string `json:"FirstName"`
	LastName        string `json:"LastName"`
	IsActive        bool   `json:"isActive"`
}

// FullName joins first and last name the way cash-box entries and conflict messages display it.
func (p Person) FullName() string {
	return joinName(p.FirstName, p.LastName)
}

func joinName(first, last string) string {
	switch {
	case first == "":
		return last
	case last == "":
		return first
	default:
		return first + " " + last
	}
}
