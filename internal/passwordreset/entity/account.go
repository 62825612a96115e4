package entity

const AccountStatusActive = "active"

type Account struct {
	Email     string
	FirstName string
	LastName  string
	Status    string
}

func (a Account) Active() bool { return a.Status == AccountStatusActive }

func (a Account) FullName() string {
	switch {
	case a.FirstName == "":
		return a.LastName
	case a.LastName == "":
		return a.FirstName
	default:
		return a.FirstName + " " + a.LastName
	}
}
