package internal

type Account struct {
	Platform string
	Name     string
	// Auth holds the credential material handed to the provider, e.g. a
	// service account JSON document for google.
	Auth string
}

func (a Account) ID() string {
	if a.Name == "" {
		return a.Platform
	}
	return a.Platform + "/" + a.Name
}

type Calendar struct {
	// ProviderID is how the provider knows the calendar: a calendar id for
	// google, a feed URL for ics.
	ProviderID string
	Account    Account
}

func (c Calendar) String() string {
	return c.Account.ID() + "/" + c.ProviderID
}
