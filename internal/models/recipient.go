package models

// RecipientEntry is one row of the manually maintained recipient file.
// Flag values are the literal strings from the sheet ("yes"/"no"), not
// booleans, so unknown states survive round-trips untouched.
type RecipientEntry struct {
	CurrentPayroll string `json:"current_payroll"`
	Patreon        string `json:"patreon"`
	Discord        string `json:"discord"`
}

func (e *RecipientEntry) OnPayroll() bool {
	return e.CurrentPayroll == "yes"
}
