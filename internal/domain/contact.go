package domain

// Contact is the single persisted entity managed by this system.
//
// ID is assigned by the store on insert and immutable afterwards. Country and
// Timezone are derived from Phone via the phone-validation service whenever
// Phone is set; they are never accepted from callers directly. The live
// datetime is not part of the stored record at all, it is recomputed from the
// external services on every read.
type Contact struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Country  string `json:"country"`
	Timezone string `json:"timezone"`
}

// ContactUpdate describes a partial update of a stored contact. Nil fields
// are left untouched.
type ContactUpdate struct {
	Name     *string
	Phone    *string
	Country  *string
	Timezone *string
}

// PhoneInfo is the phone-validation service's answer for one number.
type PhoneInfo struct {
	Valid     bool     `json:"is_valid"`
	Country   string   `json:"country"`
	Timezones []string `json:"timezones"`
}
