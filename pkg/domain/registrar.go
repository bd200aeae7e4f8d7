package domain

// RegistrarAction is an operation the registrar understands.
type RegistrarAction string

const (
	RegistrarActionLookup   RegistrarAction = "lookup"
	RegistrarActionRegister RegistrarAction = "register"
)

// Registrant holds the owner contact details sent with a registration.
type Registrant struct {
	Email     string
	FirstName string
	LastName  string
	Country   string
}

// WithDefaults returns a copy of r where every empty name or country field is
// taken from defaults.
func (r Registrant) WithDefaults(defaults Registrant) Registrant {
	if r.FirstName == "" {
		r.FirstName = defaults.FirstName
	}
	if r.LastName == "" {
		r.LastName = defaults.LastName
	}
	if r.Country == "" {
		r.Country = defaults.Country
	}

	return r
}

// DefaultRegistrant holds the placeholder owner fields used when a buyer
// supplies only an email address.
var DefaultRegistrant = Registrant{FirstName: "Domain", LastName: "Buyer", Country: "US"} //nolint: gochecknoglobals

// AvailabilityResult is the answer to a lookup. Available is true only when
// the registrar explicitly reported the domain as available.
type AvailabilityResult struct {
	Available bool `json:"available"`
	// Status is the raw status token found in the reply, if any.
	Status string `json:"status,omitempty"`
	// Err describes why the lookup degraded to unavailable (transport or
	// parse failure). It is empty for a clean "taken" answer.
	Err string `json:"error,omitempty"`
}

// RegistrationResult is the outcome of a single registration attempt. Exactly
// one of Domain (on success) or Error (on failure) is set.
type RegistrationResult struct {
	Success bool   `json:"success"`
	Domain  string `json:"domain,omitempty"`
	Error   string `json:"error,omitempty"`
}

// RegistrationSucceeded builds a successful result for domainName.
func RegistrationSucceeded(domainName string) RegistrationResult {
	return RegistrationResult{Success: true, Domain: domainName}
}

// RegistrationFailed builds a failed result carrying reason.
func RegistrationFailed(reason string) RegistrationResult {
	return RegistrationResult{Success: false, Error: reason}
}
