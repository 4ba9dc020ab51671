package application

import "slices"

// Field names as they appear in form payloads and error mappings.
const (
	FieldFirstName     = "firstName"
	FieldLastName      = "lastName"
	FieldEmail         = "email"
	FieldMobileNo      = "mobileNo"
	FieldCountry       = "country"
	FieldStreetAddress = "streetAddress"
	FieldCity          = "city"
	FieldRegion        = "region"
	FieldPostalCode    = "postalCode"
	FieldResume        = "resume"
)

// DefaultCountry is selected when a form is created or cancelled.
const DefaultCountry = "India"

var countries = []string{"India", "United States", "Canada", "Mexico"}

var textFields = []string{
	FieldFirstName,
	FieldLastName,
	FieldEmail,
	FieldMobileNo,
	FieldCountry,
	FieldStreetAddress,
	FieldCity,
	FieldRegion,
	FieldPostalCode,
}

// Countries returns the selectable countries in display order.
func Countries() []string {
	return slices.Clone(countries)
}

// IsCountry reports whether value is one of the selectable countries.
func IsCountry(value string) bool {
	return slices.Contains(countries, value)
}

// TextFields returns the names of the text-valued fields in display order.
func TextFields() []string {
	return slices.Clone(textFields)
}

// FieldNames returns every field name, text fields first and resume last.
func FieldNames() []string {
	return append(TextFields(), FieldResume)
}

// Resume is an accepted resume file held in memory. Content is bounded by
// MaxResumeSizeBytes.
type Resume struct {
	Name      string `json:"name"`
	MediaType string `json:"mediaType"`
	Size      int64  `json:"size"`
	Content   []byte `json:"-"`
}

// State is the mutable record of every field value and the attached resume.
type State struct {
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Email         string  `json:"email"`
	MobileNo      string  `json:"mobileNo"`
	Country       string  `json:"country"`
	StreetAddress string  `json:"streetAddress"`
	City          string  `json:"city"`
	Region        string  `json:"region"`
	PostalCode    string  `json:"postalCode"`
	Resume        *Resume `json:"resume,omitempty"`
}

// DefaultState returns the state a new or cancelled form starts from.
func DefaultState() State {
	return State{Country: DefaultCountry}
}

// Value returns the text value stored under name.
func (s State) Value(name string) (string, bool) {
	switch name {
	case FieldFirstName:
		return s.FirstName, true
	case FieldLastName:
		return s.LastName, true
	case FieldEmail:
		return s.Email, true
	case FieldMobileNo:
		return s.MobileNo, true
	case FieldCountry:
		return s.Country, true
	case FieldStreetAddress:
		return s.StreetAddress, true
	case FieldCity:
		return s.City, true
	case FieldRegion:
		return s.Region, true
	case FieldPostalCode:
		return s.PostalCode, true
	default:
		return "", false
	}
}

// Values returns the text fields keyed by field name.
func (s State) Values() map[string]string {
	out := make(map[string]string, len(textFields))
	for _, name := range textFields {
		value, _ := s.Value(name)
		out[name] = value
	}
	return out
}

func (s *State) set(name, value string) bool {
	switch name {
	case FieldFirstName:
		s.FirstName = value
	case FieldLastName:
		s.LastName = value
	case FieldEmail:
		s.Email = value
	case FieldMobileNo:
		s.MobileNo = value
	case FieldCountry:
		s.Country = value
	case FieldStreetAddress:
		s.StreetAddress = value
	case FieldCity:
		s.City = value
	case FieldRegion:
		s.Region = value
	case FieldPostalCode:
		s.PostalCode = value
	default:
		return false
	}
	return true
}

func (s State) clone() State {
	out := s
	if s.Resume != nil {
		resume := *s.Resume
		out.Resume = &resume
	}
	return out
}
