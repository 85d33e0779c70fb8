package profile

// Profile holds the user's contact details.
type Profile struct {
	ID          int64   `json:"id,omitempty" yaml:"id,omitempty"`
	FullName    *string `json:"full_name" yaml:"full_name"`
	PhoneNumber *string `json:"phone_number" yaml:"phone_number"`
	Email       *string `json:"email" yaml:"email"`
	WorkAddress *string `json:"work_address" yaml:"work_address"`
}
