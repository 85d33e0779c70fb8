package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/janhq/jan-translator/internal/domain/apperr"
)

type form struct {
	Title    string `validate:"nonblank" label:"title"`
	Password string `validate:"min=6"`
	Confirm  string `validate:"eqfield=Password"`
	Email    string `validate:"omitempty,email"`
	Voice    string `validate:"omitempty,oneof=alloy nova"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name string
		form form
		want string
	}{
		{"valid", form{Title: "Trip", Password: "secret", Confirm: "secret"}, ""},
		{"blank title", form{Title: "  ", Password: "secret", Confirm: "secret"}, "title is required"},
		{"short password", form{Title: "x", Password: "abc", Confirm: "abc"}, "password must be at least 6 characters"},
		{"mismatch", form{Title: "x", Password: "secret", Confirm: "secreT"}, "passwords do not match"},
		{"bad email", form{Title: "x", Password: "secret", Confirm: "secret", Email: "nope"}, "email must be a valid email address"},
		{"bad voice", form{Title: "x", Password: "secret", Confirm: "secret", Voice: "robot"}, "voice must be one of: alloy nova"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(tt.form)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			assert.True(t, apperr.Is(err, apperr.KindValidation))
			assert.EqualError(t, err, tt.want)
		})
	}
}
