package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateStudentFields(t *testing.T) {
	type testCase struct {
		name      string
		firstName string
		lastName  string
		email     string
		wantField string
	}

	tests := []testCase{
		{name: "Valid", firstName: "Harry", lastName: "Potter", email: "harry@hogwarts.edu"},
		{name: "BlankFirstName", firstName: " ", lastName: "Potter", email: "harry@hogwarts.edu", wantField: "first_name"},
		{name: "BlankLastName", firstName: "Harry", lastName: "", email: "harry@hogwarts.edu", wantField: "last_name"},
		{name: "BlankEmail", firstName: "Harry", lastName: "Potter", email: "", wantField: "email"},
		{name: "EmailWithoutAt", firstName: "Harry", lastName: "Potter", email: "hogwarts.edu", wantField: "email"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStudentFields(tt.firstName, tt.lastName, tt.email)

			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.ErrorAs(t, err, &validationErr)
			assert.Equal(t, tt.wantField, validationErr.Field)
		})
	}
}
