package validation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/biblioteca/internal/entities"
)

type sampleRequest struct {
	Name     string  `validate:"required"`
	Email    string  `validate:"required,email"`
	Score    float64 `validate:"gte=0,lte=5"`
	Category string  `validate:"omitempty,material_kind"`
}

func TestValidateStruct(t *testing.T) {
	tests := []struct {
		name       string
		req        sampleRequest
		wantFields []string
	}{
		{
			name: "valid",
			req:  sampleRequest{Name: "Ana", Email: "ana@mail.com", Score: 5, Category: "livro"},
		},
		{
			name:       "missing name and bad email",
			req:        sampleRequest{Email: "not-an-email"},
			wantFields: []string{"Name", "Email"},
		},
		{
			name:       "score above range",
			req:        sampleRequest{Name: "Ana", Email: "ana@mail.com", Score: 5.01},
			wantFields: []string{"Score"},
		},
		{
			name:       "unknown category",
			req:        sampleRequest{Name: "Ana", Email: "ana@mail.com", Category: "dvd"},
			wantFields: []string{"Category"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(&tt.req)
			if len(tt.wantFields) == 0 {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, entities.ErrValidation))

			var verr *Error
			require.True(t, errors.As(err, &verr))
			var got []string
			for _, f := range verr.Fields {
				got = append(got, f.Field)
			}
			assert.Equal(t, tt.wantFields, got)
		})
	}
}

func TestValidateStruct_Messages(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "ana@mail.com", Score: -1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
	assert.Contains(t, err.Error(), "score must be greater than or equal to 0")
}
