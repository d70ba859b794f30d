package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "mcms/pkg/domain-errors"
)

type sample struct {
	CampID string `json:"campId" validate:"required"`
	Email  string `json:"userEmail" validate:"required,email"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestStruct(t *testing.T) {
	require.NoError(t, Struct(sample{CampID: "c", Email: "a@b.co", Rating: 3}))

	err := Struct(sample{Email: "a@b.co", Rating: 3})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, "campId is required", err.Error())

	err = Struct(sample{CampID: "c", Email: "nope", Rating: 3})
	assert.Equal(t, "userEmail must be a valid email", err.Error())

	err = Struct(sample{CampID: "c", Email: "a@b.co", Rating: 9})
	assert.Equal(t, "rating must be less than or equal to 5", err.Error())
}
