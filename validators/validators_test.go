package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email        string `json:"email" validate:"required,email"`
	Message      string `json:"message" validate:"required,max=10"`
	PointsAmount int    `json:"pointsAmount" validate:"required,gte=1,lte=100"`
}

func TestCheckPassesValidStruct(t *testing.T) {
	errs := Check(&sampleRequest{
		Email:        "ada@test.local",
		Message:      "thanks",
		PointsAmount: 50,
	})
	assert.Nil(t, errs)
}

func TestCheckCollectsFieldErrors(t *testing.T) {
	errs := Check(&sampleRequest{
		Email:        "not-an-email",
		Message:      "",
		PointsAmount: 500,
	})
	assert.Len(t, errs, 3)
	assert.Equal(t, "Must be a valid email address!", errs["email"])
	assert.Equal(t, "This field is required!", errs["message"])
	assert.Equal(t, "Must be at most 100!", errs["pointsAmount"])
}

func TestCheckLowercasesFieldNames(t *testing.T) {
	errs := Check(&sampleRequest{Email: "ada@test.local", Message: "this message is too long", PointsAmount: 1})
	assert.Contains(t, errs, "message")
	assert.NotContains(t, errs, "Message")
}
