package habits

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestCompletionDateValidation(t *testing.T) {
	v := validator.New()

	base := Completion{
		UserID:  primitive.NewObjectID(),
		HabitID: primitive.NewObjectID(),
		Date:    "2022-03-09",
	}

	err := v.Struct(base)
	if err != nil {
		t.Fatalf("valid completion rejected: %v", err)
	}

	// A date that is not a day key would never match any stored day again,
	// so it has to be rejected up front
	badDates := []string{"", "09.03.2022", "2022-3-9", "2022-03-09T12:00:00Z", "not-a-date"}

	for _, bad := range badDates {
		completion := base
		completion.Date = bad

		err := v.Struct(completion)
		if err == nil {
			t.Errorf("date %q must fail validation", bad)
		}
	}
}
