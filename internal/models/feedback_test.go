package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFeedbackValidate(t *testing.T) {
	fb := &Feedback{Text: "Really helped me stay on track.", Rating: 5}
	assert.NoError(t, fb.Validate())

	tooShort := &Feedback{Text: "short", Rating: 3}
	assert.Error(t, tooShort.Validate())

	tooLong := &Feedback{Text: strings.Repeat("a", MaxFeedbackLength+1), Rating: 3}
	assert.Error(t, tooLong.Validate())

	badRating := &Feedback{Text: "Really helped me stay on track.", Rating: 0}
	assert.Error(t, badRating.Validate())

	badRating.Rating = 6
	assert.Error(t, badRating.Validate())
}
