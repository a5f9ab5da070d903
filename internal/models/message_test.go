package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateMessageBody(t *testing.T) {
	assert.NoError(t, ValidateMessageBody("hello"))
	assert.NoError(t, ValidateMessageBody(strings.Repeat("a", MaxMessageLength)))

	assert.Error(t, ValidateMessageBody(""))
	assert.Error(t, ValidateMessageBody(strings.Repeat("a", MaxMessageLength+1)))
}

func TestValidateMessageBodyCountsRunes(t *testing.T) {
	// Multi-byte characters count once each.
	body := strings.Repeat("ё", MaxMessageLength)
	assert.NoError(t, ValidateMessageBody(body))
	assert.Error(t, ValidateMessageBody(body+"ё"))
}
