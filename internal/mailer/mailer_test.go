package mailer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequiresHost(t *testing.T) {
	_, err := New("", 587, "", "", "noreply@citelinks.local")
	assert.Error(t, err)

	m, err := New("smtp.example.com", 587, "user", "secret", "noreply@citelinks.local")
	require.NoError(t, err)
	assert.NotNil(t, m)
}

func TestSendRequiresRecipient(t *testing.T) {
	m, err := New("smtp.example.com", 587, "user", "secret", "noreply@citelinks.local")
	require.NoError(t, err)

	assert.Error(t, m.Send("", "subject", "body"))
}

func TestLogNotifier(t *testing.T) {
	assert.NoError(t, LogNotifier{}.Send("someone@gmail.com", "subject", "body"))
}
