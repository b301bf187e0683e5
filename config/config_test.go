package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTLSFilesEnabled(t *testing.T) {
	assert.False(t, tlsFiles{}.Enabled())
	assert.False(t, tlsFiles{CA: "ca.pem", Cert: "cert.pem"}.Enabled())
	assert.True(t, tlsFiles{CA: "ca.pem", Cert: "cert.pem", Key: "key.pem"}.Enabled())
}

func TestMask(t *testing.T) {
	assert.Empty(t, mask(""))
	assert.Equal(t, "***", mask("postgres://u:secret@db/market"))
}
