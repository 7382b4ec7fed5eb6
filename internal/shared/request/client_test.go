package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveClientType(t *testing.T) {
	assert.Equal(t, ClientWeb, ResolveClientType("WEB", ""))
	assert.Equal(t, ClientMobile, ResolveClientType("", "okhttp/4.9"))
	assert.Equal(t, ClientWeb, ResolveClientType("", "Mozilla/5.0 (X11; Linux)"))
	assert.Equal(t, ClientAPI, ResolveClientType("", "curl/8.0"))
	assert.True(t, IsWebClient(ResolveClientType("", "Mozilla/5.0")))
}
