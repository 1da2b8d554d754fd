package nats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPublisher_Unreachable(t *testing.T) {
	p, err := NewPublisher("nats://127.0.0.1:1")
	assert.Error(t, err)
	assert.Nil(t, p)
}

func TestIsConnected_NilSafe(t *testing.T) {
	var p *Publisher
	assert.False(t, p.IsConnected())
	assert.False(t, (&Publisher{}).IsConnected())
}
