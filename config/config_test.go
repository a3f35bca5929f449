package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNew_DefaultRejectsNaive(t *testing.T) {
	cfg := New()
	assert.Equal(t, NaiveReject, cfg.NaivePolicy)
}

func TestNew_WithNaiveAsUTC(t *testing.T) {
	cfg := New(WithNaiveAsUTC())
	assert.Equal(t, NaiveAsUTC, cfg.NaivePolicy)
}

func TestNew_LaterOptionWins(t *testing.T) {
	cfg := New(WithNaiveAsUTC(), WithRejectNaive())
	assert.Equal(t, NaiveReject, cfg.NaivePolicy)
}
