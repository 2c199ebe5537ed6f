package temporal

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDial_Disabled(t *testing.T) {
	c, err := Dial(DialOptions{Disabled: true}, nil)
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, ErrDisabled))
}

func TestEffectiveLogger_NilInstruments(t *testing.T) {
	assert.NotNil(t, effectiveLogger(nil))
}
