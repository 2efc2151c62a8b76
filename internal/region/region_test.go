package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValid(t *testing.T) {
	for _, r := range []string{"eastus", "westeurope", "japaneast", "swedencentral"} {
		assert.True(t, Valid(r), r)
	}

	for _, r := range []string{"", "marsnorth", "EASTUS", "east us", "eastus "} {
		assert.False(t, Valid(r), r)
	}
}
