package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHelpNamesZFactorCorrelation(t *testing.T) {
	for _, c := range []struct {
		name string
		long string
	}{{"root", rootCmd.Long}, {"pvt", pvtCmd.Long}} {
		assert.Contains(t, c.long, "Papay", c.name)
		assert.NotContains(t, c.long, "Hall-Yarborough", c.name)
	}
}
