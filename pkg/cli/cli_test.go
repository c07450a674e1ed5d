package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseArgsHonorsQuotes(t *testing.T) {
	c := &CLI{}

	tests := []struct {
		input string
		want  []string
	}{
		{`list add "Beach Trip" 5`, []string{"list", "add", "Beach Trip", "5"}},
		{`item add Sunscreen`, []string{"item", "add", "Sunscreen"}},
		{`user add "Ana Maria"`, []string{"user", "add", "Ana Maria"}},
		{`""`, nil},
		{`"`, nil},
		{`" "`, []string{" "}},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.parseArgs(tt.input), "input %q", tt.input)
	}
}

func TestExecuteCommandEmptyInput(t *testing.T) {
	c := &CLI{}

	assert.False(t, c.executeCommand(nil))
	assert.False(t, c.executeCommand(c.parseArgs(`""`)))
}

func TestExecuteCommandExit(t *testing.T) {
	c := &CLI{}

	assert.True(t, c.executeCommand([]string{"exit"}))
	assert.True(t, c.executeCommand([]string{"quit"}))
}
