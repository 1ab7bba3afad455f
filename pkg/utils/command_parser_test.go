package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Command
		ok   bool
	}{
		{"full add", "add fr1234 2026-05-20 vno bva", Command{Verb: "ADD", Args: []string{"FR1234", "2026-05-20", "VNO", "BVA"}}, true},
		{"split code joined", "ADD FR 1234 2026-05-20", Command{Verb: "ADD", Args: []string{"FR1234", "2026-05-20"}}, true},
		{"slash command", "/list", Command{Verb: "LIST", Args: []string{}}, true},
		{"bot suffix", "/help@FareBot", Command{Verb: "HELP", Args: []string{}}, true},
		{"continuation line", " 2026-05-20  vno bva ", Command{Verb: "2026-05-20", Args: []string{"VNO", "BVA"}}, true},
		{"blank", "   ", Command{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseCommand(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestJoinSplitFlightCode(t *testing.T) {
	assert.Equal(t, []string{"FR1234"}, JoinSplitFlightCode([]string{"FR", "1234"}))
	assert.Equal(t, []string{"W61"}, JoinSplitFlightCode([]string{"W6", "1"}))
	// "VNO BVA" is a route, not a split code
	assert.Equal(t, []string{"VNO", "BVA"}, JoinSplitFlightCode([]string{"VNO", "BVA"}))
	assert.Equal(t, []string{"FR1234", "2026-05-20"}, JoinSplitFlightCode([]string{"FR1234", "2026-05-20"}))
	assert.Equal(t, []string{"FR"}, JoinSplitFlightCode([]string{"FR"}))
}
