package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSide(t *testing.T) {
	tests := []struct {
		name      string
		selection string
		home      string
		away      string
		want      Side
	}{
		{"exact home", "Lakers", "Lakers", "Celtics", SideHome},
		{"exact away ignores case", "boston celtics", "Los Angeles Lakers", "Boston Celtics", SideAway},
		{"abbreviated selection", "Lakers", "Los Angeles Lakers", "Boston Celtics", SideHome},
		{"feed abbreviation", "Los Angeles Lakers", "Lakers", "Celtics", SideHome},
		{"no match", "Knicks", "Lakers", "Celtics", SideNone},
		{"ambiguous substring", "New York", "New York Jets", "New York Giants", SideNone},
		{"exact beats substring", "New York Jets", "New York Jets", "New York Jets II", SideHome},
		{"empty selection", "", "Lakers", "Celtics", SideNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchSide(tt.selection, tt.home, tt.away))
		})
	}
}

func TestParseResult(t *testing.T) {
	assert.Equal(t, ResultWin, ParseResult("WIN"))
	assert.Equal(t, ResultVoid, ParseResult("void"))
	assert.Equal(t, ResultPending, ParseResult(""))
	assert.Equal(t, ResultPending, ParseResult("cancelled"))
	assert.True(t, ResultPush.Terminal())
	assert.False(t, ResultPending.Terminal())
}
