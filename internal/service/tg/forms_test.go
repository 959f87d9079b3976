package tg

import (
	"errors"
	"strings"
	"testing"
	"time"

	"dog_walking/internal/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		in   string
		want command
	}{
		{"list", command{verb: "list"}},
		{"  FIND  john  ", command{verb: "find", args: "john"}},
		{"edit 4 Rex; beagle", command{verb: "edit", args: "4 Rex; beagle"}},
		{"", command{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseCommand(tt.in), tt.in)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID(" 12 ")
	require.NoError(t, err)
	assert.Equal(t, uint(12), id)

	for _, bad := range []string{"", "0", "-1", "abc", "1.5"} {
		_, err := parseID(bad)
		assert.True(t, errors.Is(err, errBadInput), bad)
	}
}

func TestSplitIDArgs(t *testing.T) {
	id, rest, err := splitIDArgs("4  John; 555")
	require.NoError(t, err)
	assert.Equal(t, uint(4), id)
	assert.Equal(t, "John; 555", rest)

	_, _, err = splitIDArgs("   ")
	assert.ErrorIs(t, err, errBadInput)
}

func TestParseClient(t *testing.T) {
	got, err := parseClient(" John Smith ;  +1 555 ")
	require.NoError(t, err)
	assert.Equal(t, &dto.Client{Name: "John Smith", Phone: "+1 555"}, got)

	_, err = parseClient("John")
	assert.ErrorIs(t, err, errBadInput)
}

func TestParseDog(t *testing.T) {
	got, err := parseDog("3; Rex; ; 2")
	require.NoError(t, err)
	assert.Equal(t, &dto.Dog{ClientID: 3, Name: "Rex", Age: 2}, got)

	_, err = parseDog("3; Rex; beagle; old")
	assert.ErrorIs(t, err, errBadInput)

	_, err = parseDog("x; Rex; beagle; 2")
	assert.ErrorIs(t, err, errBadInput)
}

func TestParseWalk(t *testing.T) {
	loc := time.FixedZone("test", 3*3600)

	got, err := parseWalk("7; 2026-03-01 09:30; 45", loc)
	require.NoError(t, err)
	assert.Equal(t, uint(7), got.DogID)
	assert.Equal(t, 45, got.DurationMinutes)
	assert.True(t, got.WalkDate.Equal(time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC)))

	_, err = parseWalk("7; 01.03.2026; 45", loc)
	assert.ErrorIs(t, err, errBadInput)

	_, err = parseWalk("7; 2026-03-01 09:30; an hour", loc)
	assert.ErrorIs(t, err, errBadInput)
}

func TestFormatList(t *testing.T) {
	assert.Equal(t, "Dogs: nothing found.", formatList("Dogs", nil))
	assert.Equal(t, "Dogs (2):\na\nb", formatList("Dogs", []string{"a", "b"}))

	many := make([]string, maxListLines+5)
	for i := range many {
		many[i] = "x"
	}
	out := formatList("Walks", many)
	assert.Equal(t, maxListLines+2, len(strings.Split(out, "\n")))
	assert.Contains(t, out, "and 5 more")
}

func TestFormatDog(t *testing.T) {
	d := dto.Dog{ID: 2, ClientID: 1, ClientName: "John", Name: "Rex", Age: 3}
	assert.Equal(t, "#2 Rex (mixed, 3 y.o.), owner #1 John", formatDog(d))
}

func TestFormatWalk(t *testing.T) {
	w := dto.Walk{
		ID:              5,
		DogID:           2,
		DogName:         "Rex",
		ClientName:      "John",
		WalkDate:        time.Date(2026, 3, 1, 6, 30, 0, 0, time.UTC),
		DurationMinutes: 45,
	}
	assert.Equal(t, "#5 2026-03-01 09:30, 45 min, dog #2 Rex (John)", formatWalk(w, time.FixedZone("test", 3*3600)))
}
