package ids

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mcoot/wordbingo/internal/dependencies/mocks"
	"github.com/mcoot/wordbingo/internal/dependencies/random"
)

var roomCodePattern = regexp.MustCompile(`^[A-Z0-9]{5}$`)

func TestNewRoomCodeShape(t *testing.T) {
	g := New(random.New())
	for i := 0; i < 200; i++ {
		code := g.NewRoomCode()
		assert.Regexp(t, roomCodePattern, string(code))
	}
}

func TestNewRoomCodeUsesRandomSource(t *testing.T) {
	rnd := mocks.NewMockRandom()
	rnd.QueueString("QW3RT")

	assert.Equal(t, "QW3RT", string(New(rnd).NewRoomCode()))
}

func TestNewSessionIDIsUUID(t *testing.T) {
	g := New(random.New())

	a := g.NewSessionID()
	b := g.NewSessionID()

	_, err := uuid.Parse(a)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
