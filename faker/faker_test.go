package faker

import (
	"regexp"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeededFakersRepeat(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, a.FirstName(), b.FirstName())
		assert.Equal(t, a.SafeEmail(), b.SafeEmail())
	}
}

func TestWords(t *testing.T) {
	f := New(1)

	text, ok := f.Words(3, true).(string)
	require.True(t, ok, "asText should give a string")
	assert.Len(t, strings.Fields(text), 3)

	words, ok := f.Words(4, false).([]string)
	require.True(t, ok, "without asText words should be a slice")
	assert.Len(t, words, 4)
	for _, w := range words {
		assert.NotContains(t, w, " ")
	}

	assert.Empty(t, f.Words(-1, true))
}

func TestSafeEmail(t *testing.T) {
	f := New(2)
	re := regexp.MustCompile(`^[^@\s]+@example\.(com|org|net)$`)
	for i := 0; i < 20; i++ {
		e := f.SafeEmail()
		assert.Regexp(t, re, e)
	}
}

func TestUuid(t *testing.T) {
	u1, err := New(3).Uuid()
	require.NoError(t, err)
	u2, err := New(3).Uuid()
	require.NoError(t, err)

	parsed, err := uuid.Parse(u1)
	require.NoError(t, err)
	assert.Equal(t, uuid.Version(4), parsed.Version())
	assert.Equal(t, u1, u2, "same seed should give the same uuid")
}

func TestRegexify(t *testing.T) {
	f := New(4)
	s, err := f.Regexify(`[A-Z]{2}[0-9]{3}`)
	require.NoError(t, err)
	assert.Regexp(t, `^[A-Z]{2}[0-9]{3}$`, s)

	_, err = f.Regexify(`[a-`)
	assert.Error(t, err)
}

func TestNumbers(t *testing.T) {
	f := New(5)
	for i := 0; i < 50; i++ {
		n := f.NumberBetween(10, 20)
		assert.GreaterOrEqual(t, n, 10)
		assert.LessOrEqual(t, n, 20)

		r := f.RandomNumber(3)
		assert.GreaterOrEqual(t, r, 0)
		assert.Less(t, r, 1000)
	}
}

func TestPasswordAndText(t *testing.T) {
	f := New(6)
	assert.Len(t, f.Password(), 12)
	assert.Len(t, f.PasswordOf(20), 20)

	for _, max := range []int{5, 40, 200} {
		assert.LessOrEqual(t, len(f.Text(max)), max)
	}
	assert.Equal(t, "", f.Text(0))
}

func TestAddressAndContact(t *testing.T) {
	f := New(7)
	assert.NotEmpty(t, f.StreetAddress())
	assert.NotEmpty(t, f.Postcode())
	assert.NotEmpty(t, f.PhoneNumber())
	assert.Contains(t, f.FreeEmail(), "@")
	u := f.UserName()
	assert.Equal(t, strings.ToLower(u), u)
	assert.True(t, strings.HasPrefix(f.Url(), "http"))
	assert.Len(t, strings.Split(f.Ipv4(), "."), 4)
}
