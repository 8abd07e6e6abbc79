// Package faker provides the fake data generators used to scrub table
// columns.
//
// Every exported method of Faker that returns a value, optionally
// followed by an error, is a named generator. Settings refer to a
// generator by its method name with a lower case first letter, so
// SafeEmail is "safeEmail" and Words is "words:3,true". The generators
// of gofakeit are promoted from the embedded gofakeit.Faker and are
// available in the same way, for example "hackerPhrase" or
// "numerify:###-###".
package faker

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/lucasjones/reggen"
)

// regexifyLimit caps the repetition of unbounded regex operators
const regexifyLimit = 10

// Faker generates fake data from a single pseudo random source. A seeded
// Faker produces the same sequence of values on every run. It is not
// safe for concurrent use
type Faker struct {
	*gofakeit.Faker
}

// New makes a Faker. A zero seed picks a random seed
func New(seed int64) *Faker {
	return &Faker{Faker: gofakeit.New(seed)}
}

// UserName returns a user name
func (f *Faker) UserName() string {
	return strings.ToLower(f.Username())
}

// SafeEmail returns an email address at one of the reserved example
// domains, so mail can never reach a real person
func (f *Faker) SafeEmail() string {
	return fmt.Sprintf("%s@example.%s",
		f.UserName(),
		f.RandomString([]string{"com", "org", "net"}),
	)
}

// FreeEmail returns an email address at a free mail provider
func (f *Faker) FreeEmail() string {
	return fmt.Sprintf("%s@%s",
		f.UserName(),
		f.RandomString([]string{"gmail.com", "yahoo.com", "hotmail.com"}),
	)
}

// PhoneNumber returns a formatted phone number
func (f *Faker) PhoneNumber() string {
	return f.PhoneFormatted()
}

// StreetAddress returns a house number and street name
func (f *Faker) StreetAddress() string {
	return f.Street()
}

// Postcode returns a postal code
func (f *Faker) Postcode() string {
	return f.Zip()
}

// Word returns a single lorem ipsum word
func (f *Faker) Word() string {
	return f.LoremIpsumWord()
}

// Words returns nb random words, joined by spaces if asText is set
func (f *Faker) Words(nb int, asText bool) any {
	if nb < 0 {
		nb = 0
	}
	words := make([]string, nb)
	for i := range words {
		words[i] = f.Word()
	}
	if asText {
		return strings.Join(words, " ")
	}
	return words
}

// Paragraph returns a paragraph of nb sentences
func (f *Faker) Paragraph(nb int) string {
	return f.Faker.Paragraph(1, nb, 10, "")
}

// Text returns sentences of no more than maxChars characters in total
func (f *Faker) Text(maxChars int) string {
	var b strings.Builder
	for {
		s := f.Sentence(8)
		if b.Len() > 0 {
			s = " " + s
		}
		if b.Len()+len(s) > maxChars {
			break
		}
		b.WriteString(s)
	}
	if b.Len() == 0 && maxChars > 0 {
		return f.LetterN(uint(maxChars))
	}
	return b.String()
}

// Password returns a 12 character password of mixed characters
func (f *Faker) Password() string {
	return f.PasswordOf(12)
}

// PasswordOf returns a password of length characters
func (f *Faker) PasswordOf(length int) string {
	return f.Faker.Password(true, true, true, true, false, length)
}

// Uuid returns a version 4 uuid drawn from the Faker's random source
func (f *Faker) Uuid() (string, error) {
	u, err := uuid.NewRandomFromReader(f.Rand)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// Regexify returns a string matching pattern
func (f *Faker) Regexify(pattern string) (string, error) {
	g, err := reggen.NewGenerator(pattern)
	if err != nil {
		return "", fmt.Errorf("regexify %q: %w", pattern, err)
	}
	g.SetSeed(f.Int64())
	return g.Generate(regexifyLimit), nil
}

// NumberBetween returns a number from min to max inclusive
func (f *Faker) NumberBetween(min, max int) int {
	return f.Number(min, max)
}

// RandomNumber returns a number of at most digits digits
func (f *Faker) RandomNumber(digits int) int {
	max := 1
	for i := 0; i < digits; i++ {
		max *= 10
	}
	return f.Number(0, max-1)
}

// Boolean returns true or false
func (f *Faker) Boolean() bool {
	return f.Bool()
}

// Url returns a web address
func (f *Faker) Url() string {
	return f.URL()
}

// Ipv4 returns an IPv4 address
func (f *Faker) Ipv4() string {
	return f.IPv4Address()
}
