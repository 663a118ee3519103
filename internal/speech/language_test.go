package speech

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupLanguage(t *testing.T) {
	assert.Equal(t, Hindi, LookupLanguage("hi-IN"))
	assert.Equal(t, Hindi, LookupLanguage("hindi"))
	assert.Equal(t, Telugu, LookupLanguage(" te "))
	assert.Equal(t, English, LookupLanguage(""))
	assert.Equal(t, English, LookupLanguage("fr-FR"))
	assert.Equal(t, "te", Telugu.Base())
}

func TestPrompt(t *testing.T) {
	assert.Equal(t, "Please say your 10-digit phone number", Prompt(FieldPhone, English))
	assert.Equal(t, "कृपया अपना पूरा नाम बोलें", Prompt(FieldName, Hindi))
	assert.Equal(t, "Please say your nickname", Prompt(Field("nickname"), Telugu))

	for _, f := range Fields {
		for _, l := range Languages {
			_, ok := prompts[f][l.Code]
			assert.True(t, ok, "%s/%s", f, l.Code)
		}
	}
}

func TestParseField(t *testing.T) {
	f, ok := ParseField(" Email ")
	assert.True(t, ok)
	assert.Equal(t, FieldEmail, f)

	_, ok = ParseField("salary")
	assert.False(t, ok)
}
