package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractPlaceholders(t *testing.T) {
	keys := ExtractPlaceholders("Welcome {Name}, your code is {Code}. Bye {Name}")
	assert.Equal(t, []string{"Name", "Code"}, keys)

	assert.Empty(t, ExtractPlaceholders("no tokens here"))
	assert.Empty(t, ExtractPlaceholders(""))

	// keys are trimmed of surrounding whitespace
	keys = ExtractPlaceholders("Hello { Name } and {Code}")
	assert.Equal(t, []string{"Name", "Code"}, keys)
}

func TestSubstitutePlaceholders(t *testing.T) {
	values := map[string]string{"Name": "Sam"}

	result, missing := SubstitutePlaceholders("Welcome {Name}, code={Code}", values)
	assert.Equal(t, "Welcome Sam, code=", result)
	assert.Equal(t, []string{"Code"}, missing)
}

func TestSubstitutePlaceholders_SinglePass(t *testing.T) {
	// values containing tokens must not be re-substituted
	values := map[string]string{"A": "{B}", "B": "never"}
	result, missing := SubstitutePlaceholders("x {A} y", values)
	assert.Equal(t, "x {B} y", result)
	assert.Empty(t, missing)
}

func TestSubstitutePlaceholders_Idempotent(t *testing.T) {
	values := map[string]string{"Name": "Sam", "Code": "42"}
	once, _ := SubstitutePlaceholders("Hi {Name}, code={Code}", values)
	twice, missing := SubstitutePlaceholders(once, values)
	assert.Equal(t, once, twice)
	assert.Empty(t, missing)
	assert.NotContains(t, twice, "{Name}")
	assert.NotContains(t, twice, "{Code}")
}

func TestEmailTemplateValidate(t *testing.T) {
	tmpl := &EmailTemplate{
		Name:            "welcome",
		SubjectTemplate: "Welcome {Name}",
		BodyTemplate:    "<p>Hi {Name}</p>",
	}
	require.NoError(t, tmpl.Validate())

	tests := []struct {
		name string
		mod  func(*EmailTemplate)
	}{
		{"empty name", func(t *EmailTemplate) { t.Name = "  " }},
		{"empty subject", func(t *EmailTemplate) { t.SubjectTemplate = "" }},
		{"empty body", func(t *EmailTemplate) { t.BodyTemplate = " " }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bad := &EmailTemplate{Name: "n", SubjectTemplate: "s", BodyTemplate: "b"}
			tt.mod(bad)
			err := bad.Validate()
			require.Error(t, err)
			var verr ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestEmailTemplatePlaceholders(t *testing.T) {
	tmpl := &EmailTemplate{
		SubjectTemplate: "Welcome {Name}",
		BodyTemplate:    "<p>Hi {Name}, code={Code}</p>",
	}
	assert.Equal(t, []string{"Name", "Code"}, tmpl.Placeholders())
}
