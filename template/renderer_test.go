package template_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-auth-starter/template"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, body := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return fsys
}

func TestRenderSubstitutesEveryOccurrence(t *testing.T) {
	r := template.New(testFS(map[string]string{
		"welcome.template.html": "<p>{{NAME}}</p><p>{{NAME}} joined {{APP_NAME}} in {{CURRENT_YEAR}}</p>",
	}))

	out, err := r.Render("welcome", template.Variables{
		"NAME":         "Ann",
		"APP_NAME":     "Starter",
		"CURRENT_YEAR": 2026,
	})

	require.NoError(t, err)
	assert.Equal(t, "<p>Ann</p><p>Ann joined Starter in 2026</p>", out)
	assert.NotContains(t, out, "{{")
}

func TestRenderLeavesUnresolvedPlaceholders(t *testing.T) {
	r := template.New(testFS(map[string]string{
		"partial.template.html": "hello {{NAME}}, your code is {{OTP_CODE}}",
	}))

	out, err := r.Render("partial", template.Variables{"NAME": "Bob"})

	require.NoError(t, err)
	assert.Equal(t, "hello Bob, your code is {{OTP_CODE}}", out)

	// idempotent on a second pass with the same map
	again, err := r.Render("partial", template.Variables{"NAME": "Bob"})
	require.NoError(t, err)
	assert.Equal(t, out, again)
}

func TestRenderMissingTemplate(t *testing.T) {
	r := template.New(testFS(nil))

	out, err := r.Render("nope", template.Variables{"K": "V"})

	require.Error(t, err)
	assert.Empty(t, out, "no partially built output on failure")
	assert.True(t, template.IsNotFound(err))
	assert.Contains(t, err.Error(), "nope")
}

func TestExists(t *testing.T) {
	r := template.New(testFS(map[string]string{
		"otp-email.template.html": "{{OTP_CODE}}",
	}))

	assert.True(t, r.Exists("otp-email"))
	assert.False(t, r.Exists("missing"))
}

func TestAvailable(t *testing.T) {
	r := template.New(testFS(map[string]string{
		"b.template.html": "",
		"a.template.html": "",
		"notes.txt":       "ignored",
	}))

	assert.Equal(t, []string{"a", "b"}, r.Available())
}

func TestDefaultTemplatesShip(t *testing.T) {
	r := template.Default()

	expected := []string{
		"otp-email",
		"password-change-success",
		"password-reset-email",
		"verification-email",
	}

	assert.Equal(t, expected, r.Available())

	for _, name := range expected {
		t.Run(name, func(t *testing.T) {
			require.True(t, r.Exists(name))
			out, err := r.Render(name, template.Variables{
				"APP_NAME":     "Starter",
				"CURRENT_YEAR": 2026,
			})
			require.NoError(t, err)
			assert.True(t, strings.Contains(out, "Starter"))
		})
	}
}
