package confirm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	hcerrors "github.com/hostops/hostctl/internal/errors"
)

func TestTerminalPromptFormat(t *testing.T) {
	var out bytes.Buffer
	c := &Terminal{In: strings.NewReader("y\n"), Out: &out}

	require.NoError(t, c.Confirm("Database and all its data will be destroyed"))
	assert.Equal(t, "Database and all its data will be destroyed. Continue? [y/N]: ", out.String())
}

func TestTerminalAnswers(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		wantOK bool
	}{
		{"lowercase y", "y\n", true},
		{"uppercase Y", "Y\n", true},
		{"yes", "yes\n", true},
		{"YES", "YES\n", true},
		{"padded yes", "  yes  \n", true},
		{"empty line", "\n", false},
		{"n", "n\n", false},
		{"anything else", "sure\n", false},
		{"eof without input", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &Terminal{In: strings.NewReader(tt.input), Out: &bytes.Buffer{}}
			err := c.Confirm("label")
			if tt.wantOK {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.True(t, hcerrors.IsKind(err, hcerrors.KindUsage))
				assert.Contains(t, err.Error(), "cancelled by user")
			}
		})
	}
}

func TestGateBypassSkipsPrompt(t *testing.T) {
	s := &Scripted{Answer: false}
	require.NoError(t, Gate(true, true, "label", s))
	assert.Empty(t, s.Asked, "bypass must never prompt")
}

func TestGateNonInteractiveFailsClosed(t *testing.T) {
	s := &Scripted{Answer: true}
	err := Gate(false, false, "label", s)
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindUsage))
	assert.Empty(t, s.Asked)
}

func TestGateDelegatesToConfirmer(t *testing.T) {
	approve := &Scripted{Answer: true}
	require.NoError(t, Gate(false, true, "the label", approve))
	assert.Equal(t, []string{"the label"}, approve.Asked)

	deny := &Scripted{Answer: false}
	err := Gate(false, true, "the label", deny)
	require.Error(t, err)
	assert.True(t, hcerrors.IsKind(err, hcerrors.KindUsage))
}
