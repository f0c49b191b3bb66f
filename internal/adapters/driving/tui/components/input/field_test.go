package input

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewField(t *testing.T) {
	f := NewField(nil, "Regular KMZ", "/path/to/regular.kmz")

	require.NotNil(t, f)
	assert.Equal(t, "Regular KMZ", f.Label())
	assert.False(t, f.Focused())
	assert.Empty(t, f.Value())
	assert.Contains(t, f.View(), "Regular KMZ")
}

func TestField_FocusAndType(t *testing.T) {
	f := NewField(nil, "Area ID", "")
	f.Focus()
	require.True(t, f.Focused())

	for _, r := range "JKT01" {
		f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	assert.Equal(t, "JKT01", f.Value())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestField_BlurredIgnoresKeys(t *testing.T) {
	f := NewField(nil, "Area ID", "")

	f, _ = f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}})
	assert.Empty(t, f.Value())
}

func TestField_SetValueAndReset(t *testing.T) {
	f := NewField(nil, "Alley KMZ", "")

	f.SetValue("/data/alley.kmz")
	assert.Equal(t, "/data/alley.kmz", f.Value())

	f.Reset()
	assert.Empty(t, f.Value())
}

func TestField_SetWidth(t *testing.T) {
	f := NewField(nil, "Area ID", "")

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())

	f.SetWidth(5)
	assert.Equal(t, 5, f.Width())
	assert.NotEmpty(t, f.View())
}
