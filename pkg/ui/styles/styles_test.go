package styles_test

import (
	"testing"

	"github.com/arthur-debert/dotty/pkg/types"
	"github.com/arthur-debert/dotty/pkg/ui/report"
	"github.com/arthur-debert/dotty/pkg/ui/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultRegistry_HasEveryState(t *testing.T) {
	r := styles.Default()

	names := []string{
		"Header", "Success", "Error", "Warning", "Info", "Muted", "Bold", "FilePath", "Code",
		report.StateMoved, report.StateAlreadyLinked, report.StateFailed,
		string(types.EntryLinked), string(types.EntryCopied), string(types.EntryMissing),
		string(types.EntryConflict), string(types.EntryForeignLink), string(types.EntryStoreMissing),
		string(types.EntryInvalid),
	}
	for _, name := range names {
		assert.True(t, r.Has(name), "style %s should be defined", name)
	}
}

func TestLoad(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := styles.Load([]byte(`
colors:
  red: { light: "#aa0000", dark: "#ff0000" }
styles:
  Error: { bold: true, foreground: red }
  Plain: {}
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"Error", "Plain"}, r.Names())
		assert.True(t, r.Get("Error").GetBold())
	})

	t.Run("unknown_color", func(t *testing.T) {
		_, err := styles.Load([]byte("styles:\n  Error: { foreground: nope }\n"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "nope")
	})

	t.Run("malformed", func(t *testing.T) {
		_, err := styles.Load([]byte("styles: ["))
		require.Error(t, err)
	})
}

func TestGet_UndefinedIsPlain(t *testing.T) {
	lipgloss.SetColorProfile(termenv.Ascii)
	assert.Equal(t, "text", styles.Default().Get("NoSuchStyle").Render("text"))
	assert.Equal(t, "text", styles.Render("Muted", "text"))
}
