package topics

import (
	"bytes"
	"testing"
	"testing/fstest"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func file(content string) *fstest.MapFile {
	return &fstest.MapFile{Data: []byte(content)}
}

func TestTopicManager_ScanTopics(t *testing.T) {
	source := fstest.MapFS{
		"restore.txt":      file("Restoring managed paths"),
		"repository.md":    file("# Repository\n\nLayout of the store"),
		"config.txxt":      file("Configuration Guide"),
		"ignore.json":      file("{}"),
		"advanced/git.txt": file("Git backend"),
	}

	t.Run("default_extensions", func(t *testing.T) {
		tm := New(source)
		require.NoError(t, tm.scanTopics())

		tests := []struct {
			name     string
			expected bool
			content  string
		}{
			{"restore", true, "Restoring managed paths"},
			{"repository", true, "# Repository\n\nLayout of the store"},
			{"git", true, "Git backend"},
			{"config", false, ""},
			{"ignore", false, ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				topic, exists := tm.GetTopic(tt.name)
				assert.Equal(t, tt.expected, exists)
				if exists {
					assert.Equal(t, tt.content, topic.Content)
				}
			})
		}
	})

	t.Run("custom_extensions", func(t *testing.T) {
		tm := NewWithOptions(source, Options{Extensions: []string{".txxt"}})
		require.NoError(t, tm.scanTopics())

		assert.Equal(t, []string{"config"}, tm.ListTopics())
	})
}

func TestTopicManager_GetTopic(t *testing.T) {
	tm := New(fstest.MapFS{
		"option-overwrite.txt": file("Overwrite help"),
		"option-verbose.txt":   file("Verbose help"),
		"repository.txt":       file("Repository help"),
	})
	require.NoError(t, tm.scanTopics())

	tests := []struct {
		input    string
		expected string
		exists   bool
	}{
		{"repository", "repository", true},
		{"option-overwrite", "option-overwrite", true},
		{"overwrite", "option-overwrite", true},
		{"--overwrite", "option-overwrite", true},
		{"-overwrite", "option-overwrite", true},
		{"--verbose", "option-verbose", true},
		{"-v", "", false},
		{"nonexistent", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			topic, exists := tm.GetTopic(tt.input)
			assert.Equal(t, tt.exists, exists)
			if exists {
				assert.Equal(t, tt.expected, topic.Name)
			}
		})
	}
}

func TestTopicManager_ListTopicsSorted(t *testing.T) {
	tm := New(fstest.MapFS{
		"sync.txt":    file("s"),
		"add.txt":     file("a"),
		"restore.txt": file("r"),
	})
	require.NoError(t, tm.scanTopics())

	assert.Equal(t, []string{"add", "restore", "sync"}, tm.ListTopics())
}

func TestNilSource(t *testing.T) {
	tm := New(nil)
	require.NoError(t, tm.scanTopics())
	assert.Empty(t, tm.ListTopics())
}

func newRoot(t *testing.T, source fstest.MapFS) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	rootCmd := &cobra.Command{Use: "testapp", Short: "Test application"}
	rootCmd.AddCommand(&cobra.Command{
		Use:   "restore",
		Short: "Restore something",
		Run:   func(cmd *cobra.Command, args []string) {},
	})
	out := &bytes.Buffer{}
	rootCmd.SetOut(out)
	rootCmd.SetErr(out)
	require.NoError(t, Initialize(rootCmd, source))
	return rootCmd, out
}

func TestInitialize_ReplacesHelp(t *testing.T) {
	rootCmd, _ := newRoot(t, fstest.MapFS{"topic.txt": file("Topic content")})

	helpCmd, _, err := rootCmd.Find([]string{"help"})
	require.NoError(t, err)
	assert.Equal(t, "help [command or topic]", helpCmd.Use)
}

func TestHelpCommand_Topic(t *testing.T) {
	rootCmd, out := newRoot(t, fstest.MapFS{"overwrite.txt": file("OVERWRITE MODE\nDisplaced files go to scratch.")})

	rootCmd.SetArgs([]string{"help", "overwrite"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "OVERWRITE MODE")
}

func TestHelpCommand_ListTopics(t *testing.T) {
	rootCmd, out := newRoot(t, fstest.MapFS{
		"repository.txt":       file("r"),
		"option-overwrite.txt": file("o"),
	})

	rootCmd.SetArgs([]string{"help", "topics"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "General topics:\n  repository")
	assert.Contains(t, out.String(), "Option topics:\n  --overwrite")
	assert.Contains(t, out.String(), "Use 'testapp help <topic>'")
}

func TestHelpCommand_FallsBackToCommandHelp(t *testing.T) {
	rootCmd, out := newRoot(t, fstest.MapFS{})

	rootCmd.SetArgs([]string{"help", "restore"})
	require.NoError(t, rootCmd.Execute())

	assert.Contains(t, out.String(), "Restore something")
}

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Safety\n", r.Render("# Safety\n\n\n", ".md"))
	assert.Equal(t, "line\n", r.Render("line", ".txt"))
	assert.Equal(t, "", r.Render(" \n\n", ".txt"))
}

func TestGlamourRenderer_NonMarkdownIsPlain(t *testing.T) {
	r := NewGlamourRenderer()
	assert.Equal(t, "plain text\n", r.Render("plain text\n\n", ".txt"))
}
