package cli

import (
	"embed"
	"io/fs"
)

//go:embed help/*.md
var helpFiles embed.FS

// HelpTopics returns the topic pages shown by 'dotty help <topic>'
func HelpTopics() fs.FS {
	sub, err := fs.Sub(helpFiles, "help")
	if err != nil {
		return helpFiles
	}
	return sub
}
