package cli

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"chatassist/internal/engine"
	"chatassist/internal/summarizer"
	"chatassist/internal/tui"
)

var chatModel string

// chatCmd starts the interactive chat TUI, optionally with a document
// attached as retrieval context.
var chatCmd = &cobra.Command{
	Use:   "chat [file]",
	Short: "Start an interactive chat session",
	Long: `Start an interactive chat session with a local model. When a file is
given, its content is indexed and relevant passages are attached to each
question automatically.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			eng      *engine.Engine
			fileName string
			summary  string
		)
		if len(args) == 1 {
			name, text, err := loadDocument(args[0])
			if err != nil {
				return err
			}
			eng = buildEngine(currentCfg, text)
			fileName = name

			sum := summarizer.NewFrequency()
			if s, err := sum.Summarize(text, currentCfg.Summarizer.MaxSentences); err == nil {
				summary = s
			}
			logger.Debug("document attached", "file", fileName, "chunks", len(eng.Chunks()))
		}

		session := buildSession(currentCfg, eng, fileName, chatModel)
		m := tui.New(session, summary, configuredModels(currentCfg))
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	},
}

func init() {
	chatCmd.Flags().StringVarP(&chatModel, "model", "m", "", "model tag to chat with (default from config)")
	rootCmd.AddCommand(chatCmd)
}
