package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chatassist/internal/chat"
	"chatassist/internal/engine"
)

var (
	askFile      string
	askModel     string
	askReasoning bool
)

// askCmd runs a single question and streams the answer to stdout.
var askCmd = &cobra.Command{
	Use:   "ask \"question\"",
	Short: "Ask a single question and print the streamed answer",
	Long: `Ask a single question without entering the TUI. With --file, the
document is indexed first and relevant passages are attached to the prompt.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		question := strings.TrimSpace(args[0])
		if question == "" {
			return fmt.Errorf("question is empty")
		}

		var (
			eng      *engine.Engine
			fileName string
		)
		if askFile != "" {
			name, text, err := loadDocument(askFile)
			if err != nil {
				return err
			}
			eng = buildEngine(currentCfg, text)
			fileName = name
		}

		session := buildSession(currentCfg, eng, fileName, askModel)
		reply, err := session.Ask(cmd.Context(), question, func(tok chat.Token) {
			if tok.Reasoning {
				if askReasoning {
					fmt.Fprint(os.Stderr, tok.Text)
				}
				return
			}
			fmt.Print(tok.Text)
		})
		if err != nil {
			return err
		}
		if !strings.HasSuffix(reply.Answer, "\n") {
			fmt.Println()
		}
		return nil
	},
}

func init() {
	askCmd.Flags().StringVarP(&askFile, "file", "f", "", "document to use as retrieval context")
	askCmd.Flags().StringVarP(&askModel, "model", "m", "", "model tag to ask (default from config)")
	askCmd.Flags().BoolVar(&askReasoning, "show-reasoning", false, "print the model's reasoning to stderr")
	rootCmd.AddCommand(askCmd)
}
