package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var retrieveFile string

// retrieveCmd runs retrieval only and prints the ranked context blocks, which
// is the fastest way to inspect what the model would be shown for a query.
var retrieveCmd = &cobra.Command{
	Use:   "retrieve \"query\"",
	Short: "Show the context blocks retrieved for a query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := strings.TrimSpace(args[0])
		if query == "" {
			return fmt.Errorf("query is empty")
		}
		if retrieveFile == "" {
			return fmt.Errorf("--file is required")
		}

		name, text, err := loadDocument(retrieveFile)
		if err != nil {
			return err
		}
		eng := buildEngine(currentCfg, text)
		logger.Debug("document indexed", "file", name, "chunks", len(eng.Chunks()))

		results := eng.Query(cmd.Context(), query, queryOptions(currentCfg))
		if len(results) == 0 {
			fmt.Println("No context above threshold.")
			return nil
		}
		for i, r := range results {
			fmt.Printf("Block %d  score=%.3f  chunks %d-%d  matched %v\n", i+1, r.Score, r.StartID, r.EndID, r.MatchedIDs)
			fmt.Println(r.Text)
			if i < len(results)-1 {
				fmt.Println()
			}
		}
		return nil
	},
}

func init() {
	retrieveCmd.Flags().StringVarP(&retrieveFile, "file", "f", "", "document to index (required)")
	rootCmd.AddCommand(retrieveCmd)
}
