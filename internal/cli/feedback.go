package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/avoss/keyscout/internal/model"
)

var feedbackCmd = &cobra.Command{
	Use:   "feedback <query> <helpful|not_helpful|ignore>",
	Short: "Correlate user feedback with a recent failed search",
	Long: `Feedback reports whether the suggestions shown for a failed search were
useful. Helpful feedback confirms the insights mined from that query and
nudges their confidence up; not_helpful rejects them and nudges it down.
The same five-minute correlation window as ks select applies.`,
	Example: `  ks feedback sceenshot helpful
  ks feedback volme not_helpful`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := args[0]
		fb := model.Feedback(args[1])
		if !fb.Valid() {
			return fmt.Errorf("feedback must be one of: %s", strings.Join(feedbackValues(), ", "))
		}

		e := openEngine()
		e.RecordFeedback(query, fb)

		fmt.Fprintf(os.Stderr, "Recorded feedback for %q: %s\n", query, fb)
		return nil
	},
}

func feedbackValues() []string {
	return []string{
		string(model.FeedbackHelpful),
		string(model.FeedbackNotHelpful),
		string(model.FeedbackIgnore),
	}
}

func init() {
	rootCmd.AddCommand(feedbackCmd)
}
