package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/linanwx/helpdock/chatmd"
	"github.com/spf13/cobra"
)

var formatCmd = &cobra.Command{
	Use:   "format [text]",
	Short: "Render assistant reply markup",
	Long: `Render a reply the way the widget shows it. The text comes from the
arguments, or from stdin when there are none.

Examples:
  helpdock format '**Step 1:** open *Settings*'
  echo '🔗 https://www.youtube.com/watch?v=dQw4w9WgXcQ' | helpdock format --html`,
	GroupID: "widget",
	RunE:    runFormat,
}

var (
	formatHTML   bool
	formatVideos bool
	formatWidth  int
)

func init() {
	formatCmd.Flags().BoolVar(&formatHTML, "html", false, "Print HTML instead of terminal output")
	formatCmd.Flags().BoolVar(&formatVideos, "videos", false, "List the video previews found in the text")
	formatCmd.Flags().IntVar(&formatWidth, "width", 80, "Wrap width for terminal output (0 = no wrapping)")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	raw := strings.Join(args, " ")
	if len(args) == 0 {
		in := cmd.InOrStdin()
		if in == os.Stdin && !stdinIsPipe() {
			return fmt.Errorf("no text given; pass it as an argument or pipe it on stdin")
		}
		data, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("read stdin: %w", err)
		}
		raw = strings.TrimRight(string(data), "\n")
	}

	content := chatmd.Convert(raw)
	out := cmd.OutOrStdout()
	switch {
	case formatVideos:
		for _, v := range content.Videos() {
			fmt.Fprintf(out, "%s\t%s\t%s\t%s\n", v.Variant, v.VideoID, v.URL, v.Title)
		}
	case formatHTML:
		fmt.Fprintln(out, chatmd.RenderHTML(content, appConfig.Labels()))
	default:
		theme := chatmd.DefaultTheme()
		theme.Labels = appConfig.Labels()
		fmt.Fprintln(out, chatmd.RenderTerminal(content, theme, formatWidth))
	}
	return nil
}

func stdinIsPipe() bool {
	st, err := os.Stdin.Stat()
	return err == nil && st.Mode()&os.ModeCharDevice == 0
}
