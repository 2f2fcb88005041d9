package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/linanwx/helpdock/assistant"
	"github.com/linanwx/helpdock/channel"
	"github.com/linanwx/helpdock/chatmd"
	"github.com/linanwx/helpdock/widget"
	"github.com/spf13/cobra"
	"github.com/tidwall/sjson"
)

var askCmd = &cobra.Command{
	Use:     "ask <question>",
	Short:   "Ask the assistant one question and print the reply",
	GroupID: "service",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runAsk,
}

var (
	askHTML  bool
	askJSON  bool
	askWidth int
)

func init() {
	askCmd.Flags().BoolVar(&askHTML, "html", false, "Print the reply as widget HTML")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "Print the reply and its video previews as JSON")
	askCmd.Flags().IntVar(&askWidth, "width", 80, "Wrap width for terminal output (0 = no wrapping)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg := appConfig
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" {
		return fmt.Errorf("question is empty")
	}

	client := assistant.New(cfg.Service.BaseURL, cfg.ClientOptions()...)
	ctrl := widget.New(client, cfg.WidgetOptions())
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctrl.SendMessage(ctx, question)

	msgs := ctrl.Transcript()
	reply := msgs[len(msgs)-1]
	out := cmd.OutOrStdout()
	switch {
	case askJSON:
		data, err := replyJSON(question, reply, cfg.Labels())
		if err != nil {
			return err
		}
		fmt.Fprintln(out, data)
	case askHTML:
		fmt.Fprintln(out, chatmd.RenderHTML(reply.Content, cfg.Labels()))
	default:
		theme := chatmd.DefaultTheme()
		theme.Labels = cfg.Labels()
		fmt.Fprintln(out, channel.FormatMessage(reply, theme, askWidth))
	}
	if reply.Failed {
		return fmt.Errorf("assistant did not answer: %s", reply.Content.PlainText())
	}
	return nil
}

func replyJSON(question string, reply widget.Message, labels chatmd.Labels) (string, error) {
	out := `{}`
	var err error
	set := func(path string, v any) {
		if err == nil {
			out, err = sjson.Set(out, path, v)
		}
	}
	set("question", question)
	set("reply", reply.Raw)
	set("failed", reply.Failed)
	set("text", reply.Content.PlainText())
	set("html", chatmd.RenderHTML(reply.Content, labels))
	set("videos", []any{})
	for i, v := range reply.Content.Videos() {
		prefix := fmt.Sprintf("videos.%d.", i)
		set(prefix+"url", v.URL)
		set(prefix+"videoId", v.VideoID)
		set(prefix+"title", v.Title)
		set(prefix+"description", v.Description)
		set(prefix+"variant", v.Variant.String())
		set(prefix+"thumbnail", v.ThumbnailURL())
	}
	return out, err
}
