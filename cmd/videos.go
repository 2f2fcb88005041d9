package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/linanwx/helpdock/assistant"
	"github.com/spf13/cobra"
)

var videosCmd = &cobra.Command{
	Use:     "videos",
	Short:   "List the guide videos the assistant can point to",
	GroupID: "service",
	RunE:    runVideos,
}

func init() {
	rootCmd.AddCommand(videosCmd)
}

func runVideos(cmd *cobra.Command, _ []string) error {
	client := assistant.New(appConfig.Service.BaseURL, appConfig.ClientOptions()...)
	videos, err := client.Videos(cmd.Context())
	if err != nil {
		return fmt.Errorf("list videos: %w", err)
	}
	if len(videos) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No videos available.")
		return nil
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TITLE\tDESCRIPTION\tLINK")
	for _, v := range videos {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Title, v.Description, v.Link)
	}
	return tw.Flush()
}
