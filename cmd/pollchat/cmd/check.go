package cmd

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

var (
	checkAddr  string
	checkRoute string
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check ROOM...",
	Short: "Asks a running server whether rooms exist",
	Long: `Calls the check action of a running server for every room code given and
prints whether the room is live and how many users it holds.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client := &http.Client{Timeout: 5 * time.Second}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ROOM\tEXISTS\tUSERS")
		for _, room := range args {
			res, err := checkRoom(cmd, client, room)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s\t%t\t%d\n", room, res.Exists, res.Users)
		}
		return w.Flush()
	},
}

type checkResult struct {
	Exists bool `json:"exists"`
	Users  int  `json:"users"`
}

func checkRoom(cmd *cobra.Command, client *http.Client, room string) (checkResult, error) {
	q := url.Values{"action": {"check"}, "room": {room}}
	target := strings.TrimRight(checkAddr, "/") + checkRoute + "?" + q.Encode()

	req, err := http.NewRequestWithContext(cmd.Context(), http.MethodGet, target, nil)
	if err != nil {
		return checkResult{}, fmt.Errorf("build request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return checkResult{}, fmt.Errorf("check room %s: %w", room, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return checkResult{}, fmt.Errorf("check room %s: unexpected status %s", room, resp.Status)
	}
	var res checkResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		return checkResult{}, fmt.Errorf("decode response: %w", err)
	}
	return res, nil
}

func init() {
	checkCmd.Flags().StringVar(&checkAddr, "addr", "http://localhost:8080", "server base URL")
	checkCmd.Flags().StringVar(&checkRoute, "route", "/api/chat", "chat endpoint path")
	rootCmd.AddCommand(checkCmd)
}
