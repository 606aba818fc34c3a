package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"

	"github.com/ziadkadry99/orgchart/internal/ids"
	"github.com/ziadkadry99/orgchart/internal/orggraph"
	"github.com/ziadkadry99/orgchart/internal/snapshot"
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Query the org graph from the command line",
}

var queryHierarchyCmd = &cobra.Command{
	Use:   "hierarchy [channel-id]",
	Short: "Print the consolidation hierarchy anchored to a channel",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runQueryHierarchy,
}

var queryMembersCmd = &cobra.Command{
	Use:   "members <team-id>",
	Short: "Print the members of a team",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryMembers,
}

var queryReportsCmd = &cobra.Command{
	Use:   "reports <user-id>",
	Short: "Print a manager's direct reports",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryReports,
}

var queryVisibilityCmd = &cobra.Command{
	Use:   "visibility <user-id>",
	Short: "Print the users visible to a manager through secondary grants",
	Args:  cobra.ExactArgs(1),
	RunE:  runQueryVisibility,
}

func init() {
	for _, c := range []*cobra.Command{queryHierarchyCmd, queryMembersCmd, queryReportsCmd, queryVisibilityCmd} {
		c.Flags().Bool("json", false, "output results as JSON")
		queryCmd.AddCommand(c)
	}
	queryMembersCmd.Flags().Bool("recursive", false, "include members of consolidated teams")
	queryVisibilityCmd.Flags().String("mode", "privileged", "privileged (grant implies ancestors) or secondary (explicit grants only)")
	rootCmd.AddCommand(queryCmd)
}

func runQueryHierarchy(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	graph, err := loadGraph(cfg, nil)
	if err != nil {
		return err
	}

	var channelID ids.ChannelID
	if len(args) == 1 {
		channelID = ids.ChannelID(args[0])
	} else {
		channelID, err = pickChannel(cfg.ChannelsPath)
		if err != nil {
			return err
		}
	}

	entries := graph.HierarchyForChannel(channelID)
	if ok, err := maybeJSON(cmd, entries); ok || err != nil {
		return err
	}

	if len(entries) == 0 {
		fmt.Printf("No org data for channel %s\n", channelID)
		return nil
	}
	for _, entry := range entries {
		if entry.Parent.IsZero() {
			fmt.Printf("%s  %s\n", entry.Team.ID, entry.Team.Name)
			continue
		}
		fmt.Printf("%s  %s  (consolidates into %s)\n", entry.Team.ID, entry.Team.Name, entry.Parent)
	}
	return nil
}

func runQueryMembers(cmd *cobra.Command, args []string) error {
	teamID, err := ids.ParseTeamID(args[0])
	if err != nil {
		return err
	}
	recursive, _ := cmd.Flags().GetBool("recursive")

	graph, err := quickGraph()
	if err != nil {
		return err
	}

	teamIDs := []ids.TeamID{teamID}
	if recursive {
		teamIDs = append(teamIDs, graph.DescendantsOf(teamID)...)
	}
	return printUsers(cmd, graph.UsersOfTeams(teamIDs))
}

func runQueryReports(cmd *cobra.Command, args []string) error {
	graph, err := quickGraph()
	if err != nil {
		return err
	}
	return printUsers(cmd, graph.DirectReports(ids.UserID(args[0])))
}

func runQueryVisibility(cmd *cobra.Command, args []string) error {
	mode, _ := cmd.Flags().GetString("mode")
	graph, err := quickGraph()
	if err != nil {
		return err
	}

	var users []*orggraph.User
	switch mode {
	case "privileged":
		users = graph.PrivilegedView(ids.UserID(args[0]))
	case "secondary":
		users = graph.SecondaryView(ids.UserID(args[0]))
	default:
		return fmt.Errorf("unknown mode %q: must be privileged or secondary", mode)
	}
	return printUsers(cmd, users)
}

// quickGraph loads the graph without progress output, for fast queries.
func quickGraph() (*orggraph.Graph, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return loadGraph(cfg, nil)
}

// pickChannel prompts for a channel interactively from the lookup file.
func pickChannel(channelsPath string) (ids.ChannelID, error) {
	if channelsPath == "" {
		return "", fmt.Errorf("no channel given and channels_path is not configured")
	}
	options, err := snapshot.LoadChannelOptions(channelsPath)
	if err != nil {
		return "", err
	}
	if len(options) == 0 {
		return "", fmt.Errorf("channel lookup %s contains no channels", channelsPath)
	}

	labels := make([]string, len(options))
	for i, opt := range options {
		labels[i] = fmt.Sprintf("%s (%s)", opt.Label, opt.Value)
	}
	prompt := promptui.Select{
		Label: "Select channel",
		Items: labels,
	}
	idx, _, err := prompt.Run()
	if err != nil {
		return "", fmt.Errorf("channel selection: %w", err)
	}
	return options[idx].Value, nil
}

// maybeJSON emits v as JSON when --json was passed.
func maybeJSON(cmd *cobra.Command, v interface{}) (bool, error) {
	jsonOutput, _ := cmd.Flags().GetBool("json")
	if !jsonOutput {
		return false, nil
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return true, enc.Encode(v)
}

func printUsers(cmd *cobra.Command, users []*orggraph.User) error {
	if ok, err := maybeJSON(cmd, users); ok || err != nil {
		return err
	}
	if len(users) == 0 {
		fmt.Println("No users found.")
		return nil
	}
	for _, user := range users {
		fmt.Printf("%s  %s\n", user.ID, user.RealName)
	}
	return nil
}
