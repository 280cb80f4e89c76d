// Event subcommands: create, list, show, delete, join, leave.
package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/christianbiango/team-up/pkg/types"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Manage events",
}

var eventCreateFlags struct {
	title       string
	description string
	sport       string
	skill       string
	date        string
	duration    int
	maxPeople   int
	price       float64
	venue       string
	organizer   string
	latitude    float64
	longitude   float64
}

var eventCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create an event",
	RunE: func(cmd *cobra.Command, args []string) error {
		when, err := time.Parse(time.RFC3339, eventCreateFlags.date)
		if err != nil {
			return fmt.Errorf("parse --date (want RFC 3339, e.g. 2025-01-01T18:00:00Z): %w", err)
		}
		event := &types.Event{
			Title:           eventCreateFlags.title,
			Description:     eventCreateFlags.description,
			SportType:       eventCreateFlags.sport,
			SkillLevel:      eventCreateFlags.skill,
			DateTime:        when,
			Duration:        eventCreateFlags.duration,
			MaxParticipants: eventCreateFlags.maxPeople,
			PricePerPerson:  eventCreateFlags.price,
			VenueAddress:    eventCreateFlags.venue,
			OrganizerID:     eventCreateFlags.organizer,
		}
		if cmd.Flags().Changed("lat") && cmd.Flags().Changed("lon") {
			lat, lon := eventCreateFlags.latitude, eventCreateFlags.longitude
			event.Latitude, event.Longitude = &lat, &lon
			event.IsGeocoded = true
		}

		created, err := current.manager.CreateEvent(cmd.Context(), event)
		if err != nil {
			return err
		}
		return printEvent(cmd, created)
	},
}

var eventListFlags struct {
	organizer string
	upcoming  bool
}

var eventListCmd = &cobra.Command{
	Use:   "list",
	Short: "List events, merged with the remote copy when online",
	RunE: func(cmd *cobra.Command, args []string) error {
		filter := types.EventFilter{
			OrganizerID: eventListFlags.organizer,
			Upcoming:    eventListFlags.upcoming,
		}
		events, err := current.manager.GetEvents(cmd.Context(), filter)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, events)
		}
		for _, event := range events {
			marker := ""
			if event.Meta.Offline {
				marker = " (pending sync)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %s  %s%s\n",
				event.ID, event.DateTime.Format(time.RFC3339), event.SportType, event.Title, marker)
		}
		return nil
	},
}

var eventShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		event, err := current.manager.GetEvent(args[0])
		if err != nil {
			return err
		}
		return printEvent(cmd, event)
	},
}

var eventDeleteCmd = &cobra.Command{
	Use:   "delete <event-id>",
	Short: "Delete an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.manager.DeleteEvent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "deleted")
		return nil
	},
}

var eventJoinUser string

var eventJoinCmd = &cobra.Command{
	Use:   "join <event-id>",
	Short: "Join an event",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		participation, err := current.manager.JoinEvent(cmd.Context(), args[0], eventJoinUser)
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, participation)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "joined: participation %s\n", participation.ID)
		return nil
	},
}

var eventLeaveCmd = &cobra.Command{
	Use:   "leave <participation-id>",
	Short: "Cancel a participation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := current.manager.LeaveEvent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "left")
		return nil
	},
}

var eventParticipantsCmd = &cobra.Command{
	Use:   "participants <event-id>",
	Short: "List an event's participations",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		participations, err := current.manager.GetParticipations(cmd.Context(),
			types.ParticipationFilter{EventID: args[0]})
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(cmd, participations)
		}
		for _, p := range participations {
			marker := ""
			if p.Meta.Offline {
				marker = " (pending sync)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s%s\n", p.ID, p.ParticipantID, marker)
		}
		return nil
	},
}

func init() {
	f := eventCreateCmd.Flags()
	f.StringVar(&eventCreateFlags.title, "title", "", "event title")
	f.StringVar(&eventCreateFlags.description, "description", "", "event description")
	f.StringVar(&eventCreateFlags.sport, "sport", "", "sport type")
	f.StringVar(&eventCreateFlags.skill, "skill", "", "required skill level")
	f.StringVar(&eventCreateFlags.date, "date", "", "start time, RFC 3339")
	f.IntVar(&eventCreateFlags.duration, "duration", 60, "duration in minutes")
	f.IntVar(&eventCreateFlags.maxPeople, "max", 10, "maximum participants")
	f.Float64Var(&eventCreateFlags.price, "price", 0, "price per person")
	f.StringVar(&eventCreateFlags.venue, "venue", "", "venue address")
	f.StringVar(&eventCreateFlags.organizer, "organizer", "", "organizer user ID")
	f.Float64Var(&eventCreateFlags.latitude, "lat", 0, "venue latitude")
	f.Float64Var(&eventCreateFlags.longitude, "lon", 0, "venue longitude")
	for _, required := range []string{"title", "sport", "date", "organizer"} {
		_ = eventCreateCmd.MarkFlagRequired(required)
	}

	eventListCmd.Flags().StringVar(&eventListFlags.organizer, "organizer", "", "filter by organizer user ID")
	eventListCmd.Flags().BoolVar(&eventListFlags.upcoming, "upcoming", false, "only events starting now or later")

	eventJoinCmd.Flags().StringVar(&eventJoinUser, "user", "", "participant user ID")
	_ = eventJoinCmd.MarkFlagRequired("user")

	eventCmd.AddCommand(eventCreateCmd)
	eventCmd.AddCommand(eventListCmd)
	eventCmd.AddCommand(eventShowCmd)
	eventCmd.AddCommand(eventDeleteCmd)
	eventCmd.AddCommand(eventJoinCmd)
	eventCmd.AddCommand(eventLeaveCmd)
	eventCmd.AddCommand(eventParticipantsCmd)
}

// printEvent writes one event in the selected output mode.
func printEvent(cmd *cobra.Command, event *types.Event) error {
	if flagJSON {
		return printJSON(cmd, event)
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "ID:        %s\n", event.ID)
	fmt.Fprintf(out, "Title:     %s\n", event.Title)
	fmt.Fprintf(out, "Sport:     %s (%s)\n", event.SportType, event.SkillLevel)
	fmt.Fprintf(out, "When:      %s (%d min)\n", event.DateTime.Format(time.RFC3339), event.Duration)
	fmt.Fprintf(out, "Where:     %s\n", event.VenueAddress)
	fmt.Fprintf(out, "Organizer: %s\n", event.OrganizerID)
	fmt.Fprintf(out, "Status:    %s\n", event.Status)
	if event.Meta.Offline {
		fmt.Fprintf(out, "Sync:      pending (%s)\n", event.Meta.Action)
	}
	return nil
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
