// playerctl/cli/output.go
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/Ftotnem/player-roster/shared/models"
	"github.com/Ftotnem/player-roster/shared/registry"
)

const dateLayout = "2006-01-02"

// Output handles formatting output based on the configured format
type Output struct {
	format string
	w      io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, w io.Writer) *Output {
	return &Output{format: format, w: w}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
		return
	}
	o.printText(data)
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		o.printJSON(map[string]string{"message": msg})
		return
	}
	fmt.Fprintln(o.w, msg)
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case *models.Player:
		o.printPlayers([]models.Player{*v})
	case []models.Player:
		o.printPlayers(v)
	case map[string]registry.ServiceInfo:
		o.printServices(v)
	default:
		fmt.Fprintln(o.w, v)
	}
}

func (o *Output) printPlayers(players []models.Player) {
	if len(players) == 0 {
		fmt.Fprintln(o.w, "No players.")
		return
	}
	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tTITLE\tRACE\tPROFESSION\tBIRTHDAY\tBANNED\tEXP\tLEVEL\tNEXT")
	for _, p := range players {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%t\t%d\t%d\t%d\n",
			p.ID, p.Name, p.Title, p.Race, p.Profession,
			p.BirthdayTime().Format(dateLayout), p.Banned,
			p.Experience, p.Level, p.UntilNextLevel)
	}
	_ = tw.Flush()
}

func (o *Output) printServices(services map[string]registry.ServiceInfo) {
	if len(services) == 0 {
		fmt.Fprintln(o.w, "No active instances.")
		return
	}
	ids := make([]string, 0, len(services))
	for id := range services {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	tw := tabwriter.NewWriter(o.w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tADDRESS\tLAST SEEN")
	for _, id := range ids {
		info := services[id]
		fmt.Fprintf(tw, "%s\t%s:%d\t%s\n", id, info.IP, info.Port, info.LastSeenTime().UTC().Format("15:04:05.000"))
	}
	_ = tw.Flush()
}
