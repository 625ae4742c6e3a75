// Command outfield-log is an interactive terminal client for logging HCP
// interactions. Free text goes to the chat assistant and auto-fills the
// form; slash commands inspect and submit local state.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/outfield-crm/outfield/internal/client"
	"github.com/outfield-crm/outfield/internal/config"
	"github.com/outfield-crm/outfield/internal/dispatch"
	"github.com/outfield-crm/outfield/internal/form"
	"github.com/outfield-crm/outfield/internal/record"
	"github.com/outfield-crm/outfield/internal/session"
)

func main() {
	cfg := config.Load()

	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		lvl = slog.LevelInfo
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl}))

	api := client.New(cfg.APIURL)
	sess := session.New(api, logger)
	ctx := context.Background()

	fmt.Printf("outfield-log connected to %s\n", cfg.APIURL)
	fmt.Println(`Type a message to log an interaction, or "/help" for commands.`)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if !runCommand(ctx, sess, line) {
				break
			}
			continue
		}

		// Overlay before waiting: staged candidates go stale after 100ms.
		candidates := sess.SendChat(ctx, line)
		sess.ApplyPendingOverlay()
		sess.WaitIdle()

		msgs := sess.ChatMessages()
		if len(msgs) > 0 && msgs[len(msgs)-1].Role == "assistant" {
			fmt.Println(msgs[len(msgs)-1].Content)
		}
		if st := sess.OpState(dispatch.FamilyChatSend); st.Err != "" {
			fmt.Printf("chat failed: %s\n", st.Err)
		}
		if len(candidates) > 0 {
			fmt.Println("form updated from message:")
			for field, value := range candidates {
				fmt.Printf("  %s = %s\n", field, value)
			}
		}
	}

	sess.WaitIdle()
}

// runCommand handles one slash command. Returns false to exit the loop.
func runCommand(ctx context.Context, sess *session.Session, line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "/quit", "/exit":
		return false

	case "/help":
		fmt.Println(`commands:
  /form                 show the current form
  /set <field> <value>  edit a form field (hcp, type, topics, outcomes)
  /submit               submit the form as an interaction
  /fetch                reload interactions from the server
  /list                 show the local interaction list
  /delete <id>          delete an interaction
  /hcps                 reload and show the HCP directory
  /search <query>       search HCPs by name, specialty or location
  /quit                 exit`)

	case "/form":
		printForm(sess)

	case "/set":
		if len(args) < 2 {
			fmt.Println("usage: /set <field> <value>")
			break
		}
		if !editField(sess, args[0], strings.Join(args[1:], " ")) {
			fmt.Printf("unknown field %s (hcp, type, topics, outcomes)\n", args[0])
		}

	case "/submit":
		sess.SubmitForm(ctx)
		sess.WaitIdle()
		if st := sess.OpState(dispatch.FamilyInteractionsCreate); st.Err != "" {
			fmt.Printf("submit failed: %s\n", st.Err)
		} else {
			fmt.Println("interaction logged")
		}

	case "/fetch":
		sess.FetchInteractions(ctx)
		sess.WaitIdle()
		if st := sess.OpState(dispatch.FamilyInteractionsFetch); st.Err != "" {
			fmt.Printf("fetch failed: %s\n", st.Err)
		} else {
			fmt.Printf("%d interactions\n", len(sess.Interactions()))
		}

	case "/list":
		for _, it := range sess.Interactions() {
			fmt.Printf("  %s  %-20s %-12s %s\n", it.ID, it.HCPName, it.InteractionType, it.DiscussionTopics)
		}

	case "/delete":
		if len(args) != 1 {
			fmt.Println("usage: /delete <id>")
			break
		}
		sess.DeleteInteraction(ctx, args[0])
		sess.WaitIdle()
		if st := sess.OpState(dispatch.FamilyInteractionsDelete); st.Err != "" {
			fmt.Printf("delete failed: %s\n", st.Err)
		} else {
			fmt.Println("deleted")
		}

	case "/hcps":
		sess.FetchHCPs(ctx)
		sess.WaitIdle()
		for _, h := range sess.HCPs() {
			fmt.Printf("  %s  %-20s %-15s %s\n", h.ID, h.Name, h.Specialty, h.Location)
		}

	case "/search":
		if len(args) == 0 {
			fmt.Println("usage: /search <query>")
			break
		}
		sess.SearchHCPs(ctx, strings.Join(args, " "))
		sess.WaitIdle()
		results := sess.SearchResults()
		if len(results) == 0 {
			fmt.Println("no matches")
		}
		for _, h := range results {
			fmt.Printf("  %-20s %-15s %s\n", h.Name, h.Specialty, h.Location)
		}

	default:
		fmt.Printf("unknown command %s (try /help)\n", cmd)
	}
	return true
}

// editField maps a command-line field name onto the form. Returns false for
// names it does not know.
func editField(sess *session.Session, name, value string) bool {
	ok := true
	sess.EditForm(func(f *form.State) {
		switch name {
		case "hcp":
			f.HCPName = value
		case "type":
			f.InteractionType = record.InteractionType(value)
		case "topics":
			f.TopicsDiscussed = value
		case "outcomes":
			f.Outcomes = value
		case "attendees":
			f.Attendees = value
		case "followup":
			f.FollowUpActions = value
		default:
			ok = false
		}
	})
	return ok
}

func printForm(sess *session.Session) {
	f := sess.Form()
	fmt.Printf(`current form:
  hcp:       %s
  type:      %s
  date:      %s %s
  attendees: %s
  topics:    %s
  products:  %s
  materials: %s
  samples:   %s
  sentiment: %s
  outcomes:  %s
  follow-up: %s
`, f.HCPName, f.InteractionType, f.Date, f.Time, f.Attendees,
		f.TopicsDiscussed, f.ProductsDiscussed, f.MaterialsShared,
		f.SamplesDistributed, f.Sentiment, f.Outcomes, f.FollowUpActions)
}
