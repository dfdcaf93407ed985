package repl

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"challan-ledger/internal/app"
	"challan-ledger/internal/core"
)

// Run starts the interactive REPL loop.
// It reads commands from reader, dispatches slash commands deterministically,
// and routes natural language input through the AI agent. The session holds a
// single challan form that commands mutate in place.
func Run(ctx context.Context, svc app.ApplicationService, reader *bufio.Reader) {
	form := core.NewChallan()

	fmt.Println("Challan Ledger")
	fmt.Println("Dictate a daily report to draft a challan, or use /help for commands.")
	fmt.Println(strings.Repeat("-", 70))

	errExit := fmt.Errorf("exit")

	dispatchSlash := func(input string) error {
		tokens := strings.Fields(strings.TrimPrefix(input, "/"))
		if len(tokens) == 0 {
			return nil
		}
		cmd := strings.ToLower(tokens[0])
		args := tokens[1:]

		switch cmd {
		case "new", "n":
			if form.Mode() == core.ModeReadOnly {
				fmt.Println("A loaded record is open. Use /back first.")
				return nil
			}
			handleNewChallan(ctx, reader, svc, form)

		case "show":
			printChallan(form)

		case "save":
			result, err := svc.SaveChallan(ctx, form)
			if err != nil {
				if result != nil && result.Key != "" {
					fmt.Printf("Daily record saved as %q, but the monthly rollup failed: %v\n", result.Key, err)
					fmt.Println("The form was kept. Run /save again to retry.")
					return nil
				}
				return err
			}
			fmt.Printf("Saved %q. Form reset.\n", result.Key)

		case "load", "l":
			if len(args) < 2 {
				fmt.Println("Usage: /load <agent-name> <dd-mm-yyyy>")
				return nil
			}
			name := strings.Join(args[:len(args)-1], " ")
			date := args[len(args)-1]
			result, err := svc.LoadChallan(ctx, form, name, date)
			if err != nil {
				return err
			}
			if !result.Found {
				fmt.Printf("No record for %s on %s.\n", name, date)
				return nil
			}
			printChallan(form)
			fmt.Println("Record is read-only. Use /back to return to a blank form.")

		case "back", "b":
			form.Exit()
			fmt.Println("Back to a blank form.")

		case "prefill":
			if len(args) < 1 {
				fmt.Println("Usage: /prefill <agent-name>")
				return nil
			}
			name := strings.Join(args, " ")
			found, err := svc.PrefillCommission(ctx, form, name)
			if err != nil {
				return err
			}
			if !found {
				fmt.Printf("No previous record for %s.\n", name)
				return nil
			}
			fmt.Printf("Commission percents copied: local %s%%, special %s%%.\n",
				form.CommissionPercent(core.CategoryLocal), form.CommissionPercent(core.CategorySpecial))

		case "pct":
			if len(args) < 2 {
				fmt.Println("Usage: /pct <local|special> <percent>")
				return nil
			}
			cat, ok := parseCategory(args[0])
			if !ok {
				fmt.Printf("Unknown category: %s\n", args[0])
				return nil
			}
			if form.CommissionFinalized(cat) {
				fmt.Println("Commission is finalized. Use /unlock first.")
				return nil
			}
			form.SetCommissionPercent(cat, args[1])
			fmt.Printf("Commission %s set to %s%%. Value: %s\n", args[0], args[1],
				core.FormatAmount(commissionValue(form, cat)))

		case "lock":
			if len(args) < 1 {
				fmt.Println("Usage: /lock <local|special>")
				return nil
			}
			cat, ok := parseCategory(args[0])
			if !ok {
				fmt.Printf("Unknown category: %s\n", args[0])
				return nil
			}
			form.FinalizeCommission(cat)
			fmt.Printf("Commission %s finalized at %s%%.\n", args[0], form.CommissionPercent(cat))

		case "unlock":
			if len(args) < 1 {
				fmt.Println("Usage: /unlock <local|special>")
				return nil
			}
			cat, ok := parseCategory(args[0])
			if !ok {
				fmt.Printf("Unknown category: %s\n", args[0])
				return nil
			}
			form.UnlockCommission(cat)
			fmt.Printf("Commission %s unlocked. Percent cleared.\n", args[0])

		case "agents":
			result, err := svc.ListAgentNames(ctx)
			if err != nil {
				return err
			}
			if len(result.Names) == 0 {
				fmt.Println("No agents recorded yet.")
				return nil
			}
			for _, name := range result.Names {
				fmt.Printf("  %s\n", name)
			}

		case "month", "m":
			if len(args) < 2 {
				fmt.Println("Usage: /month <agent-name> <mm-yyyy>")
				return nil
			}
			m, err := core.ParseMonth(args[len(args)-1])
			if err != nil {
				fmt.Printf("Invalid month: %v\n", err)
				return nil
			}
			name := strings.Join(args[:len(args)-1], " ")
			result, err := svc.GetMonthlyReport(ctx, name, m)
			if err != nil {
				return err
			}
			printMonth(result)
			if result.RosterSyncErr != nil {
				fmt.Printf("Warning: roster sync failed: %v\n", result.RosterSyncErr)
			}

		case "company", "c":
			if len(args) < 1 {
				fmt.Println("Usage: /company <mm-yyyy>")
				return nil
			}
			m, err := core.ParseMonth(args[0])
			if err != nil {
				fmt.Printf("Invalid month: %v\n", err)
				return nil
			}
			result, err := svc.GetCompanyRoster(ctx, m)
			if err != nil {
				return err
			}
			printRoster(result)

		case "export":
			return handleExport(ctx, svc, args)

		case "help", "h":
			printHelp()

		case "exit", "quit", "e", "q":
			return errExit

		default:
			fmt.Printf("Unknown command: /%s  (type /help for all commands)\n", cmd)
		}
		return nil
	}

	for {
		fmt.Print("\n> ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		// Slash prefix → deterministic command dispatcher, no AI invoked.
		if strings.HasPrefix(input, "/") {
			if err := dispatchSlash(input); err != nil {
				if err == errExit {
					fmt.Println("Goodbye!")
					break
				}
				fmt.Printf("Error: %v\n", err)
			}
			continue
		}

		// No slash prefix → route to AI agent.
		fmt.Println("[AI] Processing...")
		accumulatedInput := input

		rounds := 0
		for {
			rounds++
			if rounds > 3 {
				fmt.Println("Could not produce a draft. Try /new for guided entry instead.")
				break
			}

			result, err := svc.InterpretChallan(ctx, accumulatedInput)
			if err != nil {
				fmt.Printf("Error: %v\n", err)
				break
			}

			if result.IsClarification {
				fmt.Printf("\n[AI]: %s\n", result.ClarificationMessage)
				fmt.Print("> ")
				userFollowUp, _ := reader.ReadString('\n')
				userFollowUp = strings.TrimSpace(userFollowUp)

				// Slash command during clarification cancels the AI flow.
				if strings.HasPrefix(userFollowUp, "/") {
					fmt.Println("(AI session cancelled)")
					if dispErr := dispatchSlash(userFollowUp); dispErr != nil {
						if dispErr == errExit {
							fmt.Println("Goodbye!")
							return
						}
						fmt.Printf("Error: %v\n", dispErr)
					}
					break
				}

				if userFollowUp == "" || strings.ToLower(userFollowUp) == "cancel" {
					fmt.Println("Cancelled.")
					break
				}
				accumulatedInput = fmt.Sprintf("Original report: %s\nClarification requested: %s\nUser response: %s",
					accumulatedInput, result.ClarificationMessage, userFollowUp)
				fmt.Println("[AI] Thinking...")
				continue
			}

			draft := result.Draft
			printDraft(draft)

			if draft.Confidence < 0.6 {
				fmt.Println("\nWARNING: Low confidence draft.")
			}

			if form.Mode() == core.ModeReadOnly {
				fmt.Println("\nA loaded record is open. Use /back, then dictate again.")
				break
			}

			fmt.Print("\nApply this draft to the form? (y/n): ")
			choice, _ := reader.ReadString('\n')
			choice = strings.TrimSpace(strings.ToLower(choice))

			if choice != "y" && choice != "yes" {
				fmt.Println("Draft discarded.")
				break
			}

			form.ApplyDraft(draft.ToRecord())
			printChallan(form)

			fmt.Print("Save now? (y/n): ")
			choice, _ = reader.ReadString('\n')
			choice = strings.TrimSpace(strings.ToLower(choice))
			if choice == "y" || choice == "yes" {
				saveResult, err := svc.SaveChallan(ctx, form)
				if err != nil {
					fmt.Printf("Save FAILED: %v\n", err)
					if saveResult != nil && saveResult.Key != "" {
						fmt.Println("The daily record was committed. Run /save to retry the rollup.")
					}
				} else {
					fmt.Printf("Saved %q. Form reset.\n", saveResult.Key)
				}
			} else {
				fmt.Println("Draft kept on the form. Edit with /pct or save with /save.")
			}
			break
		}
	}
}

func handleExport(ctx context.Context, svc app.ApplicationService, args []string) error {
	if len(args) < 1 {
		fmt.Println("Usage: /export <day|month|company> ...")
		return nil
	}
	switch strings.ToLower(args[0]) {
	case "day":
		if len(args) < 4 {
			fmt.Println("Usage: /export day <agent-name> <dd-mm-yyyy> <file.xlsx>")
			return nil
		}
		name := strings.Join(args[1:len(args)-2], " ")
		if err := svc.ExportDaily(ctx, name, args[len(args)-2], args[len(args)-1]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", args[len(args)-1])
	case "month":
		if len(args) < 4 {
			fmt.Println("Usage: /export month <agent-name> <mm-yyyy> <file.xlsx>")
			return nil
		}
		m, err := core.ParseMonth(args[len(args)-2])
		if err != nil {
			fmt.Printf("Invalid month: %v\n", err)
			return nil
		}
		name := strings.Join(args[1:len(args)-2], " ")
		if err := svc.ExportMonthly(ctx, name, m, args[len(args)-1]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", args[len(args)-1])
	case "company":
		if len(args) < 3 {
			fmt.Println("Usage: /export company <mm-yyyy> <file.xlsx>")
			return nil
		}
		m, err := core.ParseMonth(args[1])
		if err != nil {
			fmt.Printf("Invalid month: %v\n", err)
			return nil
		}
		if err := svc.ExportRoster(ctx, m, args[2]); err != nil {
			return err
		}
		fmt.Printf("Wrote %s.\n", args[2])
	default:
		fmt.Printf("Unknown export target: %s\n", args[0])
	}
	return nil
}

func parseCategory(s string) (core.Category, bool) {
	switch strings.ToLower(s) {
	case "local", "l":
		return core.CategoryLocal, true
	case "special", "s":
		return core.CategorySpecial, true
	}
	return "", false
}
