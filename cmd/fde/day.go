// ABOUTME: Interactive day command: show one day, then save, delete or modify it.
// ABOUTME: Reads answers line by line from the command's input stream.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harperreed/fde/internal/models"
	"github.com/harperreed/fde/internal/storage"
	"github.com/spf13/cobra"
)

const menuChoices = "[s] save, [d] delete, [m] modify, [q] quit"

var dayCmd = &cobra.Command{
	Use:   "day <DD/MM/YYYY>",
	Short: "Show and edit one day",
	Long: `Show the record for one day, creating an empty one on first lookup, then
choose what to do with it:

  [s] save      Store the record as shown
  [d] delete    Remove the record
  [m] modify    Enter revenue, hours, overtime and comment, then save
  [q] quit      Leave without changes

An empty comment removes the comment.

EXAMPLES:

  fde day 01/04/2023`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		day, err := models.ParseDay(args[0])
		if err != nil {
			return err
		}
		runDay(cmd.InOrStdin(), cmd.OutOrStdout(), day)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(dayCmd)
}

// prompter reads trimmed answers from the user.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func newPrompter(in io.Reader, out io.Writer) *prompter {
	return &prompter{in: bufio.NewReader(in), out: out}
}

// ask prints label and returns the next line. io.EOF is returned only
// when the input is exhausted without any text.
func (p *prompter) ask(label string) (string, error) {
	fmt.Fprint(p.out, label)
	line, err := p.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// askFloat re-prompts until the answer parses as a number.
func (p *prompter) askFloat(label string) (float64, error) {
	for {
		answer, err := p.ask(label)
		if err != nil {
			return 0, err
		}
		v, err := strconv.ParseFloat(answer, 64)
		if err == nil {
			return v, nil
		}
		color.New(color.FgYellow).Fprintf(p.out, "%q is not a number, try again\n", answer)
	}
}

// runDay looks up or creates the record for day and runs the menu loop.
func runDay(in io.Reader, w io.Writer, day time.Time) {
	r, created, err := repo.LookupOrCreate(day)
	if err != nil {
		renderError(w, "lookup day", err)
		return
	}
	if created {
		color.New(color.Faint).Fprintf(w, "created empty record for %s\n", r.Date)
	}

	p := newPrompter(in, w)
	for {
		fmt.Fprintf(w, "Selected record: %s, what do you want to do?\n", r)
		choice, err := p.ask(menuChoices + "\n> ")
		if err != nil {
			fmt.Fprintln(w)
			return
		}

		switch choice {
		case "s":
			saveDay(w, r)
			return
		case "d":
			if err := repo.Delete(day); err != nil {
				renderError(w, "delete day", err)
				return
			}
			color.New(color.FgYellow).Fprintf(w, "✗ Deleted %s\n", r.Date)
			return
		case "m":
			if err := modifyDay(p, r); err != nil {
				fmt.Fprintln(w)
				return
			}
			saveDay(w, r)
			return
		case "q":
			return
		default:
			color.New(color.FgYellow).Fprintf(w, "unknown option %q\n", choice)
		}
	}
}

// modifyDay prompts for every field of r. An empty comment clears it.
func modifyDay(p *prompter, r *models.Record) error {
	fmt.Fprintf(p.out, "Editing %s\n", r)

	revenue, err := p.askFloat("\trevenue : ")
	if err != nil {
		return err
	}
	hours, err := p.askFloat("\thours : ")
	if err != nil {
		return err
	}
	overtime, err := p.askFloat("\tof which overtime : ")
	if err != nil {
		return err
	}
	comment, err := p.ask("\tcomment : ")
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	r.Revenue, r.Hours, r.Overtime = revenue, hours, overtime
	r.Comment = nil
	if comment != "" {
		r.WithComment(comment)
	}
	fmt.Fprintf(p.out, "\nRecord is now: %s\n", r)
	return nil
}

// saveDay writes r, re-inserting it when the row vanished in between.
func saveDay(w io.Writer, r *models.Record) {
	err := repo.Update(r)
	if errors.Is(err, storage.ErrNotFound) {
		err = repo.Add(r)
	}
	if err != nil {
		renderError(w, "save day", err)
		return
	}
	color.New(color.FgGreen).Fprintf(w, "✓ Saved %s\n", r.Date)
}
