package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"seedhammer.com/recovery/bip39"
	"seedhammer.com/recovery/matrix"
	"seedhammer.com/recovery/wordtable"
)

func tableCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "table",
		Short: "Print the choices of the first two rounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := io.WriteString(cmd.OutOrStdout(), labelTable()+"\n")
			return err
		},
	}
}

// labelTable lists each first round choice followed by the second
// round choices it leads to.
func labelTable() string {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("", "1", "2", "3", "4", "5", "6", "7", "8", "9")
	for i, group := range (matrix.State{}).Labels() {
		row := []string{group}
		row = append(row, matrix.State{Index: 1, Pincode: i}.Labels()...)
		t.Row(row...)
	}
	return t.String()
}

func pathCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "path WORD | path MNEMONIC...",
		Short: "Print the keys selecting a word or every word of a mnemonic on unscrambled screens",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			if len(args) == 1 {
				digits, err := pathDigits(args[0])
				if err != nil {
					return err
				}
				fmt.Fprintln(w, formatDigits(digits))
				return nil
			}
			lines, err := mnemonicPaths(strings.Join(args, " "))
			if err != nil {
				return err
			}
			for _, l := range lines {
				fmt.Fprintln(w, l)
			}
			return nil
		},
	}
}

// mnemonicPaths lists the key digits of every word of a mnemonic, which
// must have a valid checksum.
func mnemonicPaths(sentence string) ([]string, error) {
	m, err := bip39.ParseMnemonic(strings.ToLower(sentence))
	if err != nil {
		return nil, err
	}
	defer m.Wipe()
	lines := make([]string, len(m))
	for i, w := range m {
		digits, err := wordDigits(w)
		if err != nil {
			return nil, err
		}
		lines[i] = fmt.Sprintf("%2d %-8s %s", i+1, bip39.LabelFor(w), formatDigits(digits))
	}
	return lines, nil
}

func formatDigits(digits [matrix.Levels]int) string {
	s := make([]string, len(digits))
	for i, d := range digits {
		s[i] = fmt.Sprint(d)
	}
	return strings.Join(s, " ")
}

// pathDigits returns the key digits, 1 in the bottom left corner, that
// enter word when no screen is scrambled.
func pathDigits(word string) ([matrix.Levels]int, error) {
	rank, ok := bip39.Lookup([]byte(strings.ToLower(word)))
	if !ok {
		return [matrix.Levels]int{}, fmt.Errorf("%q is not in the word list", word)
	}
	return wordDigits(rank)
}

func wordDigits(w bip39.Word) ([matrix.Levels]int, error) {
	var digits [matrix.Levels]int
	choices, err := wordtable.Locate(int(w))
	if err != nil {
		return digits, err
	}
	var s matrix.State
	for level, c := range choices {
		cells := matrix.Keys
		if level == matrix.Levels-1 {
			cells = 6
		}
		sc := matrix.NewScreen(s, matrix.Identity(cells))
		digits[level] = sc.Key(c) + 1
		s, _ = s.Advance(c, 24)
	}
	return digits, nil
}

func statusCmd(o *options) *cobra.Command {
	var memory bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Print the state of the stored mnemonic",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := o.openLog(nil)
			if err != nil {
				return err
			}
			st, err := o.openStore(memory, log)
			if err != nil {
				return err
			}
			defer st.Close()
			status, err := st.Status()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "initialized: %v\n", status.Initialized)
			if status.Initialized {
				fmt.Fprintf(w, "imported:    %v\n", status.Imported)
				fmt.Fprintf(w, "fingerprint: %08x\n", status.Fingerprint)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&memory, "memory", false, "use an empty memory store")
	return cmd
}
