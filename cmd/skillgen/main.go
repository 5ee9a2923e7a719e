// skillgen scaffolds and validates documentation skill templates.
//
// Usage:
//
//	skillgen new <name> [--dir DIR]
//	skillgen validate <path>
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#4ade80"))
	errStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f87171")).Bold(true)
	pathStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	cmdStyle  = lipgloss.NewStyle().Bold(true)
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func run() error {
	if len(os.Args) < 2 {
		printUsage()
		return nil
	}

	switch os.Args[1] {
	case "new":
		return runNew(os.Args[2:])
	case "validate":
		return runValidate(os.Args[2:])
	case "help", "--help", "-h":
		printUsage()
		return nil
	default:
		return fmt.Errorf("unknown command %q (try: skillgen help)", os.Args[1])
	}
}

func runNew(args []string) error {
	fs := flag.NewFlagSet("new", flag.ExitOnError)
	dir := fs.String("dir", filepath.Join(".claude", "skills"), "directory to create the skill under")
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: skillgen new <name> [--dir DIR]")
	}
	name := fs.Arg(0)

	skillPath, err := Scaffold(*dir, name)
	if err != nil {
		return err
	}

	fmt.Println(okStyle.Render("✓ Created skill: ") + pathStyle.Render(skillPath))
	fmt.Println()
	fmt.Println("Next steps:")
	fmt.Println("  1. Edit " + pathStyle.Render(filepath.Join(skillPath, "SKILL.md")) + " and fill in the description")
	fmt.Println("  2. Add scripts, references, and assets as needed")
	fmt.Println("  3. Run " + cmdStyle.Render("skillgen validate "+skillPath))
	return nil
}

func runValidate(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	fs.Parse(args)

	if fs.NArg() != 1 {
		return fmt.Errorf("usage: skillgen validate <path>")
	}

	problems, err := ValidateSkill(fs.Arg(0))
	if err != nil {
		return err
	}

	if len(problems) == 0 {
		fmt.Println(okStyle.Render("✓ Skill is valid"))
		return nil
	}
	for _, p := range problems {
		fmt.Println(errStyle.Render("✗ ") + p)
	}
	return fmt.Errorf("%d problem(s) found", len(problems))
}

func printUsage() {
	fmt.Println(cmdStyle.Render("skillgen") + " scaffolds and validates documentation skill templates")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  " + cmdStyle.Render("new <name> [--dir DIR]") + "   create a new skill directory with a SKILL.md template")
	fmt.Println("  " + cmdStyle.Render("validate <path>") + "          check an existing skill directory")
}
