package main

import (
	"fmt"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/fatih/color"

	"github.com/solharvest/harvester/internal/environment"
)

type feedbackRow struct {
	unit    string
	health  int // 0 - OK, 1 - Warning, 2 - Error
	message string
}

func main() {
	feedback := make([]feedbackRow, 0)

	feedback = append(feedback, ensureToolOk("Git", "git", "--version"))
	feedback = append(feedback, ensureToolOk("Solc", "solc", "--version"))
	feedback = append(feedback, ensureTokenOk())

	outputFeedback(feedback)
}

func ensureToolOk(unit string, name string, args ...string) feedbackRow {
	cmd := exec.Command(name, args...)
	log.Printf("Running %v...", cmd.Args)
	out, err := cmd.CombinedOutput()
	if err != nil {
		log.Printf("Failed to run %v: %v", cmd.Args, err)
		msg := err.Error()
		if len(out) > 0 {
			msg = msg + ": " + string(out)
		}
		return feedbackRow{
			unit:    unit,
			health:  2,
			message: msg,
		}
	}

	log.Printf("Ran %v", cmd.Args)
	return feedbackRow{
		unit:    unit,
		health:  0,
		message: firstLine(string(out)),
	}
}

func ensureTokenOk() feedbackRow {
	env := environment.ReadEnvConfig()
	if _, err := env.RequireGithubToken(); err != nil {
		return feedbackRow{
			unit:    "GitHub token",
			health:  2,
			message: err.Error(),
		}
	}
	return feedbackRow{
		unit:    "GitHub token",
		health:  0,
		message: "present",
	}
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(s, "\n")
	return strings.TrimSpace(line)
}

func outputFeedback(feedback []feedbackRow) {
	okay := color.New(color.FgHiGreen).SprintFunc()
	warn := color.New(color.FgHiYellow).SprintFunc()
	fail := color.New(color.FgHiRed).SprintFunc()

	broken := false
	for _, row := range feedback {
		healthCode := okay("OKAY")
		switch row.health {
		case 1:
			healthCode = warn("WARN")
		case 2:
			healthCode = fail("ERROR")
			broken = true
		}
		fmt.Printf("%-14s %s  %s\n", row.unit, healthCode, row.message)
	}

	if broken {
		os.Exit(1)
	}
}
