package main

import (
	footprintv1dto "carbonhero/internal/dto/footprint_v1_dto"
	"carbonhero/internal/footprint"
	"carbonhero/internal/schema"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

type scoreFlags struct {
	file   string
	format string
}

func newScoreCmd() *cobra.Command {
	f := &scoreFlags{}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score answers read from a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd.OutOrStdout(), f)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&f.file, "file", "", "YAML file with answers")
	flags.StringVar(&f.format, "format", "text", "Output format: text or json")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check that required answers are present",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), file)
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML file with answers")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newOptionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List recognised answer options",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, q := range footprint.Questions() {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", q.Field, strings.Join(q.Options, ", ")); err != nil {
					return err
				}
			}
			return nil
		},
	}
}

func runScore(out io.Writer, f *scoreFlags) error {
	if f.format != "text" && f.format != "json" {
		return exitError(2, "unknown format %q", f.format)
	}

	answers, err := readAnswers(f.file)
	if err != nil {
		return err
	}

	result := footprint.ValidateAnswers(answers)
	if !result.Valid {
		return exitError(1, "invalid answers: %s", strings.Join(result.Errors, "; "))
	}

	breakdown := footprint.TotalFootprint(answers)
	level := footprint.Level(breakdown.Total)

	if f.format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Breakdown map[string]float64 `json:"breakdown"`
			Level     string             `json:"level"`
		}{
			Breakdown: breakdown.Map(),
			Level:     level,
		})
	}

	return writeText(out, breakdown, level)
}

func runValidate(out io.Writer, file string) error {
	answers, err := readAnswers(file)
	if err != nil {
		return err
	}

	result := footprint.ValidateAnswers(answers)
	if result.Valid {
		_, err := fmt.Fprintln(out, "valid")
		return err
	}

	for _, msg := range result.Errors {
		if _, err := fmt.Fprintln(out, msg); err != nil {
			return err
		}
	}
	return exitError(1, "%d required answers missing", len(result.Errors))
}

func readAnswers(path string) (schema.Answers, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return schema.Answers{}, fmt.Errorf("read answers: %w", err)
	}

	var answers footprintv1dto.Answers
	if err := yaml.Unmarshal(data, &answers); err != nil {
		return schema.Answers{}, fmt.Errorf("parse answers %s: %w", path, err)
	}
	return answers.Model(), nil
}

func writeText(out io.Writer, b schema.Breakdown, level string) error {
	for i, v := range b.Values() {
		if _, err := fmt.Fprintf(out, "%-15s %6.2f\n", schema.Categories[i], v); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(out, "%-15s %6.2f\n", "total", b.Total); err != nil {
		return err
	}
	_, err := fmt.Fprintf(out, "%-15s %s\n", "level", level)
	return err
}
